package server

import (
	"portfolio/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

type selectionResponse struct {
	Open     bool     `json:"open"`
	Selected []string `json:"selected"`
}

func (s *Server) selectionState(c *fiber.Ctx) error {
	return c.JSON(selectionResponse{
		Open:     s.rt.Selection.IsOpen(),
		Selected: s.rt.Selection.Selected(),
	})
}

func (s *Server) GetSelection(c *fiber.Ctx) error {
	return s.selectionState(c)
}

func (s *Server) BeginSelection(c *fiber.Ctx) error {
	if err := s.rt.Selection.Begin(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return s.selectionState(c)
}

// ToggleSelection includes or excludes one project ID
func (s *Server) ToggleSelection(c *fiber.Ctx) error {
	var req struct {
		Included *bool `json:"included"`
	}
	if err := c.BodyParser(&req); err != nil || req.Included == nil {
		return respondError(c, models.NewValidationError("Field 'included' is required"))
	}
	// Params aliases the request buffer; the selection set outlives the request.
	s.rt.Selection.Toggle(utils.CopyString(c.Params("id")), *req.Included)
	return s.selectionState(c)
}

// GetSelectionMember reports whether one project ID is in the selection set
func (s *Server) GetSelectionMember(c *fiber.Ctx) error {
	id := c.Params("id")
	return c.JSON(fiber.Map{
		"id":       id,
		"selected": s.rt.Selection.IsSelected(id),
	})
}

func (s *Server) SelectAll(c *fiber.Ctx) error {
	if err := s.rt.Selection.SelectAll(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return s.selectionState(c)
}

func (s *Server) ClearSelection(c *fiber.Ctx) error {
	s.rt.Selection.ClearAll()
	return s.selectionState(c)
}

// CommitSelection writes the selection as the curated collection
func (s *Server) CommitSelection(c *fiber.Ctx) error {
	curated, err := s.rt.Selection.Commit(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(curated)
}

func (s *Server) CancelSelection(c *fiber.Ctx) error {
	if err := s.rt.Selection.Cancel(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return s.selectionState(c)
}
