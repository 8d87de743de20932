package server

import (
	"portfolio/internal/models"
	"portfolio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments returns the comment thread of an item
func (s *Server) GetComments(c *fiber.Ctx) error {
	comments, err := s.rt.Comments.ListComments(c.UserContext(), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment adds a comment, or a reply when parent_id is set. Blank content
// and unknown parents store nothing and answer 204.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		Content  string `json:"content"`
		ParentID string `json:"parent_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	id, err := s.rt.Comments.AddComment(c.UserContext(), service.AddCommentInput{
		ItemID:   c.Params("itemId"),
		Identity: identityFromRequest(c),
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		return respondError(c, err)
	}
	if id == "" {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// LikeComment increments the like counter of a comment or reply
func (s *Server) LikeComment(c *fiber.Ctx) error {
	var req struct {
		IsReply  bool   `json:"is_reply"`
		ParentID string `json:"parent_id"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, models.NewValidationError("Invalid request body"))
		}
	}

	liked, err := s.rt.Comments.LikeComment(c.UserContext(), service.LikeCommentInput{
		ItemID:    c.Params("itemId"),
		CommentID: c.Params("commentId"),
		IsReply:   req.IsReply,
		ParentID:  req.ParentID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

func (s *Server) GetCommentCount(c *fiber.Ctx) error {
	count, err := s.rt.Comments.GetCommentCount(c.UserContext(), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}
