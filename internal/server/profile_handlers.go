package server

import (
	"strings"

	"portfolio/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUsername returns the stored username
func (s *Server) GetUsername(c *fiber.Ctx) error {
	username, err := s.rt.Profile.Username(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"username": username})
}

// ChangeUsername stores a new username and starts a catalog fetch for it
func (s *Server) ChangeUsername(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	gen, err := s.rt.Catalog.ChangeUsername(c.UserContext(), req.Username)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"username":   strings.TrimSpace(req.Username),
		"generation": gen,
	})
}

func (s *Server) GetPhoto(c *fiber.Ctx) error {
	photo, err := s.rt.Profile.Photo(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"photo": photo})
}

// SetPhoto stores the profile photo data URL; an empty value clears it
func (s *Server) SetPhoto(c *fiber.Ctx) error {
	var req struct {
		Photo string `json:"photo"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if err := s.rt.Profile.SetPhoto(c.UserContext(), req.Photo); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
