package server

import (
	"errors"

	"portfolio/internal/middleware"
	"portfolio/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Identity headers supplied by the embedding shell.
const (
	headerDisplayName = "X-Display-Name"
	headerAvatarURL   = "X-Avatar-URL"
)

// identityFromRequest returns nil when the caller sent no identity.
func identityFromRequest(c *fiber.Ctx) *models.Identity {
	name := c.Get(headerDisplayName)
	avatar := c.Get(headerAvatarURL)
	if name == "" && avatar == "" {
		return nil
	}
	return &models.Identity{DisplayName: name, AvatarURL: avatar}
}

func statusForCode(code string) int {
	switch code {
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeFetchFailed:
		return fiber.StatusBadGateway
	case models.CodeStaleResult:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Errors that are not AppErrors
// come from the store and are reported without details.
func respondError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(models.ErrorResponse{Error: fiberErr.Message})
	}

	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			"path", c.Path(),
			"error", err.Error(),
		)
		appErr = models.NewInternalError(err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		})
	}

	response := models.ErrorResponse{Error: appErr.Message, Code: appErr.Code}
	if appErr.Err != nil && appErr.Code != models.CodeInternal {
		response.Details = appErr.Err.Error()
	}
	return c.Status(statusForCode(appErr.Code)).JSON(response)
}
