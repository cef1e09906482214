package handlers

import (
	"errors"
	"log/slog"

	"github.com/mapboard-app/mapboard/internal/dto"
	"github.com/mapboard-app/mapboard/internal/services"
	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto the HTTP error taxonomy:
// validation 400, unauthenticated 401, forbidden 403, not-found 404,
// everything else a generic 500 whose details go to the log, not the client.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrInvalidVoteType),
		errors.Is(err, services.ErrSuperAdminLocked):
		status = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, services.ErrDrawingPrivileges),
		errors.Is(err, services.ErrNotDrawingOwner),
		errors.Is(err, services.ErrNotCommentOwner),
		errors.Is(err, services.ErrNotThreadOwner),
		errors.Is(err, services.ErrAdminPromotion):
		status = fiber.StatusForbidden
		message = err.Error()
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrDrawingNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrThreadNotFound):
		status = fiber.StatusNotFound
		message = err.Error()
	default:
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}
	return uint(id), nil
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}
