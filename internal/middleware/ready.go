package middleware

import (
	"github.com/mapboard-app/mapboard/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// DatabaseReady rejects data-dependent requests until the reconciliation
// routine has reported ready. 503 is the retryable "not ready" class.
func DatabaseReady(isReady func() bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isReady() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Database not initialized. Please wait a moment and try again.",
			})
		}
		return c.Next()
	}
}
