package handlers

import (
	"log/slog"

	"github.com/mapboard-app/mapboard/internal/config"
	"github.com/mapboard-app/mapboard/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type ConfigHandler struct {
	cfg *config.Config
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// ClientConfig hands the frontend its map provider key. The key never goes
// into the bundle at build time, so a missing key is a server misconfiguration.
func (h *ConfigHandler) ClientConfig(c *fiber.Ctx) error {
	if h.cfg.GoogleMapsAPIKey == "" {
		slog.Error("GOOGLE_MAPS_API_KEY is not configured")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Map configuration unavailable",
		})
	}
	return c.JSON(dto.ConfigResponse{GoogleMapsAPIKey: h.cfg.GoogleMapsAPIKey})
}
