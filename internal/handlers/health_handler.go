package handlers

import (
	"github.com/mapboard-app/mapboard/internal/database"
	"github.com/mapboard-app/mapboard/internal/dto"
	"github.com/mapboard-app/mapboard/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health reports connectivity and whether startup reconciliation has
// finished, so operators can tell a dead database from one still settling.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:        "ok",
		Message:       "Server is running",
		Database:      "connected",
		DBInitialized: database.Ready(),
	}

	if err := database.Ping(); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}

	if h.db.Migrator().HasTable(&models.User{}) {
		resp.UsersTableExists = true
		h.db.Model(&models.User{}).Count(&resp.UserCount)
	}

	return c.JSON(resp)
}
