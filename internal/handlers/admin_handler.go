package handlers

import (
	"github.com/mapboard-app/mapboard/internal/dto"
	"github.com/mapboard-app/mapboard/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	service *services.AdminService
}

func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.UsersResponse{Success: true, Users: users})
}

func (h *AdminHandler) UpdateAdminStatus(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req dto.UpdateAdminStatusRequest
	if err := c.BodyParser(&req); err != nil || req.IsAdmin == nil {
		return badRequest(c, "isAdmin must be a boolean")
	}

	user, err := h.service.SetAdminStatus(userID, *req.IsAdmin)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.UserUpdateResponse{
		Success: true,
		Message: "Admin status updated successfully",
		User:    *user,
	})
}

func (h *AdminHandler) UpdateDrawerStatus(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req dto.UpdateDrawerStatusRequest
	if err := c.BodyParser(&req); err != nil || req.CanDraw == nil {
		return badRequest(c, "canDraw must be a boolean")
	}

	user, err := h.service.SetDrawerStatus(userID, *req.CanDraw)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.UserUpdateResponse{
		Success: true,
		Message: "Drawing permission updated successfully",
		User:    *user,
	})
}
