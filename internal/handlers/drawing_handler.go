package handlers

import (
	"github.com/mapboard-app/mapboard/internal/dto"
	"github.com/mapboard-app/mapboard/internal/identity"
	"github.com/mapboard-app/mapboard/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DrawingHandler struct {
	service *services.DrawingService
}

func NewDrawingHandler(service *services.DrawingService) *DrawingHandler {
	return &DrawingHandler{service: service}
}

// List is public; an optional bearer token personalizes the userVote field.
func (h *DrawingHandler) List(c *fiber.Ctx) error {
	var viewerID *uint
	if id, ok := identity.FromContext(c); ok {
		viewerID = &id.UserID
	}

	views, err := h.service.List(viewerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

func (h *DrawingHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	drawing, err := h.service.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(drawing)
}

func (h *DrawingHandler) Create(c *fiber.Ctx) error {
	id, err := identity.Require(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req dto.CreateDrawingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	drawing, err := h.service.Create(id.UserID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DrawingResponse{Success: true, Drawing: *drawing})
}

func (h *DrawingHandler) Delete(c *fiber.Ctx) error {
	actor, err := identity.Require(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.service.Delete(id, actor.UserID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Drawing deleted successfully"})
}
