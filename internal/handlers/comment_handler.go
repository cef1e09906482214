package handlers

import (
	"github.com/mapboard-app/mapboard/internal/dto"
	"github.com/mapboard-app/mapboard/internal/identity"
	"github.com/mapboard-app/mapboard/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CommentHandler struct {
	comments *services.CommentService
	drawings *services.DrawingService
}

func NewCommentHandler(comments *services.CommentService, drawings *services.DrawingService) *CommentHandler {
	return &CommentHandler{comments: comments, drawings: drawings}
}

func (h *CommentHandler) ListAll(c *fiber.Ctx) error {
	views, err := h.comments.ListAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

// Create stores an unattached comment. Anonymous authors are allowed: an
// invalid or missing token just leaves user_id empty.
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.comments.Create(req.Content, optionalUserID(c), nil, nil)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CommentResponse{Success: true, Comment: *comment})
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	actor, err := identity.Require(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.comments.Delete(id, actor.UserID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Comment deleted successfully"})
}

func (h *CommentHandler) ForDrawing(c *fiber.Ctx) error {
	drawingID, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	views, err := h.comments.ForDrawing(drawingID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

func (h *CommentHandler) CreateForDrawing(c *fiber.Ctx) error {
	drawingID, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if _, err := h.drawings.Get(drawingID); err != nil {
		return respondError(c, err)
	}

	comment, err := h.comments.Create(req.Content, optionalUserID(c), &drawingID, nil)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CommentResponse{Success: true, Comment: *comment})
}

func optionalUserID(c *fiber.Ctx) *uint {
	if id, ok := identity.FromContext(c); ok {
		return &id.UserID
	}
	return nil
}
