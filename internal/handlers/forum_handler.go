package handlers

import (
	"strconv"
	"strings"

	"github.com/mapboard-app/mapboard/internal/dto"
	"github.com/mapboard-app/mapboard/internal/identity"
	"github.com/mapboard-app/mapboard/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ForumHandler struct {
	forum    *services.ForumService
	comments *services.CommentService
}

func NewForumHandler(forum *services.ForumService, comments *services.CommentService) *ForumHandler {
	return &ForumHandler{forum: forum, comments: comments}
}

func (h *ForumHandler) Categories(c *fiber.Ctx) error {
	views, err := h.forum.Categories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

func (h *ForumHandler) CategoryThreads(c *fiber.Ctx) error {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := h.forum.GetCategory(categoryID); err != nil {
		return respondError(c, err)
	}

	threads, err := h.forum.CategoryThreads(categoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(threads)
}

// Thread returns the thread header plus its posts in chronological order.
func (h *ForumHandler) Thread(c *fiber.Ctx) error {
	threadID, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	thread, err := h.forum.GetThread(threadID)
	if err != nil {
		return respondError(c, err)
	}

	posts, err := h.comments.ForThread(threadID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.ThreadDetailResponse{Thread: *thread, Posts: posts})
}

func (h *ForumHandler) CreateThread(c *fiber.Ctx) error {
	var req dto.CreateThreadRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	thread, post, err := h.forum.CreateThread(&req, optionalUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateThreadResponse{
		Success: true,
		Thread:  *thread,
		Post:    *post,
	})
}

func (h *ForumHandler) CreatePost(c *fiber.Ctx) error {
	threadID, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	post, err := h.forum.CreatePost(threadID, req.Content, optionalUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatePostResponse{Success: true, Post: *post})
}

// Search matches thread titles and post bodies, optionally scoped to one
// category via ?category_id=<id>.
func (h *ForumHandler) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return badRequest(c, "Search query is required")
	}

	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return badRequest(c, "Invalid category filter")
		}
		cid := uint(id)
		categoryID = &cid
	}

	threads, err := h.forum.Search(query, categoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(threads)
}

func (h *ForumHandler) DeleteThread(c *fiber.Ctx) error {
	actor, err := identity.Require(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	threadID, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.forum.DeleteThread(threadID, actor.UserID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Thread deleted successfully"})
}
