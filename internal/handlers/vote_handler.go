package handlers

import (
	"github.com/mapboard-app/mapboard/internal/dto"
	"github.com/mapboard-app/mapboard/internal/identity"
	"github.com/mapboard-app/mapboard/internal/services"
	"github.com/gofiber/fiber/v2"
)

type VoteHandler struct {
	votes    *services.VoteService
	drawings *services.DrawingService
}

func NewVoteHandler(votes *services.VoteService, drawings *services.DrawingService) *VoteHandler {
	return &VoteHandler{votes: votes, drawings: drawings}
}

// Vote toggles the acting user's vote on a drawing and returns the resulting
// state plus fresh aggregate counts.
func (h *VoteHandler) Vote(c *fiber.Ctx) error {
	actor, err := identity.Require(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	drawingID, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	voteType := c.Params("voteType")

	if _, err := h.drawings.Get(drawingID); err != nil {
		return respondError(c, err)
	}

	action, err := h.votes.SetVote(drawingID, actor.UserID, voteType)
	if err != nil {
		return respondError(c, err)
	}

	userVote, err := h.votes.UserVote(drawingID, actor.UserID)
	if err != nil {
		return respondError(c, err)
	}
	counts, err := h.votes.Counts(drawingID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.VoteResponse{
		Success:   true,
		Action:    action,
		UserVote:  userVote,
		Upvotes:   counts.Upvotes,
		Downvotes: counts.Downvotes,
	})
}

// Counts is admin-only: raw tallies for one drawing.
func (h *VoteHandler) Counts(c *fiber.Ctx) error {
	drawingID, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	counts, err := h.votes.Counts(drawingID)
	if err != nil {
		return respondError(c, err)
	}

	var userVote *string
	if actor, ok := identity.FromContext(c); ok {
		userVote, err = h.votes.UserVote(drawingID, actor.UserID)
		if err != nil {
			return respondError(c, err)
		}
	}

	return c.JSON(dto.VoteCountsResponse{
		Upvotes:   counts.Upvotes,
		Downvotes: counts.Downvotes,
		UserVote:  userVote,
	})
}
