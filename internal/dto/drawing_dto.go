package dto

import (
	"encoding/json"

	"github.com/mapboard-app/mapboard/internal/models"
)

type CreateDrawingRequest struct {
	Type        string          `json:"type"`
	Data        json.RawMessage `json:"data"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	PlaceType   string          `json:"place_type"`
}

// DrawingView is a drawing row enriched with its vote aggregates and the
// requesting user's own vote (nil when anonymous or not voted).
type DrawingView struct {
	models.Drawing
	Upvotes   int64   `json:"upvotes"`
	Downvotes int64   `json:"downvotes"`
	UserVote  *string `json:"userVote"`
}

type DrawingResponse struct {
	Success bool           `json:"success"`
	Drawing models.Drawing `json:"drawing"`
}
