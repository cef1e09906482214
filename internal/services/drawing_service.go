package services

import (
	"errors"
	"fmt"

	"github.com/mapboard-app/mapboard/internal/dto"
	"github.com/mapboard-app/mapboard/internal/geometry"
	"github.com/mapboard-app/mapboard/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrDrawingNotFound   = errors.New("drawing not found")
	ErrDrawingPrivileges = errors.New("drawing privileges required")
	ErrNotDrawingOwner   = errors.New("not allowed to delete this drawing")
)

type DrawingService struct {
	db    *gorm.DB
	votes *VoteService
}

func NewDrawingService(db *gorm.DB, votes *VoteService) *DrawingService {
	return &DrawingService{db: db, votes: votes}
}

// List returns all drawings, newest first, enriched with vote aggregates and
// the viewer's own vote. Vote data comes from two batched queries instead of
// one pair per drawing.
func (s *DrawingService) List(viewerID *uint) ([]dto.DrawingView, error) {
	var drawings []models.Drawing
	if err := s.db.Order("created_at DESC").Find(&drawings).Error; err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}

	ids := make([]uint, len(drawings))
	for i, d := range drawings {
		ids[i] = d.ID
	}

	counts, err := s.votes.CountsForDrawings(ids)
	if err != nil {
		return nil, err
	}

	userVotes := map[uint]string{}
	if viewerID != nil {
		userVotes, err = s.votes.UserVotesForDrawings(ids, *viewerID)
		if err != nil {
			return nil, err
		}
	}

	views := make([]dto.DrawingView, len(drawings))
	for i, d := range drawings {
		view := dto.DrawingView{
			Drawing:   d,
			Upvotes:   counts[d.ID].Upvotes,
			Downvotes: counts[d.ID].Downvotes,
		}
		if vote, ok := userVotes[d.ID]; ok {
			v := vote
			view.UserVote = &v
		}
		views[i] = view
	}
	return views, nil
}

func (s *DrawingService) Get(id uint) (*models.Drawing, error) {
	var drawing models.Drawing
	if err := s.db.First(&drawing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDrawingNotFound
		}
		return nil, fmt.Errorf("lookup drawing: %w", err)
	}
	return &drawing, nil
}

// Create validates the geometry payload against the drawing type and persists
// the annotation. The caller must hold drawing privileges.
func (s *DrawingService) Create(userID uint, req *dto.CreateDrawingRequest) (*models.Drawing, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDrawingPrivileges
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !user.CanDraw {
		return nil, ErrDrawingPrivileges
	}

	if !models.IsValidDrawingType(req.Type) {
		return nil, fmt.Errorf("%w: unknown drawing type %q", ErrValidation, req.Type)
	}
	if err := geometry.Validate(req.Type, req.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var placeType *string
	if req.PlaceType != "" {
		if !models.IsValidPlaceType(req.PlaceType) {
			return nil, fmt.Errorf("%w: unknown place type %q", ErrValidation, req.PlaceType)
		}
		placeType = &req.PlaceType
	}

	title := req.Title
	if title == "" {
		title = "Untitled " + req.Type
	}

	drawing := models.Drawing{
		Type:        req.Type,
		Data:        datatypes.JSON(req.Data),
		Title:       title,
		Description: req.Description,
		PlaceType:   placeType,
		UserID:      &userID,
	}
	if err := s.db.Create(&drawing).Error; err != nil {
		return nil, fmt.Errorf("create drawing: %w", err)
	}
	return &drawing, nil
}

// Delete removes a drawing; its comments and votes go with it via the FK
// cascade. Only the owner or an admin may delete.
func (s *DrawingService) Delete(id, actorID uint) error {
	drawing, err := s.Get(id)
	if err != nil {
		return err
	}

	var actor models.User
	if err := s.db.First(&actor, "id = ?", actorID).Error; err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if !actor.IsAdmin && (drawing.UserID == nil || *drawing.UserID != actorID) {
		return ErrNotDrawingOwner
	}

	if err := s.db.Delete(&models.Drawing{}, id).Error; err != nil {
		return fmt.Errorf("delete drawing: %w", err)
	}
	return nil
}
