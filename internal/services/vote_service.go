package services

import (
	"errors"
	"fmt"

	"github.com/mapboard-app/mapboard/internal/dto"
	"github.com/mapboard-app/mapboard/internal/models"
	"gorm.io/gorm"
)

var ErrInvalidVoteType = errors.New("invalid vote type")

const (
	VoteActionAdded   = "added"
	VoteActionUpdated = "updated"
	VoteActionRemoved = "removed"
)

type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

// SetVote applies toggle semantics: no existing vote inserts, the same kind
// again deletes, a different kind updates in place. The unique
// (drawing_id, user_id) index keeps concurrent double-clicks from ever
// producing two rows.
func (s *VoteService) SetVote(drawingID, userID uint, voteType string) (string, error) {
	if !models.IsValidVoteType(voteType) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVoteType, voteType)
	}

	var existing models.Vote
	err := s.db.Where("drawing_id = ? AND user_id = ?", drawingID, userID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		vote := models.Vote{DrawingID: drawingID, UserID: userID, VoteType: voteType}
		if err := s.db.Create(&vote).Error; err != nil {
			return "", fmt.Errorf("insert vote: %w", err)
		}
		return VoteActionAdded, nil
	case err != nil:
		return "", fmt.Errorf("lookup vote: %w", err)
	case existing.VoteType == voteType:
		if err := s.db.Delete(&models.Vote{}, existing.ID).Error; err != nil {
			return "", fmt.Errorf("remove vote: %w", err)
		}
		return VoteActionRemoved, nil
	default:
		if err := s.db.Model(&models.Vote{}).
			Where("id = ?", existing.ID).
			Update("vote_type", voteType).Error; err != nil {
			return "", fmt.Errorf("update vote: %w", err)
		}
		return VoteActionUpdated, nil
	}
}

// UserVote returns the user's current vote kind for a drawing, or nil.
func (s *VoteService) UserVote(drawingID, userID uint) (*string, error) {
	var vote models.Vote
	err := s.db.Where("drawing_id = ? AND user_id = ?", drawingID, userID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup vote: %w", err)
	}
	return &vote.VoteType, nil
}

func (s *VoteService) Counts(drawingID uint) (dto.VoteCounts, error) {
	counts, err := s.CountsForDrawings([]uint{drawingID})
	if err != nil {
		return dto.VoteCounts{}, err
	}
	return counts[drawingID], nil
}

// CountsForDrawings tallies votes for a set of drawings in one grouped query.
func (s *VoteService) CountsForDrawings(drawingIDs []uint) (map[uint]dto.VoteCounts, error) {
	counts := make(map[uint]dto.VoteCounts, len(drawingIDs))
	for _, id := range drawingIDs {
		counts[id] = dto.VoteCounts{}
	}
	if len(drawingIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		DrawingID uint
		VoteType  string
		Count     int64
	}
	if err := s.db.Model(&models.Vote{}).
		Select("drawing_id, vote_type, COUNT(*) AS count").
		Where("drawing_id IN ?", drawingIDs).
		Group("drawing_id, vote_type").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}

	for _, row := range rows {
		c := counts[row.DrawingID]
		switch row.VoteType {
		case models.VoteUp:
			c.Upvotes = row.Count
		case models.VoteDown:
			c.Downvotes = row.Count
		}
		counts[row.DrawingID] = c
	}
	return counts, nil
}

// UserVotesForDrawings returns the user's vote kind per drawing in one query.
func (s *VoteService) UserVotesForDrawings(drawingIDs []uint, userID uint) (map[uint]string, error) {
	votes := make(map[uint]string)
	if len(drawingIDs) == 0 {
		return votes, nil
	}

	var rows []models.Vote
	if err := s.db.
		Where("drawing_id IN ? AND user_id = ?", drawingIDs, userID).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("lookup user votes: %w", err)
	}
	for _, v := range rows {
		votes[v.DrawingID] = v.VoteType
	}
	return votes, nil
}
