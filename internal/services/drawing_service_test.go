package services

import (
	"encoding/json"
	"testing"

	"github.com/mapboard-app/mapboard/internal/dto"
	"github.com/mapboard-app/mapboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawingServiceCreateRequiresPrivilege(t *testing.T) {
	db := newTestDB(t)
	svc := NewDrawingService(db, NewVoteService(db))
	user := seedUser(t, db, "alice", false, false)

	_, err := svc.Create(user.ID, &dto.CreateDrawingRequest{
		Type: models.DrawingMarker,
		Data: json.RawMessage(`{"position":{"lat":1,"lng":2}}`),
	})
	assert.ErrorIs(t, err, ErrDrawingPrivileges)
}

func TestDrawingServiceCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewDrawingService(db, NewVoteService(db))
	user := seedUser(t, db, "alice", false, true)

	drawing, err := svc.Create(user.ID, &dto.CreateDrawingRequest{
		Type:      models.DrawingCircle,
		Data:      json.RawMessage(`{"center":{"lat":42.19,"lng":24.33},"radius":500}`),
		PlaceType: models.PlaceParks,
	})
	require.NoError(t, err)

	assert.Equal(t, "Untitled circle", drawing.Title, "missing title gets a type-based default")
	require.NotNil(t, drawing.UserID)
	assert.Equal(t, user.ID, *drawing.UserID)
	require.NotNil(t, drawing.PlaceType)
	assert.Equal(t, models.PlaceParks, *drawing.PlaceType)
}

func TestDrawingServiceCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewDrawingService(db, NewVoteService(db))
	user := seedUser(t, db, "alice", false, true)

	cases := []struct {
		name string
		req  dto.CreateDrawingRequest
	}{
		{"unknown type", dto.CreateDrawingRequest{Type: "scribble", Data: json.RawMessage(`{}`)}},
		{"bad geometry", dto.CreateDrawingRequest{Type: models.DrawingCircle, Data: json.RawMessage(`{"center":{"lat":99,"lng":0},"radius":10}`)}},
		{"unknown place", dto.CreateDrawingRequest{Type: models.DrawingMarker, Data: json.RawMessage(`{"position":{"lat":1,"lng":2}}`), PlaceType: "castle"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(user.ID, &tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestDrawingServiceListWithViewerVotes(t *testing.T) {
	db := newTestDB(t)
	votes := NewVoteService(db)
	svc := NewDrawingService(db, votes)
	viewer := seedUser(t, db, "viewer", false, false)
	voted := seedDrawing(t, db, nil)
	plain := seedDrawing(t, db, nil)

	_, err := votes.SetVote(voted.ID, viewer.ID, models.VoteUp)
	require.NoError(t, err)

	views, err := svc.List(&viewer.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	byID := map[uint]dto.DrawingView{}
	for _, v := range views {
		byID[v.ID] = v
	}
	require.NotNil(t, byID[voted.ID].UserVote)
	assert.Equal(t, models.VoteUp, *byID[voted.ID].UserVote)
	assert.EqualValues(t, 1, byID[voted.ID].Upvotes)
	assert.Nil(t, byID[plain.ID].UserVote)

	// Anonymous listing carries counts but no personal vote.
	anon, err := svc.List(nil)
	require.NoError(t, err)
	for _, v := range anon {
		assert.Nil(t, v.UserVote)
	}
}

func TestDrawingServiceDeleteOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewDrawingService(db, NewVoteService(db))
	owner := seedUser(t, db, "owner", false, true)
	stranger := seedUser(t, db, "stranger", false, true)
	admin := seedUser(t, db, "admin", true, true)
	drawing := seedDrawing(t, db, &owner.ID)

	assert.ErrorIs(t, svc.Delete(drawing.ID, stranger.ID), ErrNotDrawingOwner)
	require.NoError(t, svc.Delete(drawing.ID, owner.ID))

	// Admins may delete drawings they do not own.
	other := seedDrawing(t, db, &owner.ID)
	require.NoError(t, svc.Delete(other.ID, admin.ID))

	assert.ErrorIs(t, svc.Delete(9999, owner.ID), ErrDrawingNotFound)
}

func TestUserDeletionPreservesContent(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "departing", false, true)
	drawing := seedDrawing(t, db, &author.ID)
	comment := models.Comment{Content: "left behind", UserID: &author.ID, DrawingID: &drawing.ID}
	require.NoError(t, db.Create(&comment).Error)

	require.NoError(t, db.Delete(&models.User{}, author.ID).Error)

	// Content survives the account; authorship is nulled, not cascaded.
	var gotDrawing models.Drawing
	require.NoError(t, db.First(&gotDrawing, drawing.ID).Error)
	assert.Nil(t, gotDrawing.UserID)

	var gotComment models.Comment
	require.NoError(t, db.First(&gotComment, comment.ID).Error)
	assert.Nil(t, gotComment.UserID)
	assert.Equal(t, "left behind", gotComment.Content)
}

func TestDrawingServiceDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	votes := NewVoteService(db)
	svc := NewDrawingService(db, votes)
	owner := seedUser(t, db, "owner", false, true)
	drawing := seedDrawing(t, db, &owner.ID)

	_, err := votes.SetVote(drawing.ID, owner.ID, models.VoteUp)
	require.NoError(t, err)
	comment := models.Comment{Content: "nice spot", DrawingID: &drawing.ID}
	require.NoError(t, db.Create(&comment).Error)

	require.NoError(t, svc.Delete(drawing.ID, owner.ID))

	var voteCount, commentCount int64
	require.NoError(t, db.Model(&models.Vote{}).Where("drawing_id = ?", drawing.ID).Count(&voteCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Where("drawing_id = ?", drawing.ID).Count(&commentCount).Error)
	assert.EqualValues(t, 0, voteCount)
	assert.EqualValues(t, 0, commentCount)
}
