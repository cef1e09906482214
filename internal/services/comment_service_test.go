package services

import (
	"testing"
	"time"

	"github.com/mapboard-app/mapboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentServiceCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	user := seedUser(t, db, "alice", false, false)
	drawing := seedDrawing(t, db, nil)

	view, err := svc.Create("  great find  ", &user.ID, &drawing.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, "great find", view.Content, "content is trimmed")
	require.NotNil(t, view.Username)
	assert.Equal(t, "alice", *view.Username)
}

func TestCommentServiceCreateAnonymous(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)

	view, err := svc.Create("drive-by remark", nil, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, view.UserID)
	assert.Nil(t, view.Username)
}

func TestCommentServiceCreateDropsStaleAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)

	ghost := uint(9999)
	view, err := svc.Create("who wrote this", &ghost, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, view.UserID, "unresolvable author falls back to anonymous")
}

func TestCommentServiceCreateRejectsEmptyContent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)

	_, err := svc.Create("   ", nil, nil, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCommentServiceThreadPostBumpsWatermark(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	category := firstCategory(t, db, "Parks")
	thread := seedThread(t, db, category.ID, nil, "Quiet corners")

	// Backdate the watermark so the bump is observable.
	stale := time.Now().Add(-24 * time.Hour)
	require.NoError(t, db.Model(&models.ForumThread{}).
		Where("id = ?", thread.ID).
		Update("last_post_at", stale).Error)

	_, err := svc.Create("the north gate one", nil, nil, &thread.ID)
	require.NoError(t, err)

	var got models.ForumThread
	require.NoError(t, db.First(&got, thread.ID).Error)
	assert.True(t, got.LastPostAt.After(stale.Add(time.Hour)))
}

func TestCommentServiceListAllIncludesDrawingTitle(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	user := seedUser(t, db, "alice", false, false)
	drawing := seedDrawing(t, db, nil)

	_, err := svc.Create("on the drawing", &user.ID, &drawing.ID, nil)
	require.NoError(t, err)
	_, err = svc.Create("free-floating", nil, nil, nil)
	require.NoError(t, err)

	views, err := svc.ListAll()
	require.NoError(t, err)
	require.Len(t, views, 2)

	var attached, floating int
	for _, v := range views {
		if v.DrawingTitle != nil {
			attached++
			assert.Equal(t, drawing.Title, *v.DrawingTitle)
		} else {
			floating++
		}
	}
	assert.Equal(t, 1, attached)
	assert.Equal(t, 1, floating)
}

func TestCommentServiceDeleteOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	author := seedUser(t, db, "author", false, false)
	stranger := seedUser(t, db, "stranger", false, false)

	view, err := svc.Create("mine", &author.ID, nil, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(view.ID, stranger.ID), ErrNotCommentOwner)
	require.NoError(t, svc.Delete(view.ID, author.ID))

	_, err = svc.Get(view.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentServiceAnonymousCommentUndeletable(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	user := seedUser(t, db, "alice", false, false)

	view, err := svc.Create("anonymous", nil, nil, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(view.ID, user.ID), ErrNotCommentOwner)
}
