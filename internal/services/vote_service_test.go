package services

import (
	"testing"

	"github.com/mapboard-app/mapboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteServiceToggle(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoteService(db)
	user := seedUser(t, db, "voter", false, false)
	drawing := seedDrawing(t, db, nil)

	action, err := svc.SetVote(drawing.ID, user.ID, models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, VoteActionAdded, action)

	// Switching kind updates the existing row.
	action, err = svc.SetVote(drawing.ID, user.ID, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, VoteActionUpdated, action)

	vote, err := svc.UserVote(drawing.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.Equal(t, models.VoteDown, *vote)

	// Repeating the same kind removes the vote.
	action, err = svc.SetVote(drawing.ID, user.ID, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, VoteActionRemoved, action)

	vote, err = svc.UserVote(drawing.ID, user.ID)
	require.NoError(t, err)
	assert.Nil(t, vote)

	var count int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestVoteServiceRejectsUnknownKind(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoteService(db)

	_, err := svc.SetVote(1, 1, "sideways")
	assert.ErrorIs(t, err, ErrInvalidVoteType)
}

func TestVoteServiceCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoteService(db)
	alice := seedUser(t, db, "alice", false, false)
	bob := seedUser(t, db, "bob", false, false)
	carol := seedUser(t, db, "carol", false, false)
	drawing := seedDrawing(t, db, nil)

	for _, u := range []uint{alice.ID, bob.ID} {
		_, err := svc.SetVote(drawing.ID, u, models.VoteUp)
		require.NoError(t, err)
	}
	_, err := svc.SetVote(drawing.ID, carol.ID, models.VoteDown)
	require.NoError(t, err)

	counts, err := svc.Counts(drawing.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts.Upvotes)
	assert.EqualValues(t, 1, counts.Downvotes)
}

func TestVoteServiceBatchedLookups(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoteService(db)
	user := seedUser(t, db, "voter", false, false)
	first := seedDrawing(t, db, nil)
	second := seedDrawing(t, db, nil)
	unvoted := seedDrawing(t, db, nil)

	_, err := svc.SetVote(first.ID, user.ID, models.VoteUp)
	require.NoError(t, err)
	_, err = svc.SetVote(second.ID, user.ID, models.VoteDown)
	require.NoError(t, err)

	ids := []uint{first.ID, second.ID, unvoted.ID}

	counts, err := svc.CountsForDrawings(ids)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[first.ID].Upvotes)
	assert.EqualValues(t, 1, counts[second.ID].Downvotes)
	assert.EqualValues(t, 0, counts[unvoted.ID].Upvotes)
	assert.EqualValues(t, 0, counts[unvoted.ID].Downvotes)

	votes, err := svc.UserVotesForDrawings(ids, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VoteUp, votes[first.ID])
	assert.Equal(t, models.VoteDown, votes[second.ID])
	_, voted := votes[unvoted.ID]
	assert.False(t, voted)
}

func TestVoteServiceEmptyBatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoteService(db)

	counts, err := svc.CountsForDrawings(nil)
	require.NoError(t, err)
	assert.Empty(t, counts)

	votes, err := svc.UserVotesForDrawings(nil, 1)
	require.NoError(t, err)
	assert.Empty(t, votes)
}
