package services

import (
	"testing"

	"dating-match-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSwipe(db *gorm.DB, sessions SwipeSessionStore) *SwipeService {
	return NewSwipeService(db, NewLikeService(db), NewMatchService(db), sessions, nil)
}

func TestDecide(t *testing.T) {
	db := newTestDB(t)
	sessions := NewInMemorySessionStore()
	swipes := newSwipe(db, sessions)

	seedUser(t, db, 1, "alice")
	seedUser(t, db, 2, "bob")
	seedUser(t, db, 3, "carol")

	t.Run("like without reciprocity does not match", func(t *testing.T) {
		result, err := swipes.Decide(1, 2, DirectionLike)
		require.NoError(t, err)
		assert.False(t, result.Matched)
		assert.Empty(t, result.MatchID)
	})

	t.Run("reciprocal like creates exactly one match", func(t *testing.T) {
		result, err := swipes.Decide(2, 1, DirectionLike)
		require.NoError(t, err)
		assert.True(t, result.Matched)
		assert.NotEmpty(t, result.MatchID)

		var count int64
		require.NoError(t, db.Model(&models.Match{}).
			Where("user1_id = ? AND user2_id = ?", 1, 2).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("repeated like reports the existing match", func(t *testing.T) {
		result, err := swipes.Decide(1, 2, DirectionLike)
		require.NoError(t, err)
		assert.True(t, result.Matched)

		var count int64
		require.NoError(t, db.Model(&models.Match{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("dislike persists nothing", func(t *testing.T) {
		result, err := swipes.Decide(1, 3, DirectionDislike)
		require.NoError(t, err)
		assert.False(t, result.Matched)

		var count int64
		require.NoError(t, db.Model(&models.Like{}).
			Where("from_user_id = ? AND to_user_id = ?", 1, 3).
			Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("unknown target fails", func(t *testing.T) {
		_, err := swipes.Decide(1, 9999, DirectionLike)
		assert.ErrorIs(t, err, ErrTargetNotFound)
	})

	t.Run("self target fails", func(t *testing.T) {
		_, err := swipes.Decide(1, 1, DirectionLike)
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})
}

func TestDecideQueueAndUndo(t *testing.T) {
	db := newTestDB(t)
	sessions := NewInMemorySessionStore()
	swipes := newSwipe(db, sessions)

	seedUser(t, db, 1, "viewer")
	seedUser(t, db, 2, "first")
	seedUser(t, db, 3, "second")

	sessions.SetQueue(1, []int64{2, 3})

	t.Run("decision removes the candidate from the queue", func(t *testing.T) {
		result, err := swipes.Decide(1, 2, DirectionDislike)
		require.NoError(t, err)
		assert.Equal(t, []int64{3}, result.Queue)
	})

	t.Run("undo restores the candidate to the front", func(t *testing.T) {
		result, err := swipes.Decide(1, 0, DirectionUndo)
		require.NoError(t, err)
		assert.False(t, result.Matched)
		assert.Equal(t, []int64{2, 3}, result.Queue)
	})

	t.Run("undo with empty history is a no-op", func(t *testing.T) {
		result, err := swipes.Decide(1, 0, DirectionUndo)
		require.NoError(t, err)
		assert.False(t, result.Matched)
		assert.Equal(t, []int64{2, 3}, result.Queue)
	})
}

func TestParseSwipeDirection(t *testing.T) {
	for _, raw := range []string{"LIKE", "DISLIKE", "UNDO"} {
		dir, err := ParseSwipeDirection(raw)
		require.NoError(t, err)
		assert.Equal(t, SwipeDirection(raw), dir)
	}

	_, err := ParseSwipeDirection("SUPERLIKE")
	assert.Error(t, err)

	_, err = ParseSwipeDirection("like")
	assert.Error(t, err, "directions are explicit enum values, not free text")
}
