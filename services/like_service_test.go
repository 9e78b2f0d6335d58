package services

import (
	"testing"

	"dating-match-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLike(t *testing.T) {
	db := newTestDB(t)
	likes := NewLikeService(db)

	t.Run("idempotent: second call creates nothing", func(t *testing.T) {
		created, err := likes.RecordLike(1, 2)
		require.NoError(t, err)
		assert.True(t, created)

		created, err = likes.RecordLike(1, 2)
		require.NoError(t, err)
		assert.False(t, created)

		var count int64
		require.NoError(t, db.Model(&models.Like{}).
			Where("from_user_id = ? AND to_user_id = ?", 1, 2).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("opposite direction is a distinct edge", func(t *testing.T) {
		created, err := likes.RecordLike(2, 1)
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("self-like is rejected", func(t *testing.T) {
		_, err := likes.RecordLike(7, 7)
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})
}

func TestHasLikedAndReciprocity(t *testing.T) {
	db := newTestDB(t)
	likes := NewLikeService(db)

	_, err := likes.RecordLike(1, 2)
	require.NoError(t, err)

	t.Run("has liked", func(t *testing.T) {
		liked, err := likes.HasLiked(1, 2)
		require.NoError(t, err)
		assert.True(t, liked)

		liked, err = likes.HasLiked(2, 1)
		require.NoError(t, err)
		assert.False(t, liked)
	})

	t.Run("one-directional like is not reciprocal", func(t *testing.T) {
		reciprocal, err := likes.IsReciprocal(1, 2)
		require.NoError(t, err)
		assert.False(t, reciprocal)
	})

	t.Run("both directions make it reciprocal", func(t *testing.T) {
		_, err := likes.RecordLike(2, 1)
		require.NoError(t, err)

		reciprocal, err := likes.IsReciprocal(1, 2)
		require.NoError(t, err)
		assert.True(t, reciprocal)

		reciprocal, err = likes.IsReciprocal(2, 1)
		require.NoError(t, err)
		assert.True(t, reciprocal)
	})
}

func TestLikedTargetsOf(t *testing.T) {
	db := newTestDB(t)
	likes := NewLikeService(db)

	for _, target := range []int64{2, 3, 5} {
		_, err := likes.RecordLike(1, target)
		require.NoError(t, err)
	}
	_, err := likes.RecordLike(4, 1) // incoming like, must not appear
	require.NoError(t, err)

	targets, err := likes.LikedTargetsOf(1)
	require.NoError(t, err)
	assert.Len(t, targets, 3)
	for _, want := range []int64{2, 3, 5} {
		_, ok := targets[want]
		assert.True(t, ok, "expected %d in liked targets", want)
	}
	_, ok := targets[4]
	assert.False(t, ok)
}
