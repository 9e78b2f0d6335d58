package services

import (
	"testing"
	"time"

	"dating-match-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProfiles(db *gorm.DB) *ProfileService {
	return NewProfileService(db, NewGeoService(db), NewInterestService(db), NewMatchService(db))
}

func TestUpsertProfile(t *testing.T) {
	db := newTestDB(t)
	profiles := newProfiles(db)

	t.Run("creates with a slugged handle", func(t *testing.T) {
		bio := "Coffee and hiking"
		user, err := profiles.UpsertProfile(100, "Anna Karlsson", &bio)
		require.NoError(t, err)

		assert.Equal(t, int64(100), user.ID)
		assert.Equal(t, "Anna Karlsson", user.DisplayName)
		assert.Contains(t, user.Handle, "anna-karlsson-")
		require.NotNil(t, user.Bio)
		assert.Equal(t, bio, *user.Bio)
	})

	t.Run("update keeps the handle stable", func(t *testing.T) {
		before, err := profiles.UpsertProfile(100, "Anna Karlsson", nil)
		require.NoError(t, err)

		after, err := profiles.UpsertProfile(100, "Anna K.", nil)
		require.NoError(t, err)

		assert.Equal(t, before.Handle, after.Handle)
		assert.Equal(t, "Anna K.", after.DisplayName)
		assert.Nil(t, after.Bio)
	})

	t.Run("empty display name is rejected", func(t *testing.T) {
		_, err := profiles.UpsertProfile(101, "   ", nil)
		assert.Error(t, err)
	})
}

func TestTouchLastSeen(t *testing.T) {
	db := newTestDB(t)
	profiles := newProfiles(db)

	seedUser(t, db, 1, "anna")
	require.NoError(t, profiles.TouchLastSeen(1))

	var user models.DatingUser
	require.NoError(t, db.First(&user, "id = ?", 1).Error)
	require.NotNil(t, user.LastSeen)
	assert.WithinDuration(t, time.Now(), *user.LastSeen, 5*time.Second)
}

func TestGrantVIP(t *testing.T) {
	db := newTestDB(t)
	profiles := newProfiles(db)

	seedUser(t, db, 1, "anna")
	until := time.Now().Add(30 * 24 * time.Hour)
	require.NoError(t, profiles.GrantVIP(1, until))

	var user models.DatingUser
	require.NoError(t, db.First(&user, "id = ?", 1).Error)
	assert.True(t, user.IsVIP)
	require.NotNil(t, user.VIPExpiresAt)
}
