package services

import (
	"path/filepath"
	"testing"
	"time"

	"dating-match-system/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.DatingUser{},
		&models.UserLocation{},
		&models.UserInterest{},
		&models.Like{},
		&models.Match{},
	))
	return db
}

// seedUser inserts a minimal user row.
func seedUser(t *testing.T, db *gorm.DB, id int64, name string) models.DatingUser {
	t.Helper()

	user := models.DatingUser{
		ID:          id,
		Handle:      name,
		DisplayName: name,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// seedUserAt inserts a user plus a stored location.
func seedUserAt(t *testing.T, db *gorm.DB, id int64, name string, lat, lon float64) models.DatingUser {
	t.Helper()

	user := seedUser(t, db, id, name)
	geo := NewGeoService(db)
	require.NoError(t, geo.UpsertLocation(id, lat, lon))
	return user
}

// backdateUser shifts a user's created_at so registration order is distinct.
func backdateUser(t *testing.T, db *gorm.DB, id int64, by time.Duration) {
	t.Helper()

	require.NoError(t, db.Model(&models.DatingUser{}).Where("id = ?", id).
		Update("created_at", time.Now().Add(-by)).Error)
}
