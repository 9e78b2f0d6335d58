package models

import "time"

// UserLocation is the single current position for a user (WGS84 degrees).
// Overwritten on every location update; no history is kept.
type UserLocation struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
