package models

import (
	"time"

	"gorm.io/gorm"
)

// DatingUser is the local profile record for a Telegram user.
// The primary key is the Telegram user ID, so identifiers are stable
// opaque int64 values with a natural total order.
type DatingUser struct {
	ID          int64   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Handle      string  `gorm:"uniqueIndex;not null" json:"handle"` // slugged display name, e.g. "anna-k-83f2"
	DisplayName string  `gorm:"not null" json:"display_name"`
	Bio         *string `json:"bio,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`

	// Subscription stub — managed by the housekeeping scheduler
	IsVIP        bool       `json:"is_vip" gorm:"column:is_vip;default:false"`
	VIPExpiresAt *time.Time `json:"vip_expires_at,omitempty" gorm:"column:vip_expires_at"`

	// Presence
	LastSeen       *time.Time `json:"last_seen,omitempty"`
	AvailableUntil *time.Time `json:"available_until,omitempty"` // end of the current availability window
	Hidden         bool       `json:"hidden" gorm:"default:false;index"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
