package models

// UserInterest is one declared interest tag. The whole set for a user is
// replaced wholesale on profile edit; Position preserves insertion order.
type UserInterest struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID   int64  `gorm:"index:idx_user_interest,unique;not null" json:"user_id"`
	Tag      string `gorm:"index:idx_user_interest,unique;not null;type:varchar(64)" json:"tag"`
	Position int    `gorm:"not null" json:"position"`
}
