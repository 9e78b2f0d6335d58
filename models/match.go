package models

import "time"

// Match is a confirmed reciprocal like between two users.
// Invariant: User1ID < User2ID, so an unordered pair maps to exactly one
// row; the unique index enforces that at the storage layer.
type Match struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	User1ID   int64     `gorm:"index:idx_match_pair,unique;not null" json:"user1_id"`
	User2ID   int64     `gorm:"index:idx_match_pair,unique;index;not null" json:"user2_id"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Peer returns the other member of the match relative to userID.
func (m Match) Peer(userID int64) int64 {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}
