package models

import "time"

// Like is a directional swipe edge. Append-only: never mutated or deleted.
// The (from,to) unique index makes RecordLike idempotent under races —
// a duplicate insert is dropped with ON CONFLICT DO NOTHING.
type Like struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	FromUserID int64     `gorm:"index:idx_like_edge,unique;not null" json:"from_user_id"`
	ToUserID   int64     `gorm:"index:idx_like_edge,unique;index;not null" json:"to_user_id"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}
