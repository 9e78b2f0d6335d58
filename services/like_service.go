package services

import (
	"fmt"

	"dating-match-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeService is the append-only ledger of directional swipe likes.
type LikeService struct {
	DB *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{DB: db}
}

// RecordLike stores the (from → to) edge. Idempotent: a duplicate call is a
// benign no-op reporting created=false, never an error. The unique index on
// the edge plus ON CONFLICT DO NOTHING keeps this safe under races.
func (s *LikeService) RecordLike(fromUserID, toUserID int64) (created bool, err error) {
	if fromUserID == toUserID {
		return false, fmt.Errorf("like %d → %d: %w", fromUserID, toUserID, ErrInvalidTarget)
	}

	like := models.Like{
		ID:         uuid.NewString(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
	}
	res := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "from_user_id"}, {Name: "to_user_id"}},
		DoNothing: true,
	}).Create(&like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// HasLiked reports whether the (from → to) edge exists.
func (s *LikeService) HasLiked(fromUserID, toUserID int64) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Like{}).
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		Count(&count).Error
	return count > 0, err
}

// LikedTargetsOf returns the set of users the given user has already liked.
// The discovery feed uses this to drop already-evaluated candidates.
func (s *LikeService) LikedTargetsOf(userID int64) (map[int64]struct{}, error) {
	var targets []int64
	err := s.DB.Model(&models.Like{}).
		Where("from_user_id = ?", userID).
		Pluck("to_user_id", &targets).Error
	if err != nil {
		return nil, err
	}
	set := make(map[int64]struct{}, len(targets))
	for _, t := range targets {
		set[t] = struct{}{}
	}
	return set, nil
}

// IsReciprocal reports whether both directions of the edge exist.
func (s *LikeService) IsReciprocal(a, b int64) (bool, error) {
	ab, err := s.HasLiked(a, b)
	if err != nil || !ab {
		return false, err
	}
	return s.HasLiked(b, a)
}
