package services

import (
	"strings"

	"dating-match-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxInterestTagLen caps a single tag; longer tags are truncated on write.
const MaxInterestTagLen = 64

// InterestService owns the declared interest tags per user.
type InterestService struct {
	DB *gorm.DB
}

func NewInterestService(db *gorm.DB) *InterestService {
	return &InterestService{DB: db}
}

// SetInterests replaces the user's whole tag set (no partial patching).
// Tags are trimmed, deduplicated case-insensitively and kept in insertion
// order. An empty input clears the set.
func (s *InterestService) SetInterests(userID int64, tags []string) error {
	seen := make(map[string]struct{}, len(tags))
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if len(tag) > MaxInterestTagLen {
			tag = tag[:MaxInterestTagLen]
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, tag)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserInterest{}).Error; err != nil {
			return err
		}
		for i, tag := range cleaned {
			row := models.UserInterest{
				ID:       uuid.NewString(),
				UserID:   userID,
				Tag:      tag,
				Position: i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetInterests returns the user's tags in insertion order, empty if none.
func (s *InterestService) GetInterests(userID int64) ([]string, error) {
	var rows []models.UserInterest
	if err := s.DB.Where("user_id = ?", userID).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	tags := make([]string, 0, len(rows))
	for _, r := range rows {
		tags = append(tags, r.Tag)
	}
	return tags, nil
}

// GetInterestsBatch loads tags for many users at once. Every requested user
// is present in the result; users without tags map to an empty slice.
func (s *InterestService) GetInterestsBatch(userIDs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(userIDs))
	for _, id := range userIDs {
		out[id] = []string{}
	}
	if len(userIDs) == 0 {
		return out, nil
	}

	var rows []models.UserInterest
	if err := s.DB.Where("user_id IN ?", userIDs).Order("user_id, position ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.UserID] = append(out[r.UserID], r.Tag)
	}
	return out, nil
}
