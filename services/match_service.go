package services

import (
	"errors"
	"fmt"
	"sync"

	"dating-match-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchService canonicalizes and persists confirmed mutual matches.
type MatchService struct {
	DB *gorm.DB

	// pairLocks serializes EnsureMatch per canonical pair so that reciprocal
	// likes landing simultaneously from both sides cannot both insert. The
	// unique index on (user1_id, user2_id) backs this up at the storage layer.
	mu        sync.Mutex
	pairLocks map[[2]int64]*sync.Mutex
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{DB: db, pairLocks: make(map[[2]int64]*sync.Mutex)}
}

// CanonicalPair orders an unordered user pair as (min, max).
func CanonicalPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

func (s *MatchService) lockPair(u1, u2 int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int64{u1, u2}
	l, ok := s.pairLocks[key]
	if !ok {
		l = &sync.Mutex{}
		s.pairLocks[key] = l
	}
	return l
}

// EnsureMatch creates the match row for the unordered pair {a,b} if it does
// not exist yet. Exactly one row can ever exist per pair; a duplicate call
// returns the existing row with created=false.
func (s *MatchService) EnsureMatch(userA, userB int64) (models.Match, bool, error) {
	if userA == userB {
		return models.Match{}, false, fmt.Errorf("match %d with itself: %w", userA, ErrInvalidTarget)
	}
	u1, u2 := CanonicalPair(userA, userB)

	l := s.lockPair(u1, u2)
	l.Lock()
	defer l.Unlock()

	match := models.Match{
		ID:      uuid.NewString(),
		User1ID: u1,
		User2ID: u2,
	}
	res := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
		DoNothing: true,
	}).Create(&match)
	if res.Error != nil {
		return models.Match{}, false, res.Error
	}
	if res.RowsAffected > 0 {
		return match, true, nil
	}

	// Lost the insert to an earlier call — fetch the surviving row.
	var existing models.Match
	if err := s.DB.First(&existing, "user1_id = ? AND user2_id = ?", u1, u2).Error; err != nil {
		return models.Match{}, false, err
	}
	return existing, false, nil
}

// MatchesFor lists the user's matches, newest first.
func (s *MatchService) MatchesFor(userID int64) ([]models.Match, error) {
	var matches []models.Match
	err := s.DB.Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&matches).Error
	return matches, err
}

// GetMatch fetches one match, scoped to a viewer: callers who are not a
// party to the match get ErrForbidden, unknown IDs get ErrNotFound.
func (s *MatchService) GetMatch(matchID string, viewerID int64) (models.Match, error) {
	var match models.Match
	if err := s.DB.First(&match, "id = ?", matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Match{}, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
		}
		return models.Match{}, err
	}
	if match.User1ID != viewerID && match.User2ID != viewerID {
		return models.Match{}, fmt.Errorf("match %s: %w", matchID, ErrForbidden)
	}
	return match, nil
}
