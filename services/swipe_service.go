package services

import (
	"errors"
	"fmt"
	"log"

	"dating-match-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SwipeDirection is a typed swipe decision. Directions arrive from the
// transport layer as explicit enum strings, never parsed out of UI labels.
type SwipeDirection string

const (
	DirectionLike    SwipeDirection = "LIKE"
	DirectionDislike SwipeDirection = "DISLIKE"
	DirectionUndo    SwipeDirection = "UNDO"
)

// ParseSwipeDirection validates a wire value into a SwipeDirection.
func ParseSwipeDirection(raw string) (SwipeDirection, error) {
	switch SwipeDirection(raw) {
	case DirectionLike, DirectionDislike, DirectionUndo:
		return SwipeDirection(raw), nil
	default:
		return "", fmt.Errorf("unknown swipe direction %q", raw)
	}
}

// SwipeResult is the outcome of one decision.
type SwipeResult struct {
	Matched bool    `json:"matched"`
	MatchID string  `json:"match_id,omitempty"`
	Queue   []int64 `json:"queue"`
}

// SwipeService is the swipe façade: it validates the target, updates the
// like ledger, triggers match creation on reciprocity and keeps the
// per-viewer session queue current.
type SwipeService struct {
	DB       *gorm.DB
	Likes    *LikeService
	Matches  *MatchService
	Sessions SwipeSessionStore
	Notifier *MatchNotifier // nil when no bot token is configured
}

func NewSwipeService(db *gorm.DB, likes *LikeService, matches *MatchService, sessions SwipeSessionStore, notifier *MatchNotifier) *SwipeService {
	return &SwipeService{DB: db, Likes: likes, Matches: matches, Sessions: sessions, Notifier: notifier}
}

// Decide applies one swipe decision for (viewer, target).
//
// LIKE records the edge and, when the like is reciprocal, ensures the match.
// DISLIKE persists nothing; the candidate just leaves the session queue.
// UNDO restores the most recently removed candidate to the queue front and
// is a no-op when the undo slot is empty.
func (s *SwipeService) Decide(viewerID, targetID int64, direction SwipeDirection) (SwipeResult, error) {
	if direction == DirectionUndo {
		s.Sessions.RestoreLast(viewerID)
		return SwipeResult{Matched: false, Queue: s.Sessions.Queue(viewerID)}, nil
	}

	if targetID == viewerID {
		return SwipeResult{}, fmt.Errorf("swipe by %d: %w", viewerID, ErrInvalidTarget)
	}

	var target models.DatingUser
	if err := s.DB.First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SwipeResult{}, fmt.Errorf("swipe target %d: %w", targetID, ErrTargetNotFound)
		}
		return SwipeResult{}, err
	}

	result := SwipeResult{}
	if direction == DirectionLike {
		if _, err := s.Likes.RecordLike(viewerID, targetID); err != nil {
			return SwipeResult{}, err
		}
		reciprocal, err := s.Likes.IsReciprocal(viewerID, targetID)
		if err != nil {
			return SwipeResult{}, err
		}
		if reciprocal {
			match, created, err := s.Matches.EnsureMatch(viewerID, targetID)
			if err != nil {
				return SwipeResult{}, err
			}
			result.Matched = true
			result.MatchID = match.ID
			if created && s.Notifier != nil {
				if err := s.Notifier.NotifyMatch(s.DB, match); err != nil {
					log.Printf("⚠️ [SWIPE] match notification failed for %s: %v", match.ID, err)
				}
			}
		}
	}

	s.Sessions.PopCandidate(viewerID, targetID)
	result.Queue = s.Sessions.Queue(viewerID)
	return result, nil
}

// PostDecision handles POST /swipes {target_id, direction}.
func (s *SwipeService) PostDecision(c *fiber.Ctx) error {
	viewerID, err := viewerFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user context"})
	}

	var req struct {
		TargetID  int64  `json:"target_id"`
		Direction string `json:"direction"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}

	direction, err := ParseSwipeDirection(req.Direction)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := s.Decide(viewerID, req.TargetID, direction)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(result)
}
