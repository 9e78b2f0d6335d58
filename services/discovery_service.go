package services

import (
	"sort"
	"strconv"
	"time"

	"dating-match-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Feed sizing: callers that omit the size or pass a non-positive value get
// DefaultFeedSize; the candidate pool is capped at MaxFeedPool regardless of
// what was requested, to bound query cost.
const (
	DefaultFeedSize = 20
	MaxFeedPool     = 100
)

// Candidate is one feed entry — a projection computed per request, never
// persisted. DistanceMeters and LastSeen are nil when either side has no
// stored location.
type Candidate struct {
	UserID         int64      `json:"user_id"`
	DisplayName    string     `json:"display_name"`
	Bio            *string    `json:"bio,omitempty"`
	PhotoURL       *string    `json:"photo_url,omitempty"`
	DistanceMeters *float64   `json:"distance_meters,omitempty"`
	LastSeen       *time.Time `json:"last_seen,omitempty"`
	Interests      []string   `json:"interests"`
}

// DiscoveryService composes the geo index, interest store and like ledger
// into a ranked candidate feed.
type DiscoveryService struct {
	DB        *gorm.DB
	Geo       *GeoService
	Interests *InterestService
	Likes     *LikeService
	Sessions  SwipeSessionStore
}

func NewDiscoveryService(db *gorm.DB, geo *GeoService, interests *InterestService, likes *LikeService, sessions SwipeSessionStore) *DiscoveryService {
	return &DiscoveryService{DB: db, Geo: geo, Interests: interests, Likes: likes, Sessions: sessions}
}

// BuildFeed assembles the ranked candidate feed for a viewer.
//
// Pool size is min(2×requestedSize, 100); self, hidden users and
// already-liked targets are excluded; distance is computed only when both
// sides have a stored point, and candidates without a distance sort last.
// An empty pool yields an empty feed, not an error.
func (s *DiscoveryService) BuildFeed(viewerID int64, requestedSize int) ([]Candidate, error) {
	if requestedSize <= 0 {
		requestedSize = DefaultFeedSize
	}
	poolSize := requestedSize * 2
	if poolSize > MaxFeedPool {
		poolSize = MaxFeedPool
	}

	viewerLoc, err := s.Geo.GetLocation(viewerID)
	if err != nil {
		return nil, err
	}

	liked, err := s.Likes.LikedTargetsOf(viewerID)
	if err != nil {
		return nil, err
	}

	// Registration-order pool, which is also the fallback ordering when the
	// viewer has no location.
	var pool []models.DatingUser
	err = s.DB.Where("id <> ? AND hidden = ?", viewerID, false).
		Order("created_at ASC").
		Limit(poolSize).
		Find(&pool).Error
	if err != nil {
		return nil, err
	}

	survivors := make([]models.DatingUser, 0, len(pool))
	for _, u := range pool {
		if _, already := liked[u.ID]; already {
			continue
		}
		survivors = append(survivors, u)
		if len(survivors) == requestedSize {
			break
		}
	}
	if len(survivors) == 0 {
		return []Candidate{}, nil
	}

	ids := make([]int64, len(survivors))
	for i, u := range survivors {
		ids[i] = u.ID
	}
	interests, err := s.Interests.GetInterestsBatch(ids)
	if err != nil {
		return nil, err
	}
	locations, err := s.Geo.GetLocationsBatch(ids)
	if err != nil {
		return nil, err
	}

	feed := make([]Candidate, 0, len(survivors))
	for _, u := range survivors {
		cand := Candidate{
			UserID:      u.ID,
			DisplayName: u.DisplayName,
			Bio:         u.Bio,
			PhotoURL:    u.PhotoURL,
			Interests:   interests[u.ID],
		}
		if viewerLoc != nil {
			if loc, ok := locations[u.ID]; ok {
				d := Haversine(viewerLoc.Latitude, viewerLoc.Longitude, loc.Latitude, loc.Longitude)
				cand.DistanceMeters = &d
			}
			cand.LastSeen = u.LastSeen
		}
		feed = append(feed, cand)
	}

	// Ascending by distance; unknown distance sorts last. Stable so the
	// registration-order fallback holds within each group.
	sort.SliceStable(feed, func(i, j int) bool {
		di, dj := feed[i].DistanceMeters, feed[j].DistanceMeters
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})

	return feed, nil
}

// GetFeed handles GET /feed?size=N. It also refreshes the viewer's swipe
// session queue so subsequent decisions operate on what was shown.
func (s *DiscoveryService) GetFeed(c *fiber.Ctx) error {
	viewerID, err := viewerFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user context"})
	}

	size, _ := strconv.Atoi(c.Query("size", "0"))
	feed, err := s.BuildFeed(viewerID, size)
	if err != nil {
		return httpError(c, err)
	}

	queue := make([]int64, len(feed))
	for i, cand := range feed {
		queue[i] = cand.UserID
	}
	s.Sessions.SetQueue(viewerID, queue)

	return c.JSON(fiber.Map{"candidates": feed, "count": len(feed)})
}

// NearbyUsers handles GET /nearby?radius=M&limit=N — the raw proximity
// query without feed composition.
func (s *DiscoveryService) NearbyUsers(c *fiber.Ctx) error {
	viewerID, err := viewerFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user context"})
	}

	loc, err := s.Geo.GetLocation(viewerID)
	if err != nil {
		return httpError(c, err)
	}
	if loc == nil {
		return c.JSON(fiber.Map{"nearby": []GeoResult{}, "count": 0})
	}

	radius, _ := strconv.ParseFloat(c.Query("radius", "0"), 64)
	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	results, err := s.Geo.FindWithinRadius(loc.Latitude, loc.Longitude, radius, viewerID, limit)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(fiber.Map{"nearby": results, "count": len(results)})
}

// viewerFromCtx reads the int64 user ID the user-context middleware stored.
func viewerFromCtx(c *fiber.Ctx) (int64, error) {
	id, ok := c.Locals("user_id").(int64)
	if !ok || id == 0 {
		return 0, ErrNotFound
	}
	return id, nil
}
