package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"dating-match-system/models"
	"dating-match-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// ProfileService owns the DatingUser records and the profile-facing HTTP
// surface: profile upsert, photo upload, location and interest updates,
// availability windows and match listings.
type ProfileService struct {
	DB        *gorm.DB
	Geo       *GeoService
	Interests *InterestService
	Matches   *MatchService
}

func NewProfileService(db *gorm.DB, geo *GeoService, interests *InterestService, matches *MatchService) *ProfileService {
	return &ProfileService{DB: db, Geo: geo, Interests: interests, Matches: matches}
}

// UpsertProfile creates or updates the user row. The handle is slugged from
// the display name once at creation and kept stable afterwards.
func (s *ProfileService) UpsertProfile(userID int64, displayName string, bio *string) (models.DatingUser, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return models.DatingUser{}, fmt.Errorf("upsert profile %d: empty display name", userID)
	}

	var user models.DatingUser
	err := s.DB.First(&user, "id = ?", userID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.DatingUser{
			ID:          userID,
			Handle:      makeHandle(displayName),
			DisplayName: displayName,
			Bio:         bio,
		}
		if err := s.DB.Create(&user).Error; err != nil {
			return models.DatingUser{}, err
		}
	case err != nil:
		return models.DatingUser{}, err
	default:
		user.DisplayName = displayName
		user.Bio = bio
		if err := s.DB.Save(&user).Error; err != nil {
			return models.DatingUser{}, err
		}
	}
	return user, nil
}

// makeHandle slugs the display name and appends a short random suffix so
// two "Anna"s get distinct handles.
func makeHandle(displayName string) string {
	return slug.Make(displayName) + "-" + uuid.NewString()[:8]
}

// TouchLastSeen stamps the user's last activity time.
func (s *ProfileService) TouchLastSeen(userID int64) error {
	now := time.Now()
	return s.DB.Model(&models.DatingUser{}).Where("id = ?", userID).
		Update("last_seen", &now).Error
}

// SetAvailability opens a discovery availability window for the user and
// unhides them for the feed.
func (s *ProfileService) SetAvailability(userID int64, window AvailabilityWindow) (time.Time, error) {
	until := time.Now().Add(window.Duration())
	err := s.DB.Model(&models.DatingUser{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"available_until": &until, "hidden": false}).Error
	return until, err
}

// GrantVIP is the subscription stub: marks the user VIP until the given
// time. Billing itself lives in the payment service, not here.
func (s *ProfileService) GrantVIP(userID int64, until time.Time) error {
	return s.DB.Model(&models.DatingUser{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"is_vip": true, "vip_expires_at": &until}).Error
}

// --- HTTP surface ---

// PutProfile handles PUT /profile {display_name, bio}.
func (s *ProfileService) PutProfile(c *fiber.Ctx) error {
	userID, err := viewerFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user context"})
	}

	var req struct {
		DisplayName string  `json:"display_name"`
		Bio         *string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}

	user, err := s.UpsertProfile(userID, req.DisplayName, req.Bio)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(user)
}

// GetProfile handles GET /profiles/:id.
func (s *ProfileService) GetProfile(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
	}

	var user models.DatingUser
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}

	interests, err := s.Interests.GetInterests(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}

	return c.JSON(fiber.Map{"profile": user, "interests": interests})
}

// UploadPhoto handles POST /profile/photo (multipart "photo"). The file
// goes to the S3 bucket when configured, otherwise to the local uploads dir.
func (s *ProfileService) UploadPhoto(c *fiber.Ctx) error {
	userID, err := viewerFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user context"})
	}

	photo, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "photo is required"})
	}
	if photo.Size > 10*1024*1024 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "photo too large (max 10MB)"})
	}

	url, err := utils.StoreProfilePhoto(photo, userID)
	if err != nil {
		log.Printf("❌ [PROFILE] photo upload failed for %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store photo"})
	}

	if err := s.DB.Model(&models.DatingUser{}).Where("id = ?", userID).
		Update("photo_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}
	return c.JSON(fiber.Map{"photo_url": url})
}

// PutLocation handles PUT /profile/location {latitude, longitude}.
func (s *ProfileService) PutLocation(c *fiber.Ctx) error {
	userID, err := viewerFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user context"})
	}

	var req struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}

	if err := s.Geo.UpsertLocation(userID, req.Latitude, req.Longitude); err != nil {
		return httpError(c, err)
	}
	if err := s.TouchLastSeen(userID); err != nil {
		log.Printf("⚠️ [PROFILE] last_seen update failed for %d: %v", userID, err)
	}
	return c.JSON(fiber.Map{"updated": true})
}

// PutInterests handles PUT /profile/interests {tags}.
func (s *ProfileService) PutInterests(c *fiber.Ctx) error {
	userID, err := viewerFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user context"})
	}

	var req struct {
		Tags []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}

	if err := s.Interests.SetInterests(userID, req.Tags); err != nil {
		return httpError(c, err)
	}
	tags, err := s.Interests.GetInterests(userID)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(fiber.Map{"tags": tags})
}

// PostAvailability handles POST /profile/availability {window}.
func (s *ProfileService) PostAvailability(c *fiber.Ctx) error {
	userID, err := viewerFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user context"})
	}

	var req struct {
		Window string `json:"window"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}

	window, err := ParseAvailabilityWindow(req.Window)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	until, err := s.SetAvailability(userID, window)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}
	return c.JSON(fiber.Map{"available_until": until})
}

// GetMatches handles GET /matches — the viewer's matches, newest first,
// with peer profile summaries attached.
func (s *ProfileService) GetMatches(c *fiber.Ctx) error {
	userID, err := viewerFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user context"})
	}

	matches, err := s.Matches.MatchesFor(userID)
	if err != nil {
		return httpError(c, err)
	}

	type matchSummary struct {
		MatchID   string    `json:"match_id"`
		PeerID    int64     `json:"peer_id"`
		PeerName  string    `json:"peer_name"`
		PeerPhoto *string   `json:"peer_photo,omitempty"`
		MatchedAt time.Time `json:"matched_at"`
	}

	peerIDs := make([]int64, len(matches))
	for i, m := range matches {
		peerIDs[i] = m.Peer(userID)
	}
	var peers []models.DatingUser
	if len(peerIDs) > 0 {
		if err := s.DB.Where("id IN ?", peerIDs).Find(&peers).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
		}
	}
	peerByID := make(map[int64]models.DatingUser, len(peers))
	for _, p := range peers {
		peerByID[p.ID] = p
	}

	out := make([]matchSummary, 0, len(matches))
	for _, m := range matches {
		peer := peerByID[m.Peer(userID)]
		out = append(out, matchSummary{
			MatchID:   m.ID,
			PeerID:    m.Peer(userID),
			PeerName:  peer.DisplayName,
			PeerPhoto: peer.PhotoURL,
			MatchedAt: m.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"matches": out, "count": len(out)})
}

// GetMatch handles GET /matches/:id, scoped to the viewer.
func (s *ProfileService) GetMatch(c *fiber.Ctx) error {
	userID, err := viewerFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user context"})
	}

	match, err := s.Matches.GetMatch(c.Params("id"), userID)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(match)
}

// SearchProfiles handles GET /profiles?q=...&limit=N — substring search over
// handle and display name.
func (s *ProfileService) SearchProfiles(c *fiber.Ctx) error {
	query := c.Query("q", "")
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	db := s.DB.Model(&models.DatingUser{}).Where("hidden = ?", false).Limit(limit)
	if query != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
		db = db.Where("LOWER(display_name) LIKE ? OR LOWER(handle) LIKE ?", term, term)
	}

	var users []models.DatingUser
	if err := db.Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "search failed", "details": err.Error()})
	}

	type profileSummary struct {
		ID          int64   `json:"id"`
		Handle      string  `json:"handle"`
		DisplayName string  `json:"display_name"`
		PhotoURL    *string `json:"photo_url,omitempty"`
	}
	res := make([]profileSummary, len(users))
	for i, u := range users {
		res[i] = profileSummary{ID: u.ID, Handle: u.Handle, DisplayName: u.DisplayName, PhotoURL: u.PhotoURL}
	}
	return c.JSON(res)
}
