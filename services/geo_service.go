package services

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"dating-match-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EarthRadiusMeters is the sphere radius used by the great-circle formula.
const EarthRadiusMeters = 6371000.0

// GeoService owns current user positions and answers proximity queries.
type GeoService struct {
	DB *gorm.DB
}

func NewGeoService(db *gorm.DB) *GeoService {
	return &GeoService{DB: db}
}

// GeoResult is one proximity hit, distance in meters from the query origin.
type GeoResult struct {
	UserID         int64   `json:"user_id"`
	DistanceMeters float64 `json:"distance_meters"`
}

// Haversine returns the great-circle distance in meters between two
// WGS84 points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := math.Pi / 180
	dLat := (lat2 - lat1) * toRad
	dLon := (lon2 - lon1) * toRad
	phi1 := lat1 * toRad
	phi2 := lat2 * toRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// ValidCoordinate reports whether lat/lon are inside WGS84 bounds.
func ValidCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// UpsertLocation overwrites the user's stored point, latest-write-wins.
func (s *GeoService) UpsertLocation(userID int64, lat, lon float64) error {
	if !ValidCoordinate(lat, lon) {
		return fmt.Errorf("upsert location for user %d: %w", userID, ErrInvalidCoordinate)
	}

	loc := models.UserLocation{UserID: userID, Latitude: lat, Longitude: lon}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "updated_at"}),
	}).Create(&loc).Error
}

// GetLocation returns the user's current point, or nil if none is stored.
func (s *GeoService) GetLocation(userID int64) (*models.UserLocation, error) {
	var loc models.UserLocation
	err := s.DB.First(&loc, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// GetLocationsBatch loads current points for the given users. Users without
// a stored point are simply absent from the result map.
func (s *GeoService) GetLocationsBatch(userIDs []int64) (map[int64]models.UserLocation, error) {
	out := make(map[int64]models.UserLocation, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var locs []models.UserLocation
	if err := s.DB.Where("user_id IN ?", userIDs).Find(&locs).Error; err != nil {
		return nil, err
	}
	for _, l := range locs {
		out[l.UserID] = l
	}
	return out, nil
}

// FindWithinRadius returns users whose stored point is within radiusMeters
// of the origin, ascending by distance, truncated at limit. excludeUserID
// is left out of the result. Returns an empty slice when nothing is in range.
//
// Distances are computed with the haversine formula over all stored points.
// A PostGIS geography query would do the radius cut in SQL; the contract is
// the same either way since both agree within geodesic approximation error.
func (s *GeoService) FindWithinRadius(originLat, originLon, radiusMeters float64, excludeUserID int64, limit int) ([]GeoResult, error) {
	if !ValidCoordinate(originLat, originLon) {
		return nil, fmt.Errorf("radius query: %w", ErrInvalidCoordinate)
	}
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}
	if limit <= 0 {
		limit = DefaultRadiusLimit
	}

	var locs []models.UserLocation
	if err := s.DB.Where("user_id <> ?", excludeUserID).Find(&locs).Error; err != nil {
		return nil, err
	}

	results := make([]GeoResult, 0, len(locs))
	for _, l := range locs {
		d := Haversine(originLat, originLon, l.Latitude, l.Longitude)
		if d <= radiusMeters {
			results = append(results, GeoResult{UserID: l.UserID, DistanceMeters: d})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Defaults for radius queries when the caller passes non-positive values.
const (
	DefaultRadiusMeters = 5000.0
	DefaultRadiusLimit  = 50
)
