package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversine(t *testing.T) {
	t.Run("distance to self is zero", func(t *testing.T) {
		assert.Zero(t, Haversine(55.7512, 37.6184, 55.7512, 37.6184))
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		ab := Haversine(60.1699, 24.9384, 55.7512, 37.6184)
		ba := Haversine(55.7512, 37.6184, 60.1699, 24.9384)
		assert.InDelta(t, ab, ba, 1e-6)
	})

	t.Run("known distance Helsinki to Tampere", func(t *testing.T) {
		// ~160km by great circle
		d := Haversine(60.1699, 24.9384, 61.4991, 23.7871)
		assert.InDelta(t, 160000, d, 5000)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		d := Haversine(0, 0, 1, 0)
		expected := EarthRadiusMeters * math.Pi / 180
		assert.InDelta(t, expected, d, 1)
	})
}

func TestValidCoordinate(t *testing.T) {
	assert.True(t, ValidCoordinate(0, 0))
	assert.True(t, ValidCoordinate(-90, 180))
	assert.True(t, ValidCoordinate(90, -180))
	assert.False(t, ValidCoordinate(90.0001, 0))
	assert.False(t, ValidCoordinate(-91, 0))
	assert.False(t, ValidCoordinate(0, 180.5))
	assert.False(t, ValidCoordinate(0, -181))
}

func TestUpsertLocation(t *testing.T) {
	db := newTestDB(t)
	geo := NewGeoService(db)

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		err := geo.UpsertLocation(1, 91, 0)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)

		err = geo.UpsertLocation(1, 0, -200)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
	})

	t.Run("latest write wins", func(t *testing.T) {
		require.NoError(t, geo.UpsertLocation(1, 55.75, 37.61))
		require.NoError(t, geo.UpsertLocation(1, 60.17, 24.94))

		loc, err := geo.GetLocation(1)
		require.NoError(t, err)
		require.NotNil(t, loc)
		assert.Equal(t, 60.17, loc.Latitude)
		assert.Equal(t, 24.94, loc.Longitude)
	})

	t.Run("missing user has nil location", func(t *testing.T) {
		loc, err := geo.GetLocation(404)
		require.NoError(t, err)
		assert.Nil(t, loc)
	})
}

func TestFindWithinRadius(t *testing.T) {
	db := newTestDB(t)
	geo := NewGeoService(db)

	// Viewer at central Moscow; one user ~50m north, one ~1200m north,
	// one ~50km north (out of a 5000m radius).
	const originLat, originLon = 55.7512, 37.6184
	require.NoError(t, geo.UpsertLocation(100, originLat, originLon))
	require.NoError(t, geo.UpsertLocation(101, originLat+0.00045, originLon)) // ~50m
	require.NoError(t, geo.UpsertLocation(102, originLat+0.0108, originLon))  // ~1200m
	require.NoError(t, geo.UpsertLocation(103, originLat+0.45, originLon))    // ~50km

	t.Run("returns in-range users nearest first", func(t *testing.T) {
		results, err := geo.FindWithinRadius(originLat, originLon, 5000, 100, 50)
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, int64(101), results[0].UserID)
		assert.Equal(t, int64(102), results[1].UserID)
		assert.InDelta(t, 50, results[0].DistanceMeters, 10)
		assert.InDelta(t, 1200, results[1].DistanceMeters, 50)
	})

	t.Run("excludes the querying user", func(t *testing.T) {
		results, err := geo.FindWithinRadius(originLat, originLon, 5000, 100, 50)
		require.NoError(t, err)
		for _, r := range results {
			assert.NotEqual(t, int64(100), r.UserID)
		}
	})

	t.Run("limit truncates the result", func(t *testing.T) {
		results, err := geo.FindWithinRadius(originLat, originLon, 5000, 100, 1)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, int64(101), results[0].UserID)
	})

	t.Run("empty when nothing is in range", func(t *testing.T) {
		results, err := geo.FindWithinRadius(-33.8688, 151.2093, 5000, 0, 50)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("non-positive radius and limit fall back to defaults", func(t *testing.T) {
		results, err := geo.FindWithinRadius(originLat, originLon, 0, 100, 0)
		require.NoError(t, err)
		require.Len(t, results, 2) // default 5000m radius
	})
}

func TestGetLocationsBatch(t *testing.T) {
	db := newTestDB(t)
	geo := NewGeoService(db)

	require.NoError(t, geo.UpsertLocation(1, 55.75, 37.61))

	locs, err := geo.GetLocationsBatch([]int64{1, 2})
	require.NoError(t, err)
	assert.Len(t, locs, 1)
	_, hasMissing := locs[2]
	assert.False(t, hasMissing)

	empty, err := geo.GetLocationsBatch(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
