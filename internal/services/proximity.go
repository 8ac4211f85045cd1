package services

import (
	"errors"
	"math"
	"name-locator-service/internal/domain"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Mean Earth radius used to turn central angles into surface distance.
const EarthRadiusKm = 6371.0

// Default S2 level for cell tokens (roughly 1 km cells).
const DefaultCellLevel = 13

// Neighbor is an earlier record and its great-circle distance from the
// active record.
type Neighbor struct {
	Index      int
	Location   domain.DerivedLocation
	DistanceKm float64
}

// DistanceKm returns the great-circle distance between two points.
func DistanceKm(a, b domain.Coordinates) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return angleKm(p1.Distance(p2))
}

// Nearest finds the earlier record closest to the active (last) record.
//
// The scan is a single greedy pass; ties keep the earliest index so the
// answer is stable for a given session history.
func Nearest(records []domain.DerivedLocation) (Neighbor, error) {
	if len(records) < 2 {
		return Neighbor{}, errors.New("nearest: need at least two records")
	}

	active := records[len(records)-1]
	origin := s2.LatLngFromDegrees(active.Latitude, active.Longitude)

	best := -1
	bestAngle := s1.Angle(math.Inf(1))

	for i, r := range records[:len(records)-1] {
		d := origin.Distance(s2.LatLngFromDegrees(r.Latitude, r.Longitude))
		if d < bestAngle {
			bestAngle = d
			best = i
		}
	}

	return Neighbor{
		Index:      best,
		Location:   records[best],
		DistanceKm: angleKm(bestAngle),
	}, nil
}

// Spread returns, in insertion order, the distance from each record to the
// next one. The result has len(records)-1 entries.
func Spread(records []domain.DerivedLocation) []float64 {
	if len(records) < 2 {
		return []float64{}
	}

	out := make([]float64, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		out = append(out, DistanceKm(records[i-1].Coordinates(), records[i].Coordinates()))
	}
	return out
}

// CellToken returns the S2 cell token containing the point at level
// (clamped to the valid S2 range).
func CellToken(c domain.Coordinates, level int) string {
	if level < 0 {
		level = 0
	}
	if level > s2.MaxLevel {
		level = s2.MaxLevel
	}
	return s2.CellIDFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon)).Parent(level).ToToken()
}

func angleKm(a s1.Angle) float64 {
	return a.Radians() * EarthRadiusKm
}
