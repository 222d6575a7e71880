// Package qibla computes the great-circle bearing and distance from a
// point on Earth to the Kaaba in Mecca.
package qibla

import (
	"fmt"
	"math"
)

const (
	KaabaLatitude  = 21.4225
	KaabaLongitude = 39.8262

	earthRadiusKm = 6371.0
)

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Reading is a full qibla answer for one location.
type Reading struct {
	Bearing    float64 `json:"bearing"`
	DistanceKm float64 `json:"distance_km"`
	Compass    string  `json:"compass"`
}

// Bearing returns the initial bearing of the great circle from the given
// point to the Kaaba, in degrees clockwise from true north, in [0, 360).
func Bearing(lat, lng float64) float64 {
	phi1 := radians(lat)
	phi2 := radians(KaabaLatitude)
	dLng := radians(KaabaLongitude - lng)

	y := math.Sin(dLng) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLng)

	deg := degrees(math.Atan2(y, x))
	return normalizeDegrees(deg)
}

// DistanceKm returns the haversine distance from the given point to the
// Kaaba in kilometers.
func DistanceKm(lat, lng float64) float64 {
	phi1 := radians(lat)
	phi2 := radians(KaabaLatitude)
	dPhi := radians(KaabaLatitude - lat)
	dLng := radians(KaabaLongitude - lng)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// CompassPoint maps a bearing to the nearest of the 16 compass winds.
func CompassPoint(bearing float64) string {
	idx := int((normalizeDegrees(bearing)+11.25)/22.5) % 16
	return compassPoints[idx]
}

// FromCoordinates computes the complete reading for one location.
func FromCoordinates(lat, lng float64) Reading {
	b := Bearing(lat, lng)
	return Reading{
		Bearing:    b,
		DistanceKm: DistanceKm(lat, lng),
		Compass:    CompassPoint(b),
	}
}

// CacheKey renders a redis key for the location, rounded to four decimal
// places (~11m) so nearby requests share a cache entry.
func CacheKey(lat, lng float64) string {
	return fmt.Sprintf("qibla:%.4f:%.4f", lat, lng)
}

// ValidateCoordinates rejects latitudes outside [-90, 90] and longitudes
// outside [-180, 180].
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lng)
	}
	return nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func normalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}
