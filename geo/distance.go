// Package geo computes great-circle distances between latitude/longitude
// points using the spherical law of cosines.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for distance calculations.
const EarthRadiusKm = 6371

// DistanceKm returns the great-circle distance in kilometers between two
// points. The cosine-sum argument is clamped to [-1, 1] before acos:
// floating-point rounding can push it just outside the domain for identical
// or antipodal points, which would yield NaN.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	rlat1 := radians(lat1)
	rlat2 := radians(lat2)

	arg := math.Cos(rlat1)*math.Cos(rlat2)*math.Cos(radians(lng2)-radians(lng1)) +
		math.Sin(rlat1)*math.Sin(rlat2)
	arg = clamp(arg, -1, 1)

	return EarthRadiusKm * math.Acos(arg)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
