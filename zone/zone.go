// Package zone decides whether an address point can be delivered to.
//
// The map UI around this logic is presentation; the containment check and
// the reverse geocoding behind "use this point" live here.
package zone

import "math"

// Zone is a circular delivery area around the restaurant.
type Zone struct {
	Lat          float64
	Lng          float64
	RadiusMeters float64
}

// Bergen is the production delivery zone: 8 km around the shop.
var Bergen = Zone{Lat: 60.39299, Lng: 5.32415, RadiusMeters: 8000}

// Area is a named point of interest shown on the picker.
type Area struct {
	Name string
	Lat  float64
	Lng  float64
}

// PopularAreas are frequent delivery destinations highlighted on the map.
var PopularAreas = []Area{
	{Name: "Bryggen", Lat: 60.3971, Lng: 5.3246},
	{Name: "Nygård", Lat: 60.3849, Lng: 5.3324},
	{Name: "Fyllingsdalen", Lat: 60.3643, Lng: 5.3003},
	{Name: "Åsane", Lat: 60.4669, Lng: 5.3226},
}

// CheckResult reports whether a point is deliverable and how far away it is.
type CheckResult struct {
	OK             bool
	DistanceMeters float64
}

// Check measures the distance from the zone center to the point.
func (z Zone) Check(lat, lng float64) CheckResult {
	d := Distance(z.Lat, z.Lng, lat, lng)
	return CheckResult{OK: d <= z.RadiusMeters, DistanceMeters: d}
}

const earthRadiusMeters = 6371000

// Distance is the great-circle (haversine) distance between two points,
// in meters.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}
