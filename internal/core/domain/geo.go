package domain

import "math"

// Kilometers per degree of latitude (WGS 84 mean). Longitude degrees
// shrink by cos(lat).
const kmPerDegree = 111.045

// EarthRadiusKm is the mean earth radius used for great-circle math.
const EarthRadiusKm = 6371.0

// Safety cushions applied to max-distance estimates so the reported
// value is never tighter than the true corner distance.
const (
	planarCushion    = 1.01
	haversineCushion = 1.005
)

// GeoPoint is a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox is an axis-aligned lat/lon rectangle.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// Contains reports whether p lies inside the box (bounds inclusive).
func (b BoundingBox) Contains(p GeoPoint) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// Corners returns the four corner points of the box.
func (b BoundingBox) Corners() [4]GeoPoint {
	return [4]GeoPoint{
		{Lat: b.MinLat, Lon: b.MinLon},
		{Lat: b.MinLat, Lon: b.MaxLon},
		{Lat: b.MaxLat, Lon: b.MinLon},
		{Lat: b.MaxLat, Lon: b.MaxLon},
	}
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() GeoPoint {
	return GeoPoint{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
}

// GeoSpec describes the spatial constraint of a search: either a center
// with a radius, or a bounding box. Center may be nil in browse mode.
type GeoSpec struct {
	Center   *GeoPoint    `json:"center,omitempty"`
	RadiusKm *float64     `json:"radius_km,omitempty"`
	Box      *BoundingBox `json:"box,omitempty"`
}

// PrefilterBox derives the coarse bounding box used as a spatial
// prefilter. For a radius spec the box is a planar approximation that
// is never tighter than the true circle; exact membership is re-checked
// with great-circle distance downstream. For a box spec the box itself
// is returned.
func (g *GeoSpec) PrefilterBox() *BoundingBox {
	if g == nil {
		return nil
	}
	if g.Box != nil {
		return g.Box
	}
	if g.Center == nil || g.RadiusKm == nil {
		return nil
	}
	b := BoundingBoxAround(*g.Center, *g.RadiusKm)
	return &b
}

// BoundingBoxAround returns the axis-aligned box enclosing the circle
// of radiusKm around center. The longitude span widens toward the
// poles; at the poles cos(lat) approaches zero and the span is clamped
// to the full globe.
func BoundingBoxAround(center GeoPoint, radiusKm float64) BoundingBox {
	latDelta := radiusKm / kmPerDegree

	lonScale := math.Cos(center.Lat * math.Pi / 180)
	lonDelta := 180.0
	if lonScale > 1e-9 {
		lonDelta = radiusKm / (kmPerDegree * lonScale)
		if lonDelta > 180 {
			lonDelta = 180
		}
	}

	return BoundingBox{
		MinLat: center.Lat - latDelta,
		MaxLat: center.Lat + latDelta,
		MinLon: center.Lon - lonDelta,
		MaxLon: center.Lon + lonDelta,
	}
}

// Haversine returns the great-circle distance between a and b in km.
func Haversine(a, b GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// PlanarDistance returns the equirectangular approximation of the
// distance between a and b in km. Accurate to about 1% under ~200 km.
func PlanarDistance(a, b GeoPoint) float64 {
	meanLat := (a.Lat + b.Lat) / 2 * math.Pi / 180
	dLat := (b.Lat - a.Lat) * kmPerDegree
	dLon := (b.Lon - a.Lon) * kmPerDegree * math.Cos(meanLat)
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// DistanceMethod selects how the max display distance is estimated
// when a bounding box, rather than an explicit radius, is in play.
type DistanceMethod string

const (
	DistancePlanar    DistanceMethod = "planar"
	DistanceHaversine DistanceMethod = "haversine"
)

// MaxDistance is the estimated maximum display distance of a result
// page. Source records how the value was obtained.
type MaxDistance struct {
	Km     *float64 `json:"km"`
	Source string   `json:"source"` // "radius", "planar", "haversine" or "none"
}

// EstimateMaxDistance reports the maximum distance a result can be
// from the search center. An explicit radius is echoed back unchanged.
// A box yields the cushioned corner distance, planar or haversine per
// method. No geo constraint yields a nil distance, not an error.
func EstimateMaxDistance(geo *GeoSpec, method DistanceMethod) MaxDistance {
	if geo == nil {
		return MaxDistance{Source: "none"}
	}
	if geo.RadiusKm != nil {
		km := *geo.RadiusKm
		return MaxDistance{Km: &km, Source: "radius"}
	}
	if geo.Box == nil {
		return MaxDistance{Source: "none"}
	}

	center := geo.Box.Center()
	if geo.Center != nil {
		center = *geo.Center
	}

	var max float64
	source := "planar"
	for _, corner := range geo.Box.Corners() {
		var d float64
		if method == DistanceHaversine {
			d = Haversine(center, corner) * haversineCushion
			source = "haversine"
		} else {
			d = PlanarDistance(center, corner) * planarCushion
		}
		if d > max {
			max = d
		}
	}
	return MaxDistance{Km: &max, Source: source}
}
