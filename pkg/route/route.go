// Package route handles the pre-computed walking route: great-circle
// geometry, uniform resampling, and waypoint progress tracking. The route
// itself comes from an external directions service; no pathfinding here.
package route

import (
	"fmt"
	"math"
)

// earthRadiusMeters is the mean Earth radius used by the haversine formulas.
const earthRadiusMeters = 6371000.0

// Waypoint is one geographic coordinate on the route.
type Waypoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Distance returns the haversine great-circle distance in meters.
func Distance(a, b Waypoint) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Bearing returns the initial great-circle bearing from a to b in degrees
// [0, 360), clockwise from true north.
func Bearing(a, b Waypoint) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLon := radians(b.Lon - a.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	deg := degrees(math.Atan2(y, x))
	return math.Mod(deg+360, 360)
}

// Destination returns the point reached by traveling dist meters from start
// along the given bearing (degrees clockwise from north).
func Destination(start Waypoint, bearingDeg, dist float64) Waypoint {
	lat1 := radians(start.Lat)
	lon1 := radians(start.Lon)
	brng := radians(bearingDeg)
	d := dist / earthRadiusMeters

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) +
		math.Cos(lat1)*math.Sin(d)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(
		math.Sin(brng)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))

	return Waypoint{Lat: degrees(lat2), Lon: degrees(lon2)}
}

// Resample rewrites a route with uniform spacing along each great-circle
// leg. Uniform spacing is what makes "advance within tolerance" produce
// evenly paced progress instead of long straight-line jumps. The original
// first and last points are preserved exactly; every consecutive pair of
// output points is at least spacing apart except possibly the final one.
func Resample(points []Waypoint, spacing float64) ([]Waypoint, error) {
	if spacing <= 0 {
		return nil, fmt.Errorf("spacing must be positive, got %v", spacing)
	}
	if len(points) < 2 {
		return append([]Waypoint(nil), points...), nil
	}

	out := []Waypoint{points[0]}
	carried := 0.0 // distance already covered toward the next sample

	for i := 1; i < len(points); i++ {
		prev, next := points[i-1], points[i]
		legLen := Distance(prev, next)
		if legLen == 0 {
			continue
		}
		brng := Bearing(prev, next)

		pos := spacing - carried
		for pos <= legLen {
			out = append(out, Destination(prev, brng, pos))
			pos += spacing
		}
		carried = legLen - (pos - spacing)
	}

	// Preserve the exact final point; drop a resampled point that landed
	// essentially on top of it.
	last := points[len(points)-1]
	if n := len(out); n > 1 && Distance(out[n-1], last) < spacing/10 {
		out = out[:n-1]
	}
	return append(out, last), nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
