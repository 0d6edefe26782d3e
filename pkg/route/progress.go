package route

import (
	"math"
	"sync"
)

// DefaultAdvanceTolerance is how close (meters) the user must come to the
// active waypoint before progress advances to the next one.
const DefaultAdvanceTolerance = 1.0

// Progress tracks the user's position along a resampled route. The target
// index only ever advances; GPS jitter cannot walk it backward.
type Progress struct {
	mu        sync.RWMutex
	points    []Waypoint
	index     int
	tolerance float64
}

// NewProgress creates a tracker over an already-resampled route.
func NewProgress(points []Waypoint, tolerance float64) *Progress {
	if tolerance <= 0 {
		tolerance = DefaultAdvanceTolerance
	}
	return &Progress{points: points, tolerance: tolerance}
}

// Update advances the target waypoint while the user is within tolerance of
// it, and returns the active target. ok is false once the route is complete
// or empty.
func (p *Progress) Update(position Waypoint) (target Waypoint, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.index < len(p.points) && Distance(position, p.points[p.index]) <= p.tolerance {
		p.index++
	}
	if p.index >= len(p.points) {
		return Waypoint{}, false
	}
	return p.points[p.index], true
}

// Target returns the active waypoint without advancing.
func (p *Progress) Target() (Waypoint, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.index >= len(p.points) {
		return Waypoint{}, false
	}
	return p.points[p.index], true
}

// Remaining returns how many waypoints are left including the active one.
func (p *Progress) Remaining() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.points) - p.index
}

// TargetBearing returns the steering angle toward the active waypoint in
// signed degrees (-180, 180]: the great-circle bearing to the target minus
// the user's current heading (degrees from north). This channel bypasses
// the avoidance core entirely. ok is false when the route is complete.
func (p *Progress) TargetBearing(position Waypoint, headingDeg float64) (float64, bool) {
	target, ok := p.Target()
	if !ok {
		return 0, false
	}

	diff := Bearing(position, target) - headingDeg
	diff = math.Mod(diff, 360)
	if diff > 180 {
		diff -= 360
	} else if diff <= -180 {
		diff += 360
	}
	return diff, true
}
