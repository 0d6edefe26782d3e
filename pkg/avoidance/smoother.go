package avoidance

import (
	"math"
	"time"
)

// HeadingState is the only state the avoidance engine carries across frames.
// It is owned by the Smoother and reset whenever depth sensing fails or no
// clear path is found, so the pipeline never coasts on stale data.
type HeadingState struct {
	SmoothedAngle  float64
	HasHeading     bool // false = no established heading, re-init on next reading
	TargetAngle    float64
	PreviousAngle  float64
	HasPrevious    bool
	TurningRate    float64 // rad/sec, signed
	TurnCorrection float64 // [0,1] damping on commanded turn intensity
	LastUpdate     time.Time
}

// Smoother applies adaptive exponential smoothing to the chosen heading.
//
// Naive EMA alone causes chasing oscillation when the user over-corrects, so
// the smoother also tracks the user's measured turning rate and derives a
// turn-correction factor that tapers steering intensity as the heading
// converges on the target.
type Smoother struct {
	cfg   Config
	state HeadingState
}

// NewSmoother creates a smoother with no established heading.
func NewSmoother(cfg Config) *Smoother {
	return &Smoother{cfg: cfg, state: HeadingState{TurnCorrection: 1}}
}

// State returns a copy of the current heading state.
func (s *Smoother) State() HeadingState {
	return s.state
}

// Reset drops the established heading. Called on sensor dropout and when no
// clear path exists for a frame.
func (s *Smoother) Reset() {
	s.state = HeadingState{TurnCorrection: 1}
}

// Update advances the heading state with this frame's candidate angle.
// ok=false means no candidate (sensor loss or no clear path) and forces a
// full reset. hazard widens the smoothing alpha for faster reaction at the
// cost of jitter. Returns the smoothed angle and whether a heading exists.
func (s *Smoother) Update(input float64, ok bool, hazard bool, now time.Time) (float64, bool) {
	if !ok {
		s.Reset()
		return 0, false
	}

	input = normalizeAngle(input)

	if !s.state.HasHeading {
		// First valid reading after a reset: adopt it without smoothing.
		s.state = HeadingState{
			SmoothedAngle:  input,
			HasHeading:     true,
			TargetAngle:    input,
			PreviousAngle:  input,
			HasPrevious:    true,
			TurnCorrection: 1,
			LastUpdate:     now,
		}
		return input, true
	}

	dt := now.Sub(s.state.LastUpdate).Seconds()
	if dt > 0 && s.state.HasPrevious {
		s.state.TurningRate = signedDelta(s.state.PreviousAngle, input) / dt
	}

	s.updateTurnCorrection()

	alpha := clamp(s.cfg.BaseSmoothing*(1+math.Abs(s.state.TurningRate)),
		s.cfg.MinSmoothing, s.cfg.MaxSmoothing)
	if hazard && alpha < s.cfg.HazardSmoothing {
		alpha = s.cfg.HazardSmoothing
	}

	// Wraparound-aware EMA: blend along the shortest arc, then wrap.
	s.state.SmoothedAngle = normalizeAngle(
		s.state.SmoothedAngle + alpha*signedDelta(s.state.SmoothedAngle, input))

	// Re-anchor the target once the user has turned onto it, to avoid
	// steering at stale targets.
	if angularDistance(0, s.state.TargetAngle) < Radians(s.cfg.SnapTargetDegrees) {
		s.state.TargetAngle = input
	}

	s.state.PreviousAngle = input
	s.state.HasPrevious = true
	s.state.LastUpdate = now

	return s.state.SmoothedAngle, true
}

// updateTurnCorrection compares the direction the user is actually turning
// against the direction of the remaining error. Turning toward the target
// scales the commanded correction down by 80%, with a further 50% reduction
// once the user is close, which prevents oscillating over-correction near
// convergence. Forward (0) is the user's own heading in the sensor frame,
// so the user's remaining turn is the target's offset from zero; distances
// are measured against that, not against the smoothed estimate.
func (s *Smoother) updateTurnCorrection() {
	correction := 1.0

	remaining := signedDelta(s.state.SmoothedAngle, s.state.TargetAngle)
	const minRate = 0.05 // rad/sec, below this the user is not meaningfully turning
	if math.Abs(s.state.TurningRate) > minRate &&
		math.Signbit(remaining) == math.Signbit(s.state.TurningRate) {
		correction = 0.2
	}

	if angularDistance(0, s.state.TargetAngle) < Radians(s.cfg.NearTargetDegrees) {
		correction *= 0.5
	}

	s.state.TurnCorrection = correction
}
