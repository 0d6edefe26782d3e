package avoidance

import (
	"math"

	"github.com/clearway/go-clearway/pkg/guidance"
)

// Classification is the per-frame steering decision before debounce.
type Classification struct {
	Instruction   guidance.Instruction
	PathClear     bool
	ObstacleLeft  bool
	ObstacleRight bool
}

// Classifier maps a smoothed heading and turn intensity onto the discrete
// seven-level instruction scale. It is stateless; the publish debounce lives
// in the engine.
type Classifier struct {
	cfg Config
}

// NewClassifier creates a classifier for the given configuration.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Intensity computes the commanded turn intensity in [0,1] from the angular
// distance between the heading and forward. A hazard override scales it by
// 1.5 so escapes are taken decisively.
func (c *Classifier) Intensity(angle float64, hazard bool) float64 {
	intensity := math.Min(1, angularDistance(angle, 0)/(math.Pi/2))
	if hazard {
		intensity = math.Min(1, intensity*1.5)
	}
	return intensity
}

// Classify produces the decision for one frame. ok=false means no clear
// path and no override this frame, which yields blocked. The pane map
// provides the left/right tiebreak when the best path points backward.
// Hazard scaling is already folded into intensity by Intensity.
func (c *Classifier) Classify(angle float64, ok bool, intensity float64, panes PaneMap) Classification {
	if !ok {
		return Classification{Instruction: guidance.Straight, PathClear: false}
	}

	deg := Degrees(normalizeAngle(angle))
	straight := c.cfg.StraightBandDegrees

	switch {
	case deg <= straight || deg >= 360-straight:
		return Classification{Instruction: guidance.Straight, PathClear: true}

	case deg < 165:
		// Path opens to the right, obstacle on the left.
		return Classification{
			Instruction:  c.magnitude(intensity, true),
			PathClear:    true,
			ObstacleLeft: true,
		}

	case deg > 195:
		return Classification{
			Instruction:   c.magnitude(intensity, false),
			PathClear:     true,
			ObstacleRight: true,
		}

	default:
		// Best path points backward: blocked, with a pane-based nudge when
		// both halves still show some clear panes.
		return Classification{
			Instruction: c.backwardTiebreak(panes),
			PathClear:   false,
		}
	}
}

// magnitude scales intensity onto the slight/medium/sharp steps.
func (c *Classifier) magnitude(intensity float64, right bool) guidance.Instruction {
	var mag guidance.Instruction
	switch {
	case intensity > c.cfg.SharpThreshold:
		mag = 3
	case intensity > c.cfg.MediumThreshold:
		mag = 2
	default:
		mag = 1
	}
	if !right {
		mag = -mag
	}
	return mag
}

// backwardTiebreak compares average clear-pane distance on each half of the
// field. When both halves have clear panes, nudge toward the deeper one;
// otherwise report blocked.
func (c *Classifier) backwardTiebreak(panes PaneMap) guidance.Instruction {
	n := len(panes.Panes)
	if n == 0 {
		return guidance.Straight
	}

	var leftSum, rightSum float64
	var leftCount, rightCount int
	for i, p := range panes.Panes {
		if p.Obstructed || math.IsInf(p.MinDistance, 1) {
			continue
		}
		if i < n/2 {
			leftSum += p.MinDistance
			leftCount++
		} else if i > n/2 || n%2 == 0 {
			rightSum += p.MinDistance
			rightCount++
		}
	}

	if leftCount == 0 || rightCount == 0 {
		return guidance.Straight
	}
	if leftSum/float64(leftCount) >= rightSum/float64(rightCount) {
		return guidance.SlightLeft
	}
	return guidance.SlightRight
}
