package avoidance

import "math"

// Selector scores angular sectors and picks the best clear heading.
//
// Scoring is percentage-based rather than absolute-count-based: distant
// sectors return fewer valid samples, so raw counts would bias selection
// toward near geometry. Safety dominates the weights; the forward term is a
// tiebreak, not a requirement.
type Selector struct {
	cfg Config
}

// NewSelector creates a selector for the given configuration.
func NewSelector(cfg Config) *Selector {
	return &Selector{cfg: cfg}
}

// Select returns the center angle of the best-scoring sector and true, or
// (0, false) when no sector clears the confidence floor. Sectors with at
// most MinSamplePoints valid samples are ineligible regardless of score.
// Ties resolve to the first sector in iteration order.
func (s *Selector) Select(hist SectorHistogram) (float64, bool) {
	bestScore := -1.0
	bestSector := -1

	for i, sec := range hist.Sectors {
		if sec.TotalValidPoints <= s.cfg.MinSamplePoints {
			continue
		}

		clearPct := float64(sec.ClearPoints) / float64(sec.TotalValidPoints)
		avgDepth := sec.DepthSum / float64(sec.TotalValidPoints)
		depthFactor := math.Min(1, avgDepth/s.cfg.MaxDepthDistance)

		// Forward bias: 1 at straight ahead, 0 at directly behind.
		forwardFactor := 1 - angularDistance(hist.SectorCenter(i), 0)/math.Pi

		score := s.cfg.SafetyWeight*clearPct +
			s.cfg.ClearanceWeight*clearPct +
			s.cfg.DepthWeight*depthFactor +
			s.cfg.ForwardWeight*forwardFactor

		if score > bestScore {
			bestScore = score
			bestSector = i
		}
	}

	if bestSector < 0 || bestScore <= s.cfg.MinScore {
		return 0, false
	}

	angle := normalizeAngle(hist.SectorCenter(bestSector) + Radians(s.cfg.AngleOffsetDegrees))
	return angle, true
}
