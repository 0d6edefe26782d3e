package avoidance

import "math"

// HazardGuard is the fail-safe layer over the pane map. The selector's
// scoring can be fooled by a deep sector adjacent to a near-field
// obstruction below its sampling resolution, so a hazard override always
// wins over the scored selection.
type HazardGuard struct {
	cfg Config
}

// minClearRun is the minimum contiguous clear panes for a safe override.
const minClearRun = 2

// NewHazardGuard creates a guard for the given configuration.
func NewHazardGuard(cfg Config) *HazardGuard {
	return &HazardGuard{cfg: cfg}
}

// Check scans the pane map for sub-safe-distance obstructions.
//
// hazard reports whether a near-field obstruction exists; it is independent
// of whether an escape heading was found, because "hazard present but no
// safe run" must still suppress the primary path instead of falling through.
// When a clear run of at least minClearRun panes exists, override is the
// angular center of the widest run and ok is true.
func (g *HazardGuard) Check(panes PaneMap) (override float64, ok bool, hazard bool) {
	obstructed := false
	for _, p := range panes.Panes {
		if p.Obstructed {
			obstructed = true
			break
		}
	}
	if !obstructed || panes.MinDistance() >= g.cfg.MinSafeDistance {
		return 0, false, false
	}

	start, length := longestClearRun(panes.Panes)
	if length < minClearRun {
		return 0, false, true
	}

	// Map the run center to an angle. Panes tile the circle with the center
	// pane of an odd-length array anchored at 0 radians = forward.
	n := len(panes.Panes)
	paneWidth := 2 * math.Pi / float64(n)
	center := float64(start) + float64(length-1)/2
	forward := float64(n-1) / 2
	return normalizeAngle((center - forward) * paneWidth), true, true
}

// longestClearRun finds the longest run of consecutive non-obstructed panes,
// treating the array as circular so a run may wrap from last to first.
// Returns the starting index and length; length is 0 when every pane is
// obstructed and n when none are.
func longestClearRun(panes []Pane) (start, length int) {
	n := len(panes)
	if n == 0 {
		return 0, 0
	}

	bestStart, bestLen := 0, 0
	runStart, runLen := 0, 0

	// Scan twice around to catch wrapping runs, capping at n.
	for i := 0; i < 2*n; i++ {
		if !panes[i%n].Obstructed {
			if runLen == 0 {
				runStart = i % n
			}
			runLen++
			if runLen > bestLen {
				bestStart, bestLen = runStart, runLen
			}
			if bestLen >= n {
				return bestStart, n
			}
		} else {
			runLen = 0
		}
	}
	return bestStart, bestLen
}
