package avoidance

import (
	"math"

	"github.com/clearway/go-clearway/pkg/depth"
)

// SectorStats accumulates clearance evidence for one angular bucket.
// ClearPoints never exceeds TotalValidPoints.
type SectorStats struct {
	ClearPoints      int
	TotalValidPoints int
	DepthSum         float64
}

// SectorHistogram is the per-frame angular clearance map. Only the forward
// hemisphere is populated by the sampling geometry; the full circle is kept
// so sector indices map directly to [0, 2π).
type SectorHistogram struct {
	Sectors []SectorStats
}

// SectorWidth returns the angular width of one sector in radians.
func (h SectorHistogram) SectorWidth() float64 {
	return 2 * math.Pi / float64(len(h.Sectors))
}

// SectorCenter returns the center angle of sector i in [0, 2π).
func (h SectorHistogram) SectorCenter(i int) float64 {
	return normalizeAngle((float64(i) + 0.5) * h.SectorWidth())
}

// Pane is one vertical strip of the field of view, tracked for near-field
// obstructions independently of sector granularity.
type Pane struct {
	Obstructed  bool
	MinDistance float64 // +Inf when the pane has no valid samples
}

// PaneMap is the per-frame vertical-pane obstruction map.
type PaneMap struct {
	Panes []Pane
}

// MinDistance returns the smallest pane distance across the map.
func (p PaneMap) MinDistance() float64 {
	min := math.Inf(1)
	for _, pane := range p.Panes {
		if pane.MinDistance < min {
			min = pane.MinDistance
		}
	}
	return min
}

// Analyzer converts a raw depth frame into a sector histogram and a pane map.
// It is a pure function of frame and config; no state is retained.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an analyzer for the given configuration.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze scans one frame. The outer frame margins are excluded from sector
// analysis to reduce ground, ceiling, and lens-edge noise; panes cover the
// full width but only the vertical center third, where obstacles at body
// height project.
func (a *Analyzer) Analyze(frame *depth.Frame) (SectorHistogram, PaneMap) {
	hist := SectorHistogram{Sectors: make([]SectorStats, a.cfg.SectorCount)}
	panes := PaneMap{Panes: make([]Pane, a.cfg.PaneCount)}
	for i := range panes.Panes {
		panes.Panes[i].MinDistance = math.Inf(1)
	}

	w, h := frame.Width, frame.Height
	cx, cy := float64(w)/2, float64(h)/2

	marginX := int(a.cfg.MarginFraction * float64(w))
	marginY := int(a.cfg.MarginFraction * float64(h))
	stride := a.cfg.SampleStride
	sectorWidth := hist.SectorWidth()

	for y := marginY; y < h-marginY; y += stride {
		for x := marginX; x < w-marginX; x += stride {
			v := frame.At(x, y)
			if !depth.Valid(v) {
				continue
			}
			dist := float64(v)

			// Compass convention around the optical center: 0 = up/forward,
			// π/2 = image right, measured clockwise. Image y grows downward,
			// so flip it. The exact zero reference is a calibration constant;
			// see Config.AngleOffsetDegrees.
			angle := normalizeAngle(math.Atan2(float64(x)-cx, cy-float64(y)))
			sector := int(angle / sectorWidth)
			if sector >= a.cfg.SectorCount {
				sector = a.cfg.SectorCount - 1
			}

			s := &hist.Sectors[sector]
			s.TotalValidPoints++
			// Range saturation reads as open space: a sensor maxing out means
			// nothing within range, not an obstacle. Cap the contribution so
			// saturated readings do not skew the average.
			s.DepthSum += math.Min(dist, a.cfg.MaxDepthDistance)
			if dist >= a.cfg.MinClearDistance {
				s.ClearPoints++
			}
		}
	}

	// Pane scan over the vertical center third.
	top, bottom := h/3, 2*h/3
	for y := top; y < bottom; y += stride {
		for x := 0; x < w; x += stride {
			v := frame.At(x, y)
			if !depth.Valid(v) {
				continue
			}
			dist := float64(v)

			pane := x * a.cfg.PaneCount / w
			if pane >= a.cfg.PaneCount {
				pane = a.cfg.PaneCount - 1
			}

			p := &panes.Panes[pane]
			if dist < p.MinDistance {
				p.MinDistance = dist
			}
			if dist < a.cfg.MinClearDistance {
				p.Obstructed = true
			}
		}
	}

	return hist, panes
}
