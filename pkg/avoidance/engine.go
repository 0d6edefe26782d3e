// Package avoidance implements the per-frame obstacle-avoidance decision
// engine: depth field analysis, clear-path selection, hazard override,
// heading smoothing, and guidance classification.
package avoidance

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/clearway/go-clearway/internal/log"
	"github.com/clearway/go-clearway/pkg/depth"
	"github.com/clearway/go-clearway/pkg/guidance"
)

// AnglePublisher receives the final avoidance heading for transmission.
// Implementations must never block; see guidance.Publisher.
type AnglePublisher interface {
	PublishAngle(channel string, deg int)
}

// Snapshot is the engine state exposed to readers outside the frame
// callback (dashboard, logs). Copied under lock on every processed frame.
type Snapshot struct {
	Instruction   guidance.Instruction `json:"instruction"`
	Label         string               `json:"label"`
	SmoothedAngle float64              `json:"smoothed_angle"` // radians, compass convention
	HasHeading    bool                 `json:"has_heading"`
	PathClear     bool                 `json:"path_clear"`
	HazardActive  bool                 `json:"hazard_active"`
	ObstacleLeft  bool                 `json:"obstacle_left"`
	ObstacleRight bool                 `json:"obstacle_right"`
	Stability     float64              `json:"stability"` // 0-1, heading steadiness
	FramesSeen    uint64               `json:"frames_seen"`
	FramesUsed    uint64               `json:"frames_used"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// stabilityWindow is how many recent smoothed headings feed the stability
// score shown on the dashboard.
const stabilityWindow = 10

// Engine owns the HeadingState and runs the full per-frame pipeline. All
// mutation happens inside ProcessFrame, which must be called from a single
// goroutine (the sensor callback); readers get copies via Snapshot().
type Engine struct {
	mu  sync.RWMutex
	cfg Config

	analyzer   *Analyzer
	selector   *Selector
	hazard     *HazardGuard
	smoother   *Smoother
	classifier *Classifier

	publisher AnglePublisher
	onUpdate  func(Snapshot)

	framesSeen uint64
	framesUsed uint64

	lastSent     Classification
	hasSent      bool
	lastSentTime time.Time

	headingHist []float64
	snapshot    Snapshot
}

// NewEngine creates an engine. publisher may be nil (e.g. in tests); the
// pipeline then runs without transmitting.
func NewEngine(cfg Config, publisher AnglePublisher) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:        cfg,
		analyzer:   NewAnalyzer(cfg),
		selector:   NewSelector(cfg),
		hazard:     NewHazardGuard(cfg),
		smoother:   NewSmoother(cfg),
		classifier: NewClassifier(cfg),
		publisher:  publisher,
	}, nil
}

// SetUpdateFunc registers a callback invoked with each processed frame's
// snapshot. The callback runs on the frame goroutine and must not block.
func (e *Engine) SetUpdateFunc(fn func(Snapshot)) {
	e.mu.Lock()
	e.onUpdate = fn
	e.mu.Unlock()
}

// Snapshot returns a copy of the last processed frame's state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// ProcessFrame runs the avoidance pipeline on one frame. Frames beyond the
// configured interval are counted and dropped to bound CPU cost. A nil
// frame is a sensor dropout and resets the heading state.
func (e *Engine) ProcessFrame(frame *depth.Frame) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.framesSeen++
	if frame != nil && e.framesSeen%uint64(e.cfg.FrameInterval) != 0 {
		return
	}
	e.framesUsed++

	now := time.Now()
	if frame != nil {
		now = frame.Timestamp
	}

	var result Classification
	var smoothed float64
	var hasHeading, hazardActive bool

	if frame == nil {
		// Never coast on stale clearance data when sensing fails.
		e.smoother.Reset()
		result = Classification{Instruction: guidance.Straight, PathClear: false}
	} else {
		hist, panes := e.analyzer.Analyze(frame)
		selected, selOK := e.selector.Select(hist)
		override, overrideOK, hazard := e.hazard.Check(panes)
		hazardActive = hazard

		// The override unconditionally supersedes the scored selection, and
		// a hazard without an escape run suppresses it entirely.
		candidate, ok := selected, selOK
		if overrideOK {
			candidate, ok = override, true
		} else if hazard {
			ok = false
		}

		smoothed, hasHeading = e.smoother.Update(candidate, ok, hazard, now)

		intensity := e.classifier.Intensity(smoothed, overrideOK) * e.smoother.State().TurnCorrection
		result = e.classifier.Classify(smoothed, hasHeading, intensity, panes)
	}

	e.updateHistory(smoothed, hasHeading)
	e.publish(result, smoothed, now)

	e.snapshot = Snapshot{
		Instruction:   result.Instruction,
		Label:         result.Instruction.String(),
		SmoothedAngle: smoothed,
		HasHeading:    hasHeading,
		PathClear:     result.PathClear,
		HazardActive:  hazardActive,
		ObstacleLeft:  result.ObstacleLeft,
		ObstacleRight: result.ObstacleRight,
		Stability:     e.stability(),
		FramesSeen:    e.framesSeen,
		FramesUsed:    e.framesUsed,
		UpdatedAt:     now,
	}

	if e.onUpdate != nil {
		e.onUpdate(e.snapshot)
	}
}

// publish sends the avoidance heading when the classification changed and
// the minimum update interval has elapsed. Edge-triggered with a debounce so
// flapping between adjacent intensity levels never reaches the servo.
func (e *Engine) publish(result Classification, smoothed float64, now time.Time) {
	if e.publisher == nil {
		return
	}
	if e.hasSent && result == e.lastSent {
		return
	}
	if e.hasSent && now.Sub(e.lastSentTime) < e.cfg.GuidanceUpdateInterval {
		return
	}

	deg := 0
	if result.PathClear {
		deg = int(Degrees(signedDelta(0, smoothed)))
	}
	e.publisher.PublishAngle(guidance.ChannelAvoidance, guidance.ClampDegrees(deg))

	log.Debug("guidance published",
		"instruction", result.Instruction.String(),
		"angle_deg", deg,
		"path_clear", result.PathClear,
	)

	e.lastSent = result
	e.hasSent = true
	e.lastSentTime = now
}

func (e *Engine) updateHistory(smoothed float64, hasHeading bool) {
	if !hasHeading {
		e.headingHist = e.headingHist[:0]
		return
	}
	e.headingHist = append(e.headingHist, smoothed)
	if len(e.headingHist) > stabilityWindow {
		copy(e.headingHist, e.headingHist[1:])
		e.headingHist = e.headingHist[:stabilityWindow]
	}
}

// stability scores how steady the recent smoothed heading has been, from 0
// (thrashing) to 1 (locked). Deltas are taken relative to the latest heading
// so wraparound near 0/2π does not inflate the variance.
func (e *Engine) stability() float64 {
	if len(e.headingHist) < 3 {
		return 0
	}
	ref := e.headingHist[len(e.headingHist)-1]
	diffs := make([]float64, len(e.headingHist))
	for i, a := range e.headingHist {
		diffs[i] = signedDelta(ref, a)
	}
	variance := stat.PopVariance(diffs, nil)
	return clamp(1-variance/0.25, 0, 1)
}
