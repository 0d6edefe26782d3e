package avoidance

import (
	"fmt"
	"time"
)

// Config holds all tunable parameters for the obstacle avoidance engine.
type Config struct {
	// Depth thresholds (meters)
	MaxDepthDistance float64 // Samples beyond this count as open space
	MinClearDistance float64 // Samples under this count as occupied
	MinSafeDistance  float64 // Samples under this are an immediate hazard

	// Frame sampling
	SampleStride   int     // Sample every Nth pixel in both axes
	MarginFraction float64 // Fraction of each frame edge excluded from sector analysis
	FrameInterval  int     // Process every Nth frame from the sensor

	// Field partitioning
	SectorCount int // Angular buckets for clearance scoring
	PaneCount   int // Vertical strips for near-field hazard tracking

	// Sector scoring
	MinSamplePoints int     // Sectors with fewer valid points are ineligible
	MinScore        float64 // Confidence floor below which no path is reported
	SafetyWeight    float64
	ClearanceWeight float64
	DepthWeight     float64
	ForwardWeight   float64

	// Heading smoothing
	BaseSmoothing   float64 // Base EMA alpha before turn-rate adaptation
	MinSmoothing    float64 // Lower clamp on the adaptive alpha
	MaxSmoothing    float64 // Upper clamp on the adaptive alpha
	HazardSmoothing float64 // Minimum alpha while a hazard override is active

	// Turn correction
	NearTargetDegrees float64 // Extra correction taper inside this distance to target
	SnapTargetDegrees float64 // Re-anchor the target when within this distance

	// Classification
	StraightBandDegrees float64 // Half-width of the straight-ahead band
	SharpThreshold      float64 // Intensity above this is a sharp turn
	MediumThreshold     float64 // Intensity above this is a medium turn

	// Output
	GuidanceUpdateInterval time.Duration // Minimum interval between published changes

	// Calibration
	AngleOffsetDegrees float64 // Additive sensor-to-world rotation correction
}

// DefaultConfig returns the recommended configuration for walking-pace guidance.
func DefaultConfig() Config {
	return Config{
		MaxDepthDistance: 5.0,
		MinClearDistance: 1.0,
		MinSafeDistance:  0.5,

		SampleStride:   4,
		MarginFraction: 0.15,
		FrameInterval:  5, // ~6-12Hz effective at 30-60Hz sensor rate

		SectorCount: 24,
		PaneCount:   9,

		MinSamplePoints: 5,
		MinScore:        0.3,
		SafetyWeight:    4.0,
		ClearanceWeight: 2.0,
		DepthWeight:     1.0,
		ForwardWeight:   0.5,

		BaseSmoothing:   0.2,
		MinSmoothing:    0.1,
		MaxSmoothing:    0.5,
		HazardSmoothing: 0.5,

		NearTargetDegrees: 22.5,
		SnapTargetDegrees: 10.0,

		StraightBandDegrees: 15.0,
		SharpThreshold:      0.8,
		MediumThreshold:     0.4,

		GuidanceUpdateInterval: 100 * time.Millisecond,

		// Zero until verified against a reference device; the sensor mount
		// typically needs a small rotation correction.
		AngleOffsetDegrees: 0,
	}
}

// ConservativeConfig returns a configuration tuned for cluttered indoor spaces:
// larger safety margins and heavier smoothing.
func ConservativeConfig() Config {
	cfg := DefaultConfig()
	cfg.MinClearDistance = 1.5
	cfg.MinSafeDistance = 0.8
	cfg.BaseSmoothing = 0.15
	cfg.MaxSmoothing = 0.4
	cfg.GuidanceUpdateInterval = 150 * time.Millisecond
	return cfg
}

// ResponsiveConfig returns a configuration tuned for open outdoor spaces:
// faster reaction and lighter smoothing.
func ResponsiveConfig() Config {
	cfg := DefaultConfig()
	cfg.FrameInterval = 3
	cfg.BaseSmoothing = 0.3
	cfg.GuidanceUpdateInterval = 80 * time.Millisecond
	return cfg
}

// Validate checks threshold ordering and clamps recoverable values.
// Bad distance ordering is rejected here rather than discovered mid-frame.
func (c *Config) Validate() error {
	if c.MaxDepthDistance <= 0 {
		return fmt.Errorf("max depth distance must be positive, got %v", c.MaxDepthDistance)
	}
	if c.MinClearDistance <= 0 || c.MinClearDistance >= c.MaxDepthDistance {
		return fmt.Errorf("min clear distance %v must be in (0, %v)", c.MinClearDistance, c.MaxDepthDistance)
	}
	if c.MinSafeDistance <= 0 || c.MinSafeDistance > c.MinClearDistance {
		return fmt.Errorf("min safe distance %v must be in (0, %v]", c.MinSafeDistance, c.MinClearDistance)
	}
	if c.SectorCount < 4 {
		return fmt.Errorf("sector count must be at least 4, got %d", c.SectorCount)
	}
	if c.PaneCount < 3 {
		return fmt.Errorf("pane count must be at least 3, got %d", c.PaneCount)
	}

	if c.SampleStride < 1 {
		c.SampleStride = 1
	}
	if c.FrameInterval < 1 {
		c.FrameInterval = 1
	}
	c.MarginFraction = clamp(c.MarginFraction, 0, 0.4)
	c.BaseSmoothing = clamp(c.BaseSmoothing, 0.01, 1)
	c.MinSmoothing = clamp(c.MinSmoothing, 0.01, c.MaxSmoothing)
	c.MaxSmoothing = clamp(c.MaxSmoothing, c.MinSmoothing, 1)
	if c.MinSamplePoints < 1 {
		c.MinSamplePoints = 1
	}
	if c.GuidanceUpdateInterval <= 0 {
		c.GuidanceUpdateInterval = 100 * time.Millisecond
	}
	return nil
}
