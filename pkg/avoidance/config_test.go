package avoidance

import (
	"testing"
	"time"
)

func TestConfigValidate_Presets(t *testing.T) {
	for name, cfg := range map[string]Config{
		"default":      DefaultConfig(),
		"conservative": ConservativeConfig(),
		"responsive":   ResponsiveConfig(),
	} {
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s preset invalid: %v", name, err)
		}
	}
}

func TestConfigValidate_DistanceOrdering(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinClearDistance = cfg.MaxDepthDistance + 1
	if err := cfg.Validate(); err == nil {
		t.Error("no error for clear distance beyond max depth")
	}

	cfg = DefaultConfig()
	cfg.MinSafeDistance = cfg.MinClearDistance + 0.5
	if err := cfg.Validate(); err == nil {
		t.Error("no error for safe distance beyond clear distance")
	}

	cfg = DefaultConfig()
	cfg.MaxDepthDistance = 0
	if err := cfg.Validate(); err == nil {
		t.Error("no error for zero max depth")
	}
}

func TestConfigValidate_ClampsRecoverable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleStride = 0
	cfg.FrameInterval = -1
	cfg.MarginFraction = 0.9
	cfg.GuidanceUpdateInterval = 0

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.SampleStride != 1 {
		t.Errorf("sample stride = %d, want clamped to 1", cfg.SampleStride)
	}
	if cfg.FrameInterval != 1 {
		t.Errorf("frame interval = %d, want clamped to 1", cfg.FrameInterval)
	}
	if cfg.MarginFraction > 0.4 {
		t.Errorf("margin fraction = %v, want clamped to 0.4", cfg.MarginFraction)
	}
	if cfg.GuidanceUpdateInterval != 100*time.Millisecond {
		t.Errorf("update interval = %v, want defaulted", cfg.GuidanceUpdateInterval)
	}
}

func TestSetTuningParams(t *testing.T) {
	e, err := NewEngine(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	before := e.GetTuningParams()
	err = e.SetTuningParams(TuningParams{
		MinClearDistance:   1.2,
		AngleOffsetDegrees: -5,
	})
	if err != nil {
		t.Fatalf("SetTuningParams: %v", err)
	}

	after := e.GetTuningParams()
	if after.MinClearDistance != 1.2 {
		t.Errorf("min clear distance = %v, want 1.2", after.MinClearDistance)
	}
	if after.AngleOffsetDegrees != -5 {
		t.Errorf("angle offset = %v, want -5", after.AngleOffsetDegrees)
	}
	// Zero fields leave the current values.
	if after.MaxDepthDistance != before.MaxDepthDistance {
		t.Errorf("max depth changed to %v by a zero field", after.MaxDepthDistance)
	}
	if after.FrameInterval != before.FrameInterval {
		t.Errorf("frame interval changed to %v by a zero field", after.FrameInterval)
	}
}

func TestSetTuningParams_RejectsInvalidWholesale(t *testing.T) {
	e, err := NewEngine(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	before := e.GetTuningParams()
	// Valid on its own but violates ordering against the current config.
	err = e.SetTuningParams(TuningParams{MinSafeDistance: before.MinClearDistance + 1})
	if err == nil {
		t.Fatal("no error for safe distance beyond clear distance")
	}
	if after := e.GetTuningParams(); after != before {
		t.Errorf("rejected update still applied: %+v", after)
	}
}
