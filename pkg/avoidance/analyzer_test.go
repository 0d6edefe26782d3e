package avoidance

import (
	"math"
	"testing"
	"time"

	"github.com/clearway/go-clearway/pkg/depth"
)

func TestAnalyze_UniformClearFrame(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAnalyzer(cfg)

	frame := depth.UniformFrame(4.0, time.Now())
	hist, panes := a.Analyze(frame)

	if len(hist.Sectors) != cfg.SectorCount {
		t.Fatalf("expected %d sectors, got %d", cfg.SectorCount, len(hist.Sectors))
	}

	sampled := 0
	for i, s := range hist.Sectors {
		if s.ClearPoints > s.TotalValidPoints {
			t.Errorf("sector %d: clear %d exceeds valid %d", i, s.ClearPoints, s.TotalValidPoints)
		}
		if s.TotalValidPoints > 0 {
			sampled++
			if s.ClearPoints != s.TotalValidPoints {
				t.Errorf("sector %d: expected all points clear at 4m, got %d/%d",
					i, s.ClearPoints, s.TotalValidPoints)
			}
		}
	}
	if sampled == 0 {
		t.Fatal("no sectors received any samples")
	}

	for i, p := range panes.Panes {
		if p.Obstructed {
			t.Errorf("pane %d obstructed in a uniformly clear frame", i)
		}
		if math.Abs(p.MinDistance-4.0) > 1e-6 {
			t.Errorf("pane %d min distance = %v, want 4.0", i, p.MinDistance)
		}
	}
}

func TestAnalyze_InvalidSamplesSkipped(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAnalyzer(cfg)

	frame := depth.DropoutFrame(time.Now())
	hist, panes := a.Analyze(frame)

	for i, s := range hist.Sectors {
		if s.TotalValidPoints != 0 {
			t.Errorf("sector %d counted %d invalid samples as valid", i, s.TotalValidPoints)
		}
	}
	for i, p := range panes.Panes {
		if p.Obstructed {
			t.Errorf("pane %d obstructed by invalid samples", i)
		}
		if !math.IsInf(p.MinDistance, 1) {
			t.Errorf("pane %d min distance = %v, want +Inf", i, p.MinDistance)
		}
	}
}

func TestAnalyze_RangeSaturationCountsAsClear(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAnalyzer(cfg)

	// Beyond max depth: an open hallway must not read as impassable.
	frame := depth.UniformFrame(float32(cfg.MaxDepthDistance*2), time.Now())
	hist, _ := a.Analyze(frame)

	for i, s := range hist.Sectors {
		if s.TotalValidPoints > 0 && s.ClearPoints != s.TotalValidPoints {
			t.Errorf("sector %d: saturated samples not counted clear: %d/%d",
				i, s.ClearPoints, s.TotalValidPoints)
		}
	}
}

func TestAnalyze_NearWallObstructsPanes(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAnalyzer(cfg)

	// Wall at 0.3m over the left 40% of the frame.
	frame := depth.WallFrame(0.3, 4.0, 0.0, 0.4, time.Now())
	_, panes := a.Analyze(frame)

	n := len(panes.Panes)
	leftObstructed := false
	for i := 0; i < n*4/10; i++ {
		if panes.Panes[i].Obstructed {
			leftObstructed = true
			if panes.Panes[i].MinDistance > 0.3+1e-6 {
				t.Errorf("pane %d min distance = %v, want 0.3", i, panes.Panes[i].MinDistance)
			}
		}
	}
	if !leftObstructed {
		t.Error("expected obstructed panes under the near wall")
	}
	if panes.Panes[n-1].Obstructed {
		t.Error("rightmost pane obstructed despite open space")
	}
}
