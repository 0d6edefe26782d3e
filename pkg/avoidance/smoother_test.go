package avoidance

import (
	"math"
	"testing"
	"time"
)

func TestSmoother_ResetOnNoCandidate(t *testing.T) {
	s := NewSmoother(DefaultConfig())
	now := time.Now()

	if _, ok := s.Update(Radians(45), true, false, now); !ok {
		t.Fatal("no heading after a valid reading")
	}

	angle, ok := s.Update(0, false, false, now.Add(100*time.Millisecond))
	if ok || angle != 0 {
		t.Errorf("Update without candidate returned (%v, %v), want (0, false)", angle, ok)
	}

	// Reset is idempotent across repeated losses.
	angle, ok = s.Update(0, false, false, now.Add(200*time.Millisecond))
	if ok || angle != 0 {
		t.Errorf("repeated loss returned (%v, %v), want (0, false)", angle, ok)
	}
	st := s.State()
	if st.HasHeading || st.HasPrevious {
		t.Error("state retained after reset")
	}
	if st.TurnCorrection != 1 {
		t.Errorf("turn correction = %v after reset, want 1", st.TurnCorrection)
	}
}

func TestSmoother_FirstReadingAdoptedDirectly(t *testing.T) {
	s := NewSmoother(DefaultConfig())

	in := Radians(123)
	angle, ok := s.Update(in, true, false, time.Now())
	if !ok {
		t.Fatal("no heading from first reading")
	}
	if math.Abs(angle-in) > 1e-12 {
		t.Errorf("first reading smoothed to %v°, want adopted as-is", Degrees(angle))
	}
	if st := s.State(); math.Abs(st.TargetAngle-in) > 1e-12 {
		t.Errorf("target = %v°, want the first reading", Degrees(st.TargetAngle))
	}
}

func TestSmoother_HazardWidensAlpha(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Now()

	calm := NewSmoother(cfg)
	calm.Update(0, true, false, now)
	calmAngle, _ := calm.Update(Radians(20), true, false, now.Add(time.Second))

	urgent := NewSmoother(cfg)
	urgent.Update(0, true, false, now)
	urgentAngle, _ := urgent.Update(Radians(20), true, true, now.Add(time.Second))

	// Under hazard the alpha floor is HazardSmoothing (0.5): half the 20°
	// error closes in one step.
	if math.Abs(urgentAngle-Radians(10)) > 1e-9 {
		t.Errorf("hazard step moved to %v°, want 10°", Degrees(urgentAngle))
	}
	if calmAngle >= urgentAngle {
		t.Errorf("calm step %v° not slower than hazard step %v°",
			Degrees(calmAngle), Degrees(urgentAngle))
	}
}

func TestSmoother_WraparoundBlendsAcrossZero(t *testing.T) {
	s := NewSmoother(DefaultConfig())
	now := time.Now()

	s.Update(Radians(350), true, false, now)
	angle, ok := s.Update(Radians(10), true, false, now.Add(100*time.Millisecond))
	if !ok {
		t.Fatal("heading lost during update")
	}

	// 350° toward 10° must cross 0, not swing through 180. The turning rate
	// pins alpha at its maximum, so the step is half of the +20° arc.
	if math.Abs(signedDelta(angle, 0)) > 1e-9 {
		t.Errorf("smoothed = %v°, want 0° (halfway across the wrap)", Degrees(angle))
	}
	if d := angularDistance(angle, math.Pi); d < Radians(90) {
		t.Errorf("smoothed %v° swung the long way around", Degrees(angle))
	}
}

func TestSmoother_TurnCorrectionWhenTurningTowardTarget(t *testing.T) {
	s := NewSmoother(DefaultConfig())
	now := time.Now()

	s.Update(Radians(60), true, false, now)
	// Drift away first so the smoothed estimate sits below the target.
	s.Update(Radians(40), true, false, now.Add(time.Second))
	// Input now swings back up toward the target: measured turning rate and
	// the remaining error share a sign, so intensity is damped to 0.2.
	s.Update(Radians(70), true, false, now.Add(2*time.Second))

	if st := s.State(); math.Abs(st.TurnCorrection-0.2) > 1e-9 {
		t.Errorf("turn correction = %v, want 0.2", st.TurnCorrection)
	}
}

func TestSmoother_CorrectionHalvedNearTarget(t *testing.T) {
	s := NewSmoother(DefaultConfig())
	now := time.Now()

	s.Update(0, true, false, now)
	// Target sits a few degrees off the user's forward: almost there, so
	// corrections are halved.
	s.Update(Radians(5), true, false, now.Add(time.Second))
	s.Update(Radians(5), true, false, now.Add(2*time.Second))

	if st := s.State(); math.Abs(st.TurnCorrection-0.5) > 1e-9 {
		t.Errorf("turn correction = %v near target, want 0.5", st.TurnCorrection)
	}
}

// A hazard escape points far off the user's forward. Until the user actually
// turns, the EMA converging on the candidate must not read as "almost there"
// and taper the commanded intensity.
func TestSmoother_CorrectionFullWhileTargetOffForward(t *testing.T) {
	s := NewSmoother(DefaultConfig())
	now := time.Now()

	s.Update(Radians(120), true, true, now)
	for i := 1; i <= 5; i++ {
		s.Update(Radians(120), true, true, now.Add(time.Duration(i)*100*time.Millisecond))
		if st := s.State(); st.TurnCorrection != 1 {
			t.Fatalf("step %d: turn correction = %v for a stationary user, want 1",
				i, st.TurnCorrection)
		}
	}
}

func TestSmoother_TargetReanchorsWhenConverged(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Now()

	// Target within the snap band of the user's forward: converged, so the
	// target re-anchors on the fresh input.
	s := NewSmoother(cfg)
	s.Update(Radians(5), true, false, now)
	s.Update(Radians(8), true, false, now.Add(time.Second))
	if st := s.State(); math.Abs(st.TargetAngle-Radians(8)) > 1e-9 {
		t.Errorf("target = %v°, want re-anchored at 8°", Degrees(st.TargetAngle))
	}

	// Target well off forward holds until the user turns onto it.
	far := NewSmoother(cfg)
	far.Update(Radians(60), true, false, now)
	far.Update(Radians(65), true, false, now.Add(time.Second))
	if st := far.State(); math.Abs(st.TargetAngle-Radians(60)) > 1e-9 {
		t.Errorf("target = %v°, want held at 60°", Degrees(st.TargetAngle))
	}
}
