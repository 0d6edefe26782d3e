// Package servo drives the physical compass pointer on the remote actuator:
// a continuous-rotation servo that is commanded by pulse width and timed
// rotation, bounded by limit switches at ±90°.
package servo

import (
	"fmt"
	"time"

	"github.com/clearway/go-clearway/internal/log"
	"github.com/clearway/go-clearway/pkg/guidance"
)

// Pulse widths in microseconds for a standard continuous-rotation servo.
const (
	MinPulse  = 1000 // full speed counterclockwise
	StopPulse = 1500 // neutral, no rotation
	MaxPulse  = 2000 // full speed clockwise
)

// timePer60Deg is how long the servo takes to sweep 60° at full speed,
// from the servo datasheet.
const timePer60Deg = 124 * time.Millisecond

// Driver abstracts the PWM output. The real implementation talks to the
// GPIO daemon; tests use a mock.
type Driver interface {
	SetPulseWidth(us int) error
}

// Compass tracks the pointer's virtual angle and moves it with timed
// rotations. The servo has no encoder, so the angle is dead-reckoned; the
// limit switches at ±90° are the physical backstop, and the software clamp
// keeps commands inside them regardless.
type Compass struct {
	driver  Driver
	current int // degrees, 0 = straight ahead
}

// NewCompass creates a compass at the neutral position.
func NewCompass(driver Driver) *Compass {
	return &Compass{driver: driver}
}

// Current returns the dead-reckoned pointer angle in degrees.
func (c *Compass) Current() int {
	return c.current
}

// HandlePayload parses one received wire payload and moves the pointer.
// A malformed payload is logged and the pointer holds its position; this
// must never take the receiver down.
func (c *Compass) HandlePayload(payload []byte) error {
	deg, err := guidance.DecodeAngle(payload)
	if err != nil {
		log.Warn("holding position on malformed payload", "error", err)
		return err
	}
	return c.PointTo(deg)
}

// PointTo rotates the pointer to the target angle, clamped to the safe
// range, taking the shorter way around the circle.
func (c *Compass) PointTo(target int) error {
	target = guidance.ClampDegrees(target)

	diff := target - c.current
	// Take the shorter path around the circle. With the ±90° clamp this
	// only matters for targets arriving from an unclamped sender.
	if diff > 180 {
		diff -= 360
	} else if diff < -180 {
		diff += 360
	}
	if diff == 0 {
		return c.driver.SetPulseWidth(StopPulse)
	}

	pulse := MaxPulse
	if diff < 0 {
		pulse = MinPulse
	}

	if err := c.rotate(diff, pulse); err != nil {
		return err
	}
	c.current = target
	log.Debug("pointer moved", "target_deg", target, "delta_deg", diff)
	return nil
}

// rotate runs the servo for the time needed to sweep the given number of
// degrees, then stops it. Blocking; the daemon serializes commands.
func (c *Compass) rotate(deg, pulse int) error {
	if err := c.driver.SetPulseWidth(pulse); err != nil {
		return fmt.Errorf("start rotation: %w", err)
	}

	abs := deg
	if abs < 0 {
		abs = -abs
	}
	time.Sleep(time.Duration(abs) * timePer60Deg / 60)

	if err := c.driver.SetPulseWidth(StopPulse); err != nil {
		return fmt.Errorf("stop rotation: %w", err)
	}
	return nil
}
