// Package guidance defines the steering instruction scale and the transport
// path that carries it to the remote compass actuator.
package guidance

// Instruction is the discretized steering command on a seven-level scale.
// Negative is left, positive is right, zero is straight (or blocked when
// PathClear is false).
type Instruction int

const (
	SharpLeft   Instruction = -3
	MediumLeft  Instruction = -2
	SlightLeft  Instruction = -1
	Straight    Instruction = 0
	SlightRight Instruction = 1
	MediumRight Instruction = 2
	SharpRight  Instruction = 3
)

// String returns a human-readable label for logging and the dashboard.
func (i Instruction) String() string {
	switch i {
	case SharpLeft:
		return "sharp left"
	case MediumLeft:
		return "left"
	case SlightLeft:
		return "slight left"
	case Straight:
		return "straight"
	case SlightRight:
		return "slight right"
	case MediumRight:
		return "right"
	case SharpRight:
		return "sharp right"
	default:
		return "unknown"
	}
}

// Update is one published guidance tick: the instruction, the smoothed
// heading it was derived from, and whether any clear path exists.
type Update struct {
	Instruction  Instruction `json:"instruction"`
	AngleDegrees float64     `json:"angle_degrees"`
	PathClear    bool        `json:"path_clear"`
}
