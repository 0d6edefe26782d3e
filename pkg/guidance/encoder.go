package guidance

import (
	"fmt"
	"strconv"
	"strings"
)

// Logical channels at the actuator boundary. Each write is a bare UTF-8
// decimal integer string; no length prefix or checksum. The receiver holds
// its previous position on a parse error.
const (
	ChannelBearing   = "bearing"   // target-bearing angle toward the active waypoint
	ChannelAvoidance = "avoidance" // obstacle-avoidance heading
)

// Servo-safe output range in degrees. The remote side has limit switches,
// but we never assume it enforces range limits.
const (
	MinAngleDegrees = -90
	MaxAngleDegrees = 90
)

// ClampDegrees restricts an angle to the documented safe transmission range.
func ClampDegrees(deg int) int {
	if deg < MinAngleDegrees {
		return MinAngleDegrees
	}
	if deg > MaxAngleDegrees {
		return MaxAngleDegrees
	}
	return deg
}

// EncodeAngle renders an angle as the wire payload, clamping first.
func EncodeAngle(deg int) []byte {
	return []byte(strconv.Itoa(ClampDegrees(deg)))
}

// DecodeAngle parses a wire payload back into integer degrees. Leading and
// trailing whitespace is tolerated; anything else is a malformed payload.
func DecodeAngle(payload []byte) (int, error) {
	deg, err := strconv.Atoi(strings.TrimSpace(string(payload)))
	if err != nil {
		return 0, fmt.Errorf("malformed angle payload %q: %w", payload, err)
	}
	return deg, nil
}
