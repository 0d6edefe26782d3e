package depth

import "context"

// Source supplies depth frames. Implementations deliver frames in arrival
// order on the returned channel and close it when the sensor stops.
type Source interface {
	// Frames starts frame delivery. The channel is closed when ctx is
	// cancelled or the sensor shuts down.
	Frames(ctx context.Context) (<-chan *Frame, error)
}
