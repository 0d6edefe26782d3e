package depth

import (
	"context"
	"math"
	"time"
)

// Scenario builders produce synthetic frames for simulation and tests.
// Dimensions roughly match a real depth sensor (a few hundred pixels per side).

const (
	syntheticWidth  = 256
	syntheticHeight = 192
)

// UniformFrame returns a frame with every sample at the given distance.
func UniformFrame(dist float32, ts time.Time) *Frame {
	samples := make([]float32, syntheticWidth*syntheticHeight)
	for i := range samples {
		samples[i] = dist
	}
	f, _ := NewFrame(syntheticWidth, syntheticHeight, samples, ts)
	return f
}

// WallFrame returns a frame with a near wall covering the horizontal band
// [left, right) (fractions of frame width) at wallDist, and openDist elsewhere.
func WallFrame(wallDist, openDist float32, left, right float64, ts time.Time) *Frame {
	samples := make([]float32, syntheticWidth*syntheticHeight)
	lo := int(left * syntheticWidth)
	hi := int(right * syntheticWidth)
	for y := 0; y < syntheticHeight; y++ {
		for x := 0; x < syntheticWidth; x++ {
			if x >= lo && x < hi {
				samples[y*syntheticWidth+x] = wallDist
			} else {
				samples[y*syntheticWidth+x] = openDist
			}
		}
	}
	f, _ := NewFrame(syntheticWidth, syntheticHeight, samples, ts)
	return f
}

// DropoutFrame returns a frame with every sample invalid, simulating a full
// sensor dropout.
func DropoutFrame(ts time.Time) *Frame {
	samples := make([]float32, syntheticWidth*syntheticHeight)
	nan := float32(math.NaN())
	for i := range samples {
		samples[i] = nan
	}
	f, _ := NewFrame(syntheticWidth, syntheticHeight, samples, ts)
	return f
}

// SyntheticSource replays a fixed sequence of frames at a configurable rate,
// looping when Loop is set. It stands in for the hardware sensor in the
// simulator and in integration tests.
type SyntheticSource struct {
	Sequence []*Frame
	Rate     time.Duration // Delay between frames (default 33ms, ~30Hz)
	Loop     bool
}

// Frames implements Source.
func (s *SyntheticSource) Frames(ctx context.Context) (<-chan *Frame, error) {
	rate := s.Rate
	if rate <= 0 {
		rate = 33 * time.Millisecond
	}

	out := make(chan *Frame)
	go func() {
		defer close(out)
		ticker := time.NewTicker(rate)
		defer ticker.Stop()

		i := 0
		for {
			if i >= len(s.Sequence) {
				if !s.Loop {
					return
				}
				i = 0
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				frame := s.Sequence[i]
				stamped := *frame
				stamped.Timestamp = time.Now()
				i++
				select {
				case out <- &stamped:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
