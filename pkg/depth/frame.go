// Package depth defines the sensor-side contract: per-frame grids of
// float32 distances in meters, as produced by a depth-sensing camera.
package depth

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// Frame is an immutable per-tick depth snapshot. Samples are row-major
// float32 meters; NaN or non-positive values mean invalid/no-return and
// must be skipped, never treated as zero-distance obstacles.
type Frame struct {
	Width     int
	Height    int
	Timestamp time.Time

	samples []float32
}

// NewFrame wraps a packed row-major sample grid.
func NewFrame(width, height int, samples []float32, ts time.Time) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions %dx%d", width, height)
	}
	if len(samples) != width*height {
		return nil, fmt.Errorf("sample count %d does not match %dx%d grid", len(samples), width, height)
	}
	return &Frame{Width: width, Height: height, Timestamp: ts, samples: samples}, nil
}

// FrameFromRaw decodes a frame from a raw little-endian float32 buffer.
// bytesPerRow is the sensor-reported row stride, which may exceed width*4;
// the packed-layout assumption does not hold on real hardware.
func FrameFromRaw(width, height, bytesPerRow int, buf []byte, ts time.Time) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions %dx%d", width, height)
	}
	if bytesPerRow < width*4 {
		return nil, fmt.Errorf("bytes per row %d too small for width %d", bytesPerRow, width)
	}
	if len(buf) < bytesPerRow*height {
		return nil, fmt.Errorf("buffer length %d too small for %d rows of %d bytes", len(buf), height, bytesPerRow)
	}

	samples := make([]float32, width*height)
	for y := 0; y < height; y++ {
		row := buf[y*bytesPerRow:]
		for x := 0; x < width; x++ {
			bits := binary.LittleEndian.Uint32(row[x*4:])
			samples[y*width+x] = math.Float32frombits(bits)
		}
	}
	return &Frame{Width: width, Height: height, Timestamp: ts, samples: samples}, nil
}

// At returns the distance sample at (x, y). Callers should bounds-check
// against Width/Height; out-of-range access panics like a slice would.
func (f *Frame) At(x, y int) float32 {
	return f.samples[y*f.Width+x]
}

// Valid reports whether a sample is a usable distance reading.
func Valid(v float32) bool {
	return !math.IsNaN(float64(v)) && v > 0
}
