package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clearway/go-clearway/internal/log"
	"github.com/clearway/go-clearway/pkg/avoidance"
	"github.com/clearway/go-clearway/pkg/depth"
)

// simulate plays synthetic depth scenarios through the full avoidance
// pipeline and prints the resulting instruction stream. Useful for tuning
// weights and smoothing without hardware.
func main() {
	scenario := flag.String("scenario", "walkthrough", "Scenario: hallway, wall, hazard, dropout, walkthrough")
	duration := flag.Duration("duration", 10*time.Second, "How long to run")
	flag.Parse()

	log.Init("warn")

	cfg := avoidance.DefaultConfig()
	engine, err := avoidance.NewEngine(cfg, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine: %v\n", err)
		os.Exit(1)
	}

	var last avoidance.Snapshot
	engine.SetUpdateFunc(func(snap avoidance.Snapshot) {
		if snap.Instruction != last.Instruction || snap.PathClear != last.PathClear {
			fmt.Printf("%-12s  angle=%6.1f°  clear=%-5v  hazard=%-5v  stability=%.2f\n",
				snap.Label, avoidance.Degrees(snap.SmoothedAngle), snap.PathClear,
				snap.HazardActive, snap.Stability)
		}
		last = snap
	})

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	source := &depth.SyntheticSource{
		Sequence: buildSequence(*scenario, cfg),
		Rate:     33 * time.Millisecond,
		Loop:     true,
	}

	frames, err := source.Frames(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "source: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scenario %q for %v\n\n", *scenario, *duration)
	for frame := range frames {
		engine.ProcessFrame(frame)
	}

	snap := engine.Snapshot()
	fmt.Printf("\nFrames: %d seen, %d processed\n", snap.FramesSeen, snap.FramesUsed)
}

func buildSequence(name string, cfg avoidance.Config) []*depth.Frame {
	now := time.Now()
	far := float32(cfg.MaxDepthDistance * 0.8)
	near := float32(cfg.MinClearDistance * 0.5)
	hazardous := float32(cfg.MinSafeDistance * 0.6)

	switch name {
	case "hallway":
		return []*depth.Frame{depth.UniformFrame(far, now)}
	case "wall":
		// Wall over the left and center, open to the right.
		return []*depth.Frame{depth.WallFrame(near, far, 0.0, 0.6, now)}
	case "hazard":
		// Near-field obstruction with only the left edge open.
		return []*depth.Frame{depth.WallFrame(hazardous, far, 0.35, 1.0, now)}
	case "dropout":
		return []*depth.Frame{depth.UniformFrame(far, now), depth.DropoutFrame(now)}
	default:
		// A short walk: clear hallway, wall ahead, squeeze past, clear again.
		return []*depth.Frame{
			depth.UniformFrame(far, now),
			depth.UniformFrame(far, now),
			depth.WallFrame(near, far, 0.2, 0.6, now),
			depth.WallFrame(near, far, 0.1, 0.7, now),
			depth.WallFrame(hazardous, far, 0.3, 0.9, now),
			depth.UniformFrame(far, now),
		}
	}
}
