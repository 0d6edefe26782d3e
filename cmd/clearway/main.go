package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clearway/go-clearway/internal/config"
	"github.com/clearway/go-clearway/internal/log"
	"github.com/clearway/go-clearway/pkg/avoidance"
	"github.com/clearway/go-clearway/pkg/depth"
	"github.com/clearway/go-clearway/pkg/guidance"
	"github.com/clearway/go-clearway/pkg/route"
	"github.com/clearway/go-clearway/pkg/web"
)

func main() {
	configPath := flag.String("config", "clearway.yaml", "Config file path")
	routePath := flag.String("route", "", "Route file (JSON array of {lat, lon})")
	scenario := flag.String("scenario", "hallway", "Synthetic sensor scenario when no hardware source is wired (hallway, wall, dropout)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log.Init(cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	// Transport to the compass actuator.
	transport, err := openTransport(cfg.Transport)
	if err != nil {
		fmt.Fprintf(os.Stderr, "transport: %v\n", err)
		os.Exit(1)
	}

	var publisher *guidance.Publisher
	if transport != nil {
		defer transport.Close()
		publisher = guidance.NewPublisher(transport)
		go publisher.Run(ctx)
	}

	engine, err := avoidance.NewEngine(cfg.Avoidance, publisher)
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine: %v\n", err)
		os.Exit(1)
	}

	// Route progress, when a route is supplied.
	var progress *route.Progress
	if *routePath != "" {
		progress, err = loadRoute(*routePath, cfg.Route)
		if err != nil {
			fmt.Fprintf(os.Stderr, "route: %v\n", err)
			os.Exit(1)
		}
	}

	// Dashboard.
	server := web.NewServer(cfg.Server.Port, engine, progress)
	engine.SetUpdateFunc(server.PushSnapshot)
	if progress != nil {
		lastBearing := 1e9
		server.OnPosition = func(pos route.Waypoint, headingDeg float64) {
			bearing, ok := progress.TargetBearing(pos, headingDeg)
			if !ok {
				return
			}
			// Send only meaningful changes; the servo hop is rate-limited
			// on its own channel.
			if diff := bearing - lastBearing; diff > 2 || diff < -2 {
				if publisher != nil {
					publisher.PublishAngle(guidance.ChannelBearing, int(bearing))
				}
				server.PushBearing(bearing, progress.Remaining())
				lastBearing = bearing
			}
		}
	}
	go func() {
		if err := server.Start(); err != nil {
			log.Error("dashboard stopped", "error", err)
		}
	}()
	defer server.Shutdown()

	// Depth source: synthetic scenarios until a hardware Source is wired.
	source := buildScenario(*scenario, cfg.Avoidance)
	frames, err := source.Frames(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sensor: %v\n", err)
		os.Exit(1)
	}

	log.Info("clearway started",
		"scenario", *scenario,
		"transport", cfg.Transport.Mode,
		"frame_interval", cfg.Avoidance.FrameInterval,
	)

	for frame := range frames {
		engine.ProcessFrame(frame)
	}
	log.Info("sensor stream ended")
}

func openTransport(cfg config.TransportConfig) (guidance.Transport, error) {
	switch cfg.Mode {
	case "ws":
		return guidance.NewWSTransport(cfg.URL), nil
	case "serial":
		return guidance.OpenSerial(cfg.SerialPort, cfg.BaudRate)
	default:
		log.Warn("transport disabled, guidance will not be transmitted")
		return nil, nil
	}
}

func loadRoute(path string, cfg config.RouteConfig) (*route.Progress, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var points []route.Waypoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("parse route: %w", err)
	}

	resampled, err := route.Resample(points, cfg.SpacingMeters)
	if err != nil {
		return nil, err
	}
	log.Info("route loaded", "points", len(points), "resampled", len(resampled))
	return route.NewProgress(resampled, cfg.ToleranceMeters), nil
}

func buildScenario(name string, cfg avoidance.Config) *depth.SyntheticSource {
	now := time.Now()
	far := float32(cfg.MaxDepthDistance * 0.8)

	var seq []*depth.Frame
	switch name {
	case "wall":
		// A wall closing in ahead with the right side open.
		seq = []*depth.Frame{
			depth.WallFrame(float32(cfg.MinClearDistance*0.5), far, 0.2, 0.6, now),
		}
	case "dropout":
		seq = []*depth.Frame{depth.UniformFrame(far, now), depth.DropoutFrame(now)}
	default:
		seq = []*depth.Frame{depth.UniformFrame(far, now)}
	}

	return &depth.SyntheticSource{Sequence: seq, Loop: true}
}
