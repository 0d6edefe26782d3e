// Package config provides configuration management for go-clearway.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/clearway/go-clearway/pkg/avoidance"
)

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Sensor    SensorConfig     `mapstructure:"sensor"`
	Avoidance avoidance.Config `mapstructure:"avoidance"`
	Route     RouteConfig      `mapstructure:"route"`
	Transport TransportConfig  `mapstructure:"transport"`
	Logging   LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig configures the dashboard HTTP server.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	GracefulTimeout time.Duration `mapstructure:"graceful_timeout"`
}

// SensorConfig configures the depth frame source.
type SensorConfig struct {
	FrameRateHz int `mapstructure:"frame_rate_hz"`
}

// RouteConfig configures route resampling and progress.
type RouteConfig struct {
	SpacingMeters   float64 `mapstructure:"spacing_meters"`
	ToleranceMeters float64 `mapstructure:"tolerance_meters"`
}

// TransportConfig configures the link to the actuator.
type TransportConfig struct {
	Mode       string `mapstructure:"mode"` // "ws" or "serial"
	URL        string `mapstructure:"url"`  // ws mode: ws://host:port
	SerialPort string `mapstructure:"serial_port"`
	BaudRate   int    `mapstructure:"baud_rate"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            9100,
			GracefulTimeout: 5 * time.Second,
		},
		Sensor: SensorConfig{
			FrameRateHz: 30,
		},
		Avoidance: avoidance.DefaultConfig(),
		Route: RouteConfig{
			SpacingMeters:   5.0,
			ToleranceMeters: 1.0,
		},
		Transport: TransportConfig{
			Mode:     "ws",
			URL:      "ws://192.168.4.1:9200",
			BaudRate: 115200,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from file and environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			// A missing file falls back to defaults; a file that exists but
			// does not parse is a hard error, never silently ignored.
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(os.Stderr, "Warning: config file not found at %s, using defaults\n", path)
			} else {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	// Environment variable overrides: CLEARWAY_AVOIDANCE_MINSAFEDISTANCE etc.
	v.SetEnvPrefix("CLEARWAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Bad thresholds are rejected here, not discovered mid-frame.
	if err := cfg.Avoidance.Validate(); err != nil {
		return nil, fmt.Errorf("invalid avoidance config: %w", err)
	}
	if cfg.Transport.Mode != "ws" && cfg.Transport.Mode != "serial" && cfg.Transport.Mode != "none" {
		return nil, fmt.Errorf("invalid transport mode %q", cfg.Transport.Mode)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.graceful_timeout", def.Server.GracefulTimeout)

	v.SetDefault("sensor.frame_rate_hz", def.Sensor.FrameRateHz)

	v.SetDefault("avoidance.maxdepthdistance", def.Avoidance.MaxDepthDistance)
	v.SetDefault("avoidance.mincleardistance", def.Avoidance.MinClearDistance)
	v.SetDefault("avoidance.minsafedistance", def.Avoidance.MinSafeDistance)
	v.SetDefault("avoidance.samplestride", def.Avoidance.SampleStride)
	v.SetDefault("avoidance.marginfraction", def.Avoidance.MarginFraction)
	v.SetDefault("avoidance.frameinterval", def.Avoidance.FrameInterval)
	v.SetDefault("avoidance.sectorcount", def.Avoidance.SectorCount)
	v.SetDefault("avoidance.panecount", def.Avoidance.PaneCount)
	v.SetDefault("avoidance.minsamplepoints", def.Avoidance.MinSamplePoints)
	v.SetDefault("avoidance.minscore", def.Avoidance.MinScore)
	v.SetDefault("avoidance.safetyweight", def.Avoidance.SafetyWeight)
	v.SetDefault("avoidance.clearanceweight", def.Avoidance.ClearanceWeight)
	v.SetDefault("avoidance.depthweight", def.Avoidance.DepthWeight)
	v.SetDefault("avoidance.forwardweight", def.Avoidance.ForwardWeight)
	v.SetDefault("avoidance.basesmoothing", def.Avoidance.BaseSmoothing)
	v.SetDefault("avoidance.minsmoothing", def.Avoidance.MinSmoothing)
	v.SetDefault("avoidance.maxsmoothing", def.Avoidance.MaxSmoothing)
	v.SetDefault("avoidance.hazardsmoothing", def.Avoidance.HazardSmoothing)
	v.SetDefault("avoidance.neartargetdegrees", def.Avoidance.NearTargetDegrees)
	v.SetDefault("avoidance.snaptargetdegrees", def.Avoidance.SnapTargetDegrees)
	v.SetDefault("avoidance.straightbanddegrees", def.Avoidance.StraightBandDegrees)
	v.SetDefault("avoidance.sharpthreshold", def.Avoidance.SharpThreshold)
	v.SetDefault("avoidance.mediumthreshold", def.Avoidance.MediumThreshold)
	v.SetDefault("avoidance.guidanceupdateinterval", def.Avoidance.GuidanceUpdateInterval)
	v.SetDefault("avoidance.angleoffsetdegrees", def.Avoidance.AngleOffsetDegrees)

	v.SetDefault("route.spacing_meters", def.Route.SpacingMeters)
	v.SetDefault("route.tolerance_meters", def.Route.ToleranceMeters)

	v.SetDefault("transport.mode", def.Transport.Mode)
	v.SetDefault("transport.url", def.Transport.URL)
	v.SetDefault("transport.serial_port", def.Transport.SerialPort)
	v.SetDefault("transport.baud_rate", def.Transport.BaudRate)

	v.SetDefault("logging.level", def.Logging.Level)
}
