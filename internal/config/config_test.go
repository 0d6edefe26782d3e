package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	def := Default()
	if cfg.Server.Port != def.Server.Port {
		t.Errorf("port = %d, want default %d", cfg.Server.Port, def.Server.Port)
	}
	if cfg.Transport.Mode != "ws" {
		t.Errorf("transport mode = %q, want ws", cfg.Transport.Mode)
	}
	if cfg.Avoidance.MinSafeDistance != def.Avoidance.MinSafeDistance {
		t.Errorf("min safe distance = %v, want default %v",
			cfg.Avoidance.MinSafeDistance, def.Avoidance.MinSafeDistance)
	}
	if cfg.Route.SpacingMeters != 5.0 {
		t.Errorf("route spacing = %v, want 5.0", cfg.Route.SpacingMeters)
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clearway.yaml")
	yaml := `
server:
  port: 8080
transport:
  mode: serial
  serial_port: /dev/ttyUSB0
avoidance:
  minsafedistance: 0.7
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Transport.Mode != "serial" || cfg.Transport.SerialPort != "/dev/ttyUSB0" {
		t.Errorf("transport = %+v, want serial on /dev/ttyUSB0", cfg.Transport)
	}
	if cfg.Avoidance.MinSafeDistance != 0.7 {
		t.Errorf("min safe distance = %v, want 0.7", cfg.Avoidance.MinSafeDistance)
	}
	// Untouched keys keep their defaults.
	if cfg.Sensor.FrameRateHz != 30 {
		t.Errorf("frame rate = %d, want default 30", cfg.Sensor.FrameRateHz)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CLEARWAY_SERVER_PORT", "7000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d, want env override 7000", cfg.Server.Port)
	}
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.Server.Port != Default().Server.Port {
		t.Errorf("port = %d, want default %d", cfg.Server.Port, Default().Server.Port)
	}
}

func TestLoad_RejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clearway.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("no error for unparseable config file")
	}
}

func TestLoad_RejectsBadTransportMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clearway.yaml")
	if err := os.WriteFile(path, []byte("transport:\n  mode: carrier-pigeon\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("no error for unknown transport mode")
	}
}

func TestLoad_RejectsBadThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clearway.yaml")
	yaml := "avoidance:\n  mincleardistance: 9.0\n  maxdepthdistance: 5.0\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("no error for clear distance beyond max depth")
	}
}
