package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("expected default http port 8080, got %q", cfg.HTTPPort)
	}
	if cfg.MQTTClientID != "fleet-server" {
		t.Errorf("expected default client id, got %q", cfg.MQTTClientID)
	}
	if cfg.StreamBuffer != 16 {
		t.Errorf("expected default stream buffer 16, got %d", cfg.StreamBuffer)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STREAM_BUFFER", "64")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPPort != "9090" {
		t.Errorf("expected env override 9090, got %q", cfg.HTTPPort)
	}
	if cfg.StreamBuffer != 64 {
		t.Errorf("expected env override 64, got %d", cfg.StreamBuffer)
	}
}
