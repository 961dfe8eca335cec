package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"HOST", "PORT", "REQUEST_TIMEOUT", "IMAGE_FETCH_TIMEOUT", "MAX_REQUEST_BODY_SIZE",
		"MAX_IMAGE_PIXELS", "SAMPLE_FRACTION", "SAMPLING_STRATEGY", "EXTRACT_PALETTE",
		"PALETTE_SIZE", "MAX_WORKERS", "AZURE_STORAGE_ACCOUNT", "AZURE_STORAGE_KEY",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Expected defaults to load, got %v", err)
	}
	if cfg.ServerAddress() != "0.0.0.0:8080" {
		t.Errorf("Unexpected address %q", cfg.ServerAddress())
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("Unexpected request timeout %s", cfg.RequestTimeout)
	}
	if cfg.SampleFraction != 0.05 {
		t.Errorf("Expected default fraction 0.05, got %g", cfg.SampleFraction)
	}
	if cfg.SamplingStrategy != "center" {
		t.Errorf("Expected center strategy, got %q", cfg.SamplingStrategy)
	}
	if cfg.PaletteSize != 3 || cfg.ExtractPalette {
		t.Errorf("Unexpected palette defaults: size=%d extract=%v", cfg.PaletteSize, cfg.ExtractPalette)
	}
	if cfg.AzureEnabled() {
		t.Error("Expected Azure to be disabled without credentials")
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SAMPLE_FRACTION", "0.1")
	t.Setenv("SAMPLING_STRATEGY", "WRIST")
	t.Setenv("EXTRACT_PALETTE", "true")
	t.Setenv("PALETTE_SIZE", "5")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.SampleFraction != 0.1 || cfg.SamplingStrategy != "wrist" {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if !cfg.ExtractPalette || cfg.PaletteSize != 5 {
		t.Errorf("Palette overrides not applied: %+v", cfg)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %s", cfg.RequestTimeout)
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		contains string
	}{
		{"port not numeric", "PORT", "http", "invalid PORT"},
		{"port out of range", "PORT", "70000", "invalid PORT"},
		{"fraction too large", "SAMPLE_FRACTION", "0.9", "SAMPLE_FRACTION"},
		{"fraction negative", "SAMPLE_FRACTION", "-0.1", "SAMPLE_FRACTION"},
		{"fraction NaN", "SAMPLE_FRACTION", "NaN", "SAMPLE_FRACTION"},
		{"unknown strategy", "SAMPLING_STRATEGY", "edges", "SAMPLING_STRATEGY"},
		{"palette too large", "PALETTE_SIZE", "12", "PALETTE_SIZE"},
		{"azure half configured", "AZURE_STORAGE_ACCOUNT", "acct", "AZURE_STORAGE_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AZURE_STORAGE_KEY", "")
			t.Setenv(tt.key, tt.value)
			_, err := LoadFromEnv()
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Expected error containing %q, got %q", tt.contains, err.Error())
			}
		})
	}
}
