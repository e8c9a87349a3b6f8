package app

import (
	"testing"

	"github.com/BLewisDesDev/ADMINify/pkg/reconcile"
)

// TestLoadConfig verifies basic config loading and defaults.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config == nil {
		t.Fatal("LoadConfig() returned nil config")
	}

	if config.Threshold != reconcile.DefaultThreshold {
		t.Errorf("Threshold default = %v, want %v", config.Threshold, reconcile.DefaultThreshold)
	}
	if config.BatchSize != reconcile.DefaultBatchSize {
		t.Errorf("BatchSize default = %v, want %v", config.BatchSize, reconcile.DefaultBatchSize)
	}
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Output: "summary"}

	config.UpdateFromFlags(true, false, true, "json")
	if !config.Verbose || config.Quiet || !config.NoColor {
		t.Error("boolean flags not applied")
	}
	if config.Output != "json" {
		t.Errorf("Output = %q, want json", config.Output)
	}

	// Empty output flag keeps the previous value.
	config.UpdateFromFlags(false, false, false, "")
	if config.Output != "json" {
		t.Errorf("Output = %q, want json after empty flag", config.Output)
	}
}
