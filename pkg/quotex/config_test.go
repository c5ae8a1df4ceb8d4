package quotex

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Compare.Tolerance != 0.01 {
		t.Errorf("Expected tolerance 0.01, got %v", cfg.Compare.Tolerance)
	}
	if cfg.Compare.MarginRiskThreshold != 10 {
		t.Errorf("Expected risk threshold 10, got %v", cfg.Compare.MarginRiskThreshold)
	}
	if cfg.Pre.InstallationPercent != 0 {
		t.Errorf("Expected installation percent 0, got %v", cfg.Pre.InstallationPercent)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotex.yaml")
	content := "compare:\n  tolerance: 0.05\npre:\n  installation_percent: 0.15\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Compare.Tolerance != 0.05 {
		t.Errorf("Expected tolerance 0.05, got %v", cfg.Compare.Tolerance)
	}
	// Unset values keep their defaults.
	if cfg.Compare.MarginRiskThreshold != 10 {
		t.Errorf("Expected default risk threshold, got %v", cfg.Compare.MarginRiskThreshold)
	}
	if cfg.Pre.InstallationPercent != 0.15 {
		t.Errorf("Expected installation percent 0.15, got %v", cfg.Pre.InstallationPercent)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
	// Defaults survive the failure so callers can still proceed.
	if cfg.Compare.Tolerance != 0.01 {
		t.Errorf("Expected default tolerance, got %v", cfg.Compare.Tolerance)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotex.yaml")
	if err := os.WriteFile(path, []byte("comapre:\n  tolerance: 0.05\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("Expected a misspelled key to be rejected")
	}
}
