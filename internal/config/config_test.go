// file: internal/config/config_test.go
// version: 2.0.0
// guid: b2c3d4e5-f6a7-8b9c-0d1e-2f3a4b5c6d7e

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

// TestInitConfig tests configuration initialization with defaults
func TestInitConfig(t *testing.T) {
	// Arrange
	viper.Reset()

	// Act
	InitConfig()

	// Assert - Verify matching defaults
	if AppConfig.Backend != "strutil" {
		t.Errorf("Expected backend to be 'strutil', got '%s'", AppConfig.Backend)
	}
	if AppConfig.Method != "full" {
		t.Errorf("Expected method to be 'full', got '%s'", AppConfig.Method)
	}
	if AppConfig.Threshold != 80.0 {
		t.Errorf("Expected threshold to be 80, got %v", AppConfig.Threshold)
	}
	if AppConfig.Pattern != `[^a-z0-9]+` {
		t.Errorf("Expected default pattern, got '%s'", AppConfig.Pattern)
	}
	if !AppConfig.FilenameMode {
		t.Error("Expected filename_mode to be true by default")
	}
	if AppConfig.Platform != "windows" {
		t.Errorf("Expected platform to be 'windows', got '%s'", AppConfig.Platform)
	}
	if !AppConfig.Sort {
		t.Error("Expected sort to be true by default")
	}

	// Verify verification defaults
	if AppConfig.ChecksumType != "sha1" {
		t.Errorf("Expected checksum_type to be 'sha1', got '%s'", AppConfig.ChecksumType)
	}

	// Verify collection defaults
	if len(AppConfig.RomExtensions) == 0 {
		t.Error("Expected a non-empty default ROM extension list")
	}
	if AppConfig.CopyRatePerSec != 0 {
		t.Errorf("Expected copy throttling disabled by default, got %v", AppConfig.CopyRatePerSec)
	}
	if AppConfig.WatchDebounce != 5*time.Second {
		t.Errorf("Expected watch_debounce to be 5s, got %v", AppConfig.WatchDebounce)
	}
}

// TestInitConfigOverrides tests that viper values override defaults
func TestInitConfigOverrides(t *testing.T) {
	viper.Reset()
	viper.Set("backend", "difflib")
	viper.Set("method", "partial")
	viper.Set("threshold", 92.5)
	viper.Set("sort", false)
	viper.Set("workers", 8)
	viper.Set("rom_extensions", []string{".gg", ".sms"})

	InitConfig()

	if AppConfig.Backend != "difflib" {
		t.Errorf("Expected backend 'difflib', got '%s'", AppConfig.Backend)
	}
	if AppConfig.Method != "partial" {
		t.Errorf("Expected method 'partial', got '%s'", AppConfig.Method)
	}
	if AppConfig.Threshold != 92.5 {
		t.Errorf("Expected threshold 92.5, got %v", AppConfig.Threshold)
	}
	if AppConfig.Sort {
		t.Error("Expected sort false")
	}
	if AppConfig.Workers != 8 {
		t.Errorf("Expected 8 workers, got %d", AppConfig.Workers)
	}
	if len(AppConfig.RomExtensions) != 2 || AppConfig.RomExtensions[0] != ".gg" {
		t.Errorf("Expected overridden extensions, got %v", AppConfig.RomExtensions)
	}
}

// TestInitConfigClampsWorkers tests the worker floor
func TestInitConfigClampsWorkers(t *testing.T) {
	viper.Reset()
	viper.Set("workers", -3)

	InitConfig()

	if AppConfig.Workers != 1 {
		t.Errorf("Expected workers clamped to 1, got %d", AppConfig.Workers)
	}
}
