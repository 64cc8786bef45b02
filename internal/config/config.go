// file: internal/config/config.go
// version: 2.0.0
// guid: 7b8c9d0e-1f2a-3b4c-5d6e-7f8a9b0c1d2e

package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Matching
	Backend      string
	Method       string
	Threshold    float64
	Pattern      string
	FilenameMode bool
	Platform     string // "windows" or "unix" filename rules
	Sort         bool
	Workers      int

	// Storage and verification
	DatabasePath string
	ChecksumType string // "crc", "md5" or "sha1"

	// Collection handling
	RomExtensions []string
	CopyRatePerSec float64 // 0 disables copy throttling
	WatchDebounce  time.Duration
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	// Set defaults
	viper.SetDefault("backend", "strutil")
	viper.SetDefault("method", "full")
	viper.SetDefault("threshold", 80.0)
	viper.SetDefault("pattern", `[^a-z0-9]+`)
	viper.SetDefault("filename_mode", true)
	viper.SetDefault("platform", "windows")
	viper.SetDefault("sort", true)
	viper.SetDefault("workers", 1)
	viper.SetDefault("checksum_type", "sha1")
	viper.SetDefault("copy_rate_per_sec", 0.0)
	viper.SetDefault("watch_debounce", "5s")

	AppConfig = Config{
		Backend:      viper.GetString("backend"),
		Method:       viper.GetString("method"),
		Threshold:    viper.GetFloat64("threshold"),
		Pattern:      viper.GetString("pattern"),
		FilenameMode: viper.GetBool("filename_mode"),
		Platform:     viper.GetString("platform"),
		Sort:         viper.GetBool("sort"),
		Workers:      viper.GetInt("workers"),
		DatabasePath: viper.GetString("database_path"),
		ChecksumType: viper.GetString("checksum_type"),
		RomExtensions: []string{
			".nes", ".snes", ".sfc", ".gb", ".gbc", ".gba", ".gg", ".md", ".bin", ".zip",
		},
		CopyRatePerSec: viper.GetFloat64("copy_rate_per_sec"),
		WatchDebounce:  viper.GetDuration("watch_debounce"),
	}

	if exts := viper.GetStringSlice("rom_extensions"); len(exts) > 0 {
		AppConfig.RomExtensions = exts
	}
	if AppConfig.Workers < 1 {
		AppConfig.Workers = 1
	}
}
