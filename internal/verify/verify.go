// file: internal/verify/verify.go
// version: 1.0.0
// guid: 9c1d3e5f-7a8b-4c9d-4e0f-2a4b6c8d0e2f

// Package verify checks a ROM directory against a DAT manifest by recomputing
// file checksums and comparing them to the manifest's expected values.
package verify

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/jdfalk/rom-organizer/internal/dat"
	"github.com/jdfalk/rom-organizer/internal/fileops"
)

// Status classifies the outcome for a single manifest ROM.
type Status string

const (
	StatusOK       Status = "ok"
	StatusMismatch Status = "mismatch"
	StatusMissing  Status = "missing"
	// StatusSkipped marks ROMs whose manifest entry lacks the requested
	// checksum type.
	StatusSkipped Status = "skipped"
)

// Item is the verification outcome for one ROM entry.
type Item struct {
	Name     string `json:"name" yaml:"name"`
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Actual   string `json:"actual,omitempty" yaml:"actual,omitempty"`
	Status   Status `json:"status" yaml:"status"`
}

// Report aggregates the per-ROM outcomes of a directory verification.
type Report struct {
	ChecksumType fileops.ChecksumType `json:"checksum_type" yaml:"checksum_type"`
	Items        []Item               `json:"items" yaml:"items"`
	OK           int                  `json:"ok" yaml:"ok"`
	Mismatched   int                  `json:"mismatched" yaml:"mismatched"`
	Missing      int                  `json:"missing" yaml:"missing"`
	Skipped      int                  `json:"skipped" yaml:"skipped"`
}

// Clean reports whether every verified ROM matched. Skipped entries do not
// count against a clean report.
func (r *Report) Clean() bool {
	return r.Mismatched == 0 && r.Missing == 0
}

// Options controls directory verification.
type Options struct {
	ChecksumType fileops.ChecksumType
	ShowProgress bool
}

// Directory recomputes the checksum of every ROM named in the manifest
// against the files in dir. Missing files and checksum mismatches are
// reported per entry rather than aborting the run.
func Directory(dir string, manifest *dat.Manifest, opts Options) (*Report, error) {
	if opts.ChecksumType == "" {
		opts.ChecksumType = fileops.ChecksumSHA1
	}

	roms := manifest.Roms()
	report := &Report{ChecksumType: opts.ChecksumType}

	var bar *progressbar.ProgressBar
	if opts.ShowProgress {
		bar = progressbar.Default(int64(len(roms)))
	}

	for _, rom := range roms {
		if bar != nil {
			bar.Add(1)
		}
		item := Item{Name: rom.Name, Expected: expectedChecksum(rom, opts.ChecksumType)}

		if item.Expected == "" {
			item.Status = StatusSkipped
			report.Skipped++
			report.Items = append(report.Items, item)
			continue
		}

		actual, err := fileops.Checksum(filepath.Join(dir, rom.Name), opts.ChecksumType)
		if err != nil {
			item.Status = StatusMissing
			report.Missing++
			report.Items = append(report.Items, item)
			continue
		}
		item.Actual = actual

		// DAT files carry checksums in mixed case.
		if strings.EqualFold(actual, item.Expected) {
			item.Status = StatusOK
			report.OK++
		} else {
			item.Status = StatusMismatch
			report.Mismatched++
		}
		report.Items = append(report.Items, item)
	}
	return report, nil
}

// VerifyFile checks a single file against an expected checksum string.
func VerifyFile(path, expected string, typ fileops.ChecksumType) (bool, error) {
	actual, err := fileops.Checksum(path, typ)
	if err != nil {
		return false, fmt.Errorf("failed to checksum %s: %w", path, err)
	}
	return strings.EqualFold(actual, expected), nil
}

func expectedChecksum(rom dat.Rom, typ fileops.ChecksumType) string {
	switch typ {
	case fileops.ChecksumCRC:
		return rom.CRC
	case fileops.ChecksumMD5:
		return rom.MD5
	case fileops.ChecksumSHA1:
		return rom.SHA1
	}
	return ""
}
