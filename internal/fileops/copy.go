// file: internal/fileops/copy.go
// version: 1.0.0
// guid: 6a8b0c2d-4e5f-4a6b-1c3d-0e2f4a6b8c0d

package fileops

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"
)

// CopyOptions configures CopyFromList.
type CopyOptions struct {
	// Extension, when set, restricts copying to filenames with this suffix.
	Extension string
	// RatePerSec throttles copies to this many files per second; 0 disables
	// throttling.
	RatePerSec float64
	// ShowProgress renders a progress bar on stderr.
	ShowProgress bool
}

// CopyFile copies src to dst, creating parent directories, syncing the data
// to disk and preserving the source permissions.
func CopyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	// Sync to ensure data is written to disk
	if err := destFile.Sync(); err != nil {
		return err
	}

	sourceInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, sourceInfo.Mode())
}

// CopyFromList copies each named file from source to destination. Missing
// source files and extension mismatches are reported and skipped rather than
// aborting the batch. Returns the number of files copied.
func CopyFromList(ctx context.Context, filenames []string, source, destination string, opts CopyOptions) (int, error) {
	var limiter *rate.Limiter
	if opts.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSec), 1)
	}

	var bar *progressbar.ProgressBar
	if opts.ShowProgress {
		bar = progressbar.Default(int64(len(filenames)))
	}

	copied := 0
	for _, filename := range filenames {
		if bar != nil {
			bar.Add(1)
		}
		if opts.Extension != "" && !strings.HasSuffix(filename, opts.Extension) {
			fmt.Printf("Skipped %s: does not end with %s\n", filename, opts.Extension)
			continue
		}

		sourceFile := filepath.Join(source, filename)
		destFile := filepath.Join(destination, filename)
		if _, err := os.Stat(sourceFile); err != nil {
			fmt.Printf("Warning: source file does not exist - %s\n", sourceFile)
			continue
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return copied, err
			}
		} else if err := ctx.Err(); err != nil {
			return copied, err
		}

		if err := CopyFile(sourceFile, destFile); err != nil {
			return copied, fmt.Errorf("failed to copy %s: %w", sourceFile, err)
		}
		copied++
	}
	return copied, nil
}
