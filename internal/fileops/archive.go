// file: internal/fileops/archive.go
// version: 1.0.0
// guid: 4e6f8a0b-2c3d-4e5f-0a1b-9c1d3e5f7a9b

package fileops

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractArchives unpacks every ZIP file found directly in source into
// destination. With separateDirs set, each archive is extracted into a
// subdirectory named after it (without the .zip extension). Non-ZIP files
// are skipped. Returns the number of archives extracted.
func ExtractArchives(source, destination string, separateDirs bool) (int, error) {
	entries, err := os.ReadDir(source)
	if err != nil {
		return 0, fmt.Errorf("source directory %s: %w", source, err)
	}
	if err := os.MkdirAll(destination, 0755); err != nil {
		return 0, fmt.Errorf("failed to create destination directory: %w", err)
	}

	extracted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		archivePath := filepath.Join(source, entry.Name())
		reader, err := zip.OpenReader(archivePath)
		if err != nil {
			// Not a ZIP file; leave it alone.
			continue
		}

		extractPath := destination
		if separateDirs {
			name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			extractPath = filepath.Join(destination, name)
			if err := os.MkdirAll(extractPath, 0755); err != nil {
				reader.Close()
				return extracted, fmt.Errorf("failed to create %s: %w", extractPath, err)
			}
		}

		err = extractZip(&reader.Reader, extractPath)
		reader.Close()
		if err != nil {
			return extracted, fmt.Errorf("failed to extract %s: %w", entry.Name(), err)
		}
		extracted++
		fmt.Printf("Extracted '%s' -> %s\n", entry.Name(), extractPath)
	}
	return extracted, nil
}

// extractZip writes every entry of the archive under dest, rejecting entries
// that would escape it.
func extractZip(r *zip.Reader, dest string) error {
	for _, f := range r.File {
		target := filepath.Join(dest, f.Name)
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes destination", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		src, err := f.Open()
		if err != nil {
			return err
		}
		dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
		if err != nil {
			src.Close()
			return err
		}
		_, err = io.Copy(dst, src)
		src.Close()
		dst.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
