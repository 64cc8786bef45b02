// file: internal/fileops/list.go
// version: 1.0.0
// guid: 2c4d6e8f-0a1b-4c3d-9e5f-7a9b1c3d5e7f

package fileops

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ListFormat selects the output format for WriteFileList.
type ListFormat string

const (
	FormatTXT ListFormat = "txt"
	FormatCSV ListFormat = "csv"
)

// ListFiles returns the files under source in lexical order, skipping hidden
// files. With recursive set, paths are relative to source and include
// subdirectory entries; otherwise only plain files directly in source are
// listed by name.
func ListFiles(source string, recursive bool) ([]string, error) {
	if _, err := os.Stat(source); err != nil {
		return nil, fmt.Errorf("source directory %s: %w", source, err)
	}

	var paths []string
	if recursive {
		err := filepath.WalkDir(source, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
				return nil
			}
			rel, err := filepath.Rel(source, path)
			if err != nil {
				return err
			}
			paths = append(paths, rel)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return paths, nil
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		paths = append(paths, entry.Name())
	}
	return paths, nil
}

// WriteFileList writes paths to filename in the requested format. The CSV
// variant uses a pipe delimiter so filenames containing commas survive
// round-tripping.
func WriteFileList(paths []string, filename string, format ListFormat) error {
	switch format {
	case FormatTXT:
		var b strings.Builder
		for _, p := range paths {
			b.WriteString(p)
			b.WriteByte('\n')
		}
		return os.WriteFile(filename, []byte(b.String()), 0644)
	case FormatCSV:
		f, err := os.Create(filename)
		if err != nil {
			return err
		}
		defer f.Close()

		w := csv.NewWriter(f)
		w.Comma = '|'
		for _, p := range paths {
			if err := w.Write([]string{p}); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	default:
		return fmt.Errorf("unsupported list format %q (choose txt or csv)", format)
	}
}
