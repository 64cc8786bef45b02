// file: internal/report/report.go
// version: 1.0.0
// guid: 3a5b7c9d-1e2f-4a3b-8c4d-6e8f0a2b4c6d

// Package report persists reconciliation results as the plain-text files the
// organizer's tooling consumes, plus a combined YAML report, and reads the
// newline-delimited name lists that feed a run.
package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jdfalk/rom-organizer/internal/matcher"
)

// Default filenames written by WriteTextFiles.
const (
	MatchedFile     = "output_matched.txt"
	MatchedListFile = "matched_list.txt"
	UnmatchedFile   = "output_unmatched.txt"
)

// ReadLines reads a newline-delimited list file, dropping empty lines.
// Whitespace inside lines is preserved verbatim.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open list file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list file: %w", err)
	}
	return lines, nil
}

// WriteTextFiles writes the three plain-text outputs into dir:
// output_matched.txt with "name -> matched" pairs, matched_list.txt with the
// matched filenames alone, and output_unmatched.txt with the leftovers.
func WriteTextFiles(dir string, result *matcher.Result) error {
	matched := make([]string, 0, len(result.Matches))
	list := make([]string, 0, len(result.Matches))
	for _, m := range result.Matches {
		matched = append(matched, fmt.Sprintf("%s -> %s", m.Name, m.MatchedName))
		list = append(list, m.MatchedName)
	}

	if err := writeLines(filepath.Join(dir, MatchedFile), matched); err != nil {
		return err
	}
	if err := writeLines(filepath.Join(dir, MatchedListFile), list); err != nil {
		return err
	}
	return writeLines(filepath.Join(dir, UnmatchedFile), result.Unmatched)
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return w.Flush()
}

// Summary is the machine-readable form of a reconciliation run.
type Summary struct {
	GeneratedAt    time.Time       `yaml:"generated_at"`
	Backend        string          `yaml:"backend"`
	Method         string          `yaml:"method"`
	Threshold      float64         `yaml:"threshold"`
	MatchedCount   int             `yaml:"matched_count"`
	UnmatchedCount int             `yaml:"unmatched_count"`
	Matches        []matcher.Match `yaml:"matches"`
	Unmatched      []string        `yaml:"unmatched"`
}

// NewSummary builds a Summary from a result and the options that produced it.
func NewSummary(result *matcher.Result, opts matcher.Options) *Summary {
	return &Summary{
		GeneratedAt:    time.Now().UTC(),
		Backend:        string(opts.Backend),
		Method:         string(opts.Method),
		Threshold:      opts.Threshold,
		MatchedCount:   len(result.Matches),
		UnmatchedCount: len(result.Unmatched),
		Matches:        result.Matches,
		Unmatched:      result.Unmatched,
	}
}

// WriteYAML writes the summary to path.
func (s *Summary) WriteYAML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// LoadYAML reads a summary previously written by WriteYAML.
func LoadYAML(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var s Summary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &s, nil
}
