// file: internal/matcher/normalize.go
// version: 1.0.0
// guid: 4f1a9c2e-7b3d-4e8f-9a0b-1c2d3e4f5a6b

package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultPatternExpr strips every run of characters outside [a-z0-9].
const DefaultPatternExpr = `[^a-z0-9]+`

// folder performs Unicode case folding independent of any process locale.
var folder = cases.Fold()

// Pattern is a compiled character-retention rule for Normalize. The
// expression describes the characters to strip, so the default keeps only
// lowercase letters and digits.
type Pattern struct {
	expr string
	re   *regexp.Regexp
}

// CompilePattern compiles a strip expression into a Pattern. Invalid
// expressions are rejected here, once, rather than on every Normalize call.
func CompilePattern(expr string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid normalization pattern %q: %w", expr, err)
	}
	return &Pattern{expr: expr, re: re}, nil
}

var defaultPattern = &Pattern{
	expr: DefaultPatternExpr,
	re:   regexp.MustCompile(DefaultPatternExpr),
}

// DefaultPattern returns the shared [a-z0-9]-retaining pattern.
func DefaultPattern() *Pattern {
	return defaultPattern
}

// String returns the strip expression the pattern was compiled from.
func (p *Pattern) String() string {
	return p.expr
}

// Normalize lowercases s using locale-independent case folding and removes
// every character run matched by pattern, preserving the relative order of
// the remaining characters. A nil pattern means DefaultPattern. The result
// may be empty; Normalize is idempotent and never fails.
func Normalize(s string, pattern *Pattern) string {
	if pattern == nil {
		pattern = defaultPattern
	}
	return pattern.re.ReplaceAllString(folder.String(s), "")
}

// RemoveExtension strips the trailing extension from a filename: everything
// after and including the last dot. Names without a dot, and dot-files whose
// only dot is the leading character, are returned unchanged.
func RemoveExtension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return name
	}
	return name[:idx]
}
