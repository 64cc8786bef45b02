// file: internal/matcher/score.go
// version: 1.1.0
// guid: 2b7e4d9a-1c5f-4a8b-b3e6-7d0f2a4c6e8a

package matcher

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/adrg/strutil/metrics"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pmezard/go-difflib/difflib"
)

// Backend identifies which similarity implementation scores a pair of
// normalized strings.
type Backend string

const (
	// BackendStrutil scores with an adrg/strutil Levenshtein configured for
	// insert/delete edits only, giving the classic indel ratio
	// 100 * (1 - distance/(len(a)+len(b))).
	BackendStrutil Backend = "strutil"
	// BackendFuzzysearch scores with lithammer/fuzzysearch's Levenshtein
	// distance normalized by the longer string.
	BackendFuzzysearch Backend = "fuzzysearch"
	// BackendDifflib scores with pmezard/go-difflib's SequenceMatcher ratio.
	BackendDifflib Backend = "difflib"
)

// Method selects whole-string or best-substring scoring.
type Method string

const (
	MethodFull    Method = "full"
	MethodPartial Method = "partial"
)

// Configuration errors, reported before any pair is scored.
var (
	ErrInvalidBackend = errors.New("unknown scoring backend")
	ErrInvalidMethod  = errors.New("unknown match method")
)

// ParseBackend converts a user-supplied backend name.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case BackendStrutil, BackendFuzzysearch, BackendDifflib:
		return Backend(s), nil
	}
	return "", fmt.Errorf("%w: %q (choose strutil, fuzzysearch or difflib)", ErrInvalidBackend, s)
}

// ParseMethod converts a user-supplied method name.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodFull, MethodPartial:
		return Method(s), nil
	}
	return "", fmt.Errorf("%w: %q (choose full or partial)", ErrInvalidMethod, s)
}

// scoreFunc scores two already-normalized strings on a 0-100 scale.
type scoreFunc func(a, b string) float64

// newScorer validates the backend/method pair once and returns the scoring
// function to run over every pair.
func newScorer(backend Backend, method Method) (scoreFunc, error) {
	var full, partial scoreFunc
	switch backend {
	case BackendStrutil:
		lev := metrics.NewLevenshtein()
		// A substitution counts as delete+insert so the distance matches the
		// indel ratio definition.
		lev.ReplaceCost = 2
		full = func(a, b string) float64 { return indelRatio(lev, a, b) }
		partial = partialOf(full)
	case BackendFuzzysearch:
		full = levenshteinRatio
		partial = partialOf(full)
	case BackendDifflib:
		full = difflibRatio
		partial = difflibQuickRatio
	default:
		return nil, fmt.Errorf("%w: %q (choose strutil, fuzzysearch or difflib)", ErrInvalidBackend, backend)
	}

	switch method {
	case MethodFull:
		return full, nil
	case MethodPartial:
		return partial, nil
	default:
		return nil, fmt.Errorf("%w: %q (choose full or partial)", ErrInvalidMethod, method)
	}
}

// Score computes the similarity between two already-normalized strings.
// It performs no cleaning of its own; callers normalize first. The result is
// always in [0,100] and identical strings score 100, including the degenerate
// empty/empty pair.
func Score(backend Backend, method Method, a, b string) (float64, error) {
	score, err := newScorer(backend, method)
	if err != nil {
		return 0, err
	}
	return score(a, b), nil
}

func indelRatio(lev *metrics.Levenshtein, a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	return 100 * (1 - float64(lev.Distance(a, b))/float64(total))
}

func levenshteinRatio(a, b string) float64 {
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return 100
	}
	return 100 * (1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(longest))
}

// partialOf lifts a full-string ratio into a partial ratio: the best score of
// the shorter string against every contiguous same-length window of the
// longer one.
func partialOf(full scoreFunc) scoreFunc {
	return func(a, b string) float64 {
		ra, rb := []rune(a), []rune(b)
		if len(ra) > len(rb) {
			ra, rb = rb, ra
		}
		if len(ra) == 0 {
			if len(rb) == 0 {
				return 100
			}
			return 0
		}
		if len(ra) == len(rb) {
			return full(string(ra), string(rb))
		}
		short := string(ra)
		best := 0.0
		for i := 0; i+len(ra) <= len(rb); i++ {
			s := full(short, string(rb[i:i+len(ra)]))
			if s > best {
				best = s
				if best == 100 {
					break
				}
			}
		}
		return best
	}
}

func difflibRatio(a, b string) float64 {
	m := difflib.NewMatcher(splitChars(a), splitChars(b))
	return m.Ratio() * 100
}

// difflibQuickRatio is the partial variant for the difflib backend: an upper
// bound on Ratio computed from character counts alone, matching Python
// difflib's quick_ratio.
func difflibQuickRatio(a, b string) float64 {
	m := difflib.NewMatcher(splitChars(a), splitChars(b))
	return m.QuickRatio() * 100
}

func splitChars(s string) []string {
	out := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
