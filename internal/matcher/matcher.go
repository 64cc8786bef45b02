// file: internal/matcher/matcher.go
// version: 2.0.0
// guid: 9e3f6a1b-5c7d-4e2f-8a9b-0c1d2e3f4a5c

// Package matcher reconciles a list of reference names against a list of
// candidate strings (typically filenames). Every base/target pair is scored
// under a normalization rule and each base name is assigned the single best
// target at or above a threshold. The package is pure: it never touches the
// filesystem and never logs.
package matcher

import (
	"context"
	"sort"
	"sync"
)

// Options configures one reconciliation run. The zero value is not usable;
// Backend and Method must name recognized variants. A nil Pattern means
// DefaultPattern and an empty Platform means PlatformWindows.
type Options struct {
	Backend   Backend
	Method    Method
	Threshold float64
	Pattern   *Pattern
	// FilenameMode treats targets as filenames: invalid names are skipped
	// and extensions are stripped before normalization.
	FilenameMode bool
	Platform     Platform
}

// Match pairs a base name with the target it was matched to. MatchedName is
// always the verbatim target string, not its normalized form.
type Match struct {
	Name        string `json:"name" yaml:"name"`
	MatchedName string `json:"matched_name" yaml:"matched_name"`
}

// Result partitions the base list: every base name lands in exactly one of
// Matches or Unmatched, in base-list order unless SortByName is applied.
type Result struct {
	Matches   []Match  `json:"matches" yaml:"matches"`
	Unmatched []string `json:"unmatched" yaml:"unmatched"`
}

// SortByName stably re-orders Matches by the original base name, ascending
// and case-sensitive.
func (r *Result) SortByName() {
	sort.SliceStable(r.Matches, func(i, j int) bool {
		return r.Matches[i].Name < r.Matches[j].Name
	})
}

// bestTracker tracks the running best candidate for a single base name.
// The comparison is strict, so the first target reaching the maximal score
// wins ties. A new strict maximum below the threshold raises bestScore
// without displacing an earlier accepted candidate; a new strict maximum at
// or above the threshold replaces it.
type bestTracker struct {
	bestScore float64
	best      string
	matched   bool
}

func (t *bestTracker) observe(score, threshold float64, target string) {
	if score > t.bestScore {
		t.bestScore = score
		if score >= threshold {
			t.best = target
			t.matched = true
		}
	}
}

// Reconcile scores every base/target pair and assigns each base name its best
// target at or above opts.Threshold. Empty input lists are valid and produce
// an empty or fully-unmatched result. The only error condition is an
// unrecognized backend or method, reported before any scoring happens.
func Reconcile(baseList, targetList []string, opts Options) (*Result, error) {
	score, err := newScorer(opts.Backend, opts.Method)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, base := range baseList {
		matched, target := matchOne(base, targetList, opts, score)
		if matched {
			result.Matches = append(result.Matches, Match{Name: base, MatchedName: target})
		} else {
			result.Unmatched = append(result.Unmatched, base)
		}
	}
	return result, nil
}

// matchOne runs the ordered inner loop over targets for one base name.
func matchOne(base string, targetList []string, opts Options, score scoreFunc) (bool, string) {
	normalizedBase := Normalize(base, opts.Pattern)

	var tracker bestTracker
	for _, target := range targetList {
		candidate := target
		if opts.FilenameMode {
			if !IsValidFilename(target, opts.Platform) {
				continue
			}
			candidate = RemoveExtension(target)
		}
		normalizedTarget := Normalize(candidate, opts.Pattern)
		tracker.observe(score(normalizedBase, normalizedTarget), opts.Threshold, target)
	}
	return tracker.matched, tracker.best
}

// ReconcileParallel is Reconcile with the outer loop spread across a bounded
// worker pool. Base names are independent, and the per-base inner loop stays
// ordered, so the output is identical to Reconcile for the same inputs.
func ReconcileParallel(ctx context.Context, baseList, targetList []string, opts Options, workers int) (*Result, error) {
	score, err := newScorer(opts.Backend, opts.Method)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	type outcome struct {
		matched bool
		target  string
	}
	outcomes := make([]outcome, len(baseList))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)
	for i := range baseList {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			matched, target := matchOne(baseList[idx], targetList, opts, score)
			outcomes[idx] = outcome{matched: matched, target: target}
		}(i)
	}
	wg.Wait()

	result := &Result{}
	for i, base := range baseList {
		if outcomes[i].matched {
			result.Matches = append(result.Matches, Match{Name: base, MatchedName: outcomes[i].target})
		} else {
			result.Unmatched = append(result.Unmatched, base)
		}
	}
	return result, nil
}
