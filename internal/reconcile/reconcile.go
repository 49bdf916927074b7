// Package reconcile maps order-side name keys onto tracker-side name keys.
// The two sources are authored independently, so the mapping is a
// best-effort heuristic: usually right without manual curation, with the
// hard cases handled by a caller-supplied override table.
package reconcile

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// DefaultThreshold is the minimum similarity ratio accepted by the fuzzy
// fallback pass.
const DefaultThreshold = 0.6

var simParams = levenshtein.NewParams()

// Options carries the injectable matching policy.
type Options struct {
	// Overrides maps an order-side key directly to a tracker-side key.
	// Consulted after exact matching and before the heuristic passes.
	Overrides map[string]string
	// Threshold for the fuzzy pass; DefaultThreshold when zero.
	Threshold float64
}

// Result is the reconciliation outcome. Unmatched lists order-side keys
// that no pass could place, sorted, so callers can surface the data loss
// instead of discovering it by omission.
type Result struct {
	Map       map[string]string
	Unmatched []string
}

// BuildNameMap resolves each order key against the tracker keys, first
// match wins: exact equality, override table, substring containment in
// either direction, then best fuzzy similarity at or above the threshold.
// Candidates are scanned in lexicographic order and fuzzy ties resolve to
// the smallest key, so the outcome is reproducible.
func BuildNameMap(orderKeys, trackerKeys []string, opts Options) Result {
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	trackerSet := make(map[string]struct{}, len(trackerKeys))
	for _, k := range trackerKeys {
		trackerSet[k] = struct{}{}
	}
	candidates := make([]string, 0, len(trackerSet))
	for k := range trackerSet {
		candidates = append(candidates, k)
	}
	sort.Strings(candidates)

	result := Result{Map: make(map[string]string)}
	for _, key := range uniqueSorted(orderKeys) {
		if target, ok := resolve(key, trackerSet, candidates, opts.Overrides, threshold); ok {
			result.Map[key] = target
		} else {
			result.Unmatched = append(result.Unmatched, key)
		}
	}

	return result
}

func resolve(key string, trackerSet map[string]struct{}, candidates []string, overrides map[string]string, threshold float64) (string, bool) {
	if _, ok := trackerSet[key]; ok {
		return key, true
	}

	if target, ok := overrides[key]; ok {
		if _, exists := trackerSet[target]; exists {
			return target, true
		}
	}

	for _, c := range candidates {
		if strings.Contains(c, key) || strings.Contains(key, c) {
			return c, true
		}
	}

	best, bestScore := "", 0.0
	for _, c := range candidates {
		if score := levenshtein.Similarity(key, c, simParams); score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore >= threshold {
		return best, true
	}

	return "", false
}

func uniqueSorted(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
