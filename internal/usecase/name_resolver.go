package usecase

import (
	"github.com/pmezard/go-difflib/difflib"
)

// DefaultCutoff is the minimum similarity ratio for a name to be accepted
const DefaultCutoff = 0.6

// NameResolver finds the known brand name closest to a free-text query using
// the Ratcliff/Obershelp sequence ratio over code points.
type NameResolver struct {
	names  []string
	chars  [][]string
	cutoff float64
}

// NewNameResolver creates a resolver over the given names
func NewNameResolver(names []string, cutoff float64) *NameResolver {
	if cutoff <= 0 || cutoff > 1 {
		cutoff = DefaultCutoff
	}

	chars := make([][]string, len(names))
	for i, n := range names {
		chars[i] = splitChars(n)
	}
	return &NameResolver{names: names, chars: chars, cutoff: cutoff}
}

// Resolve returns the best name whose ratio to query is at least the cutoff.
// Equal ratios go to the lexicographically greatest name.
func (r *NameResolver) Resolve(query string) (string, bool) {
	m := difflib.NewMatcher(nil, splitChars(query))

	var (
		best      string
		bestScore float64
		found     bool
	)
	for i, cand := range r.chars {
		m.SetSeq1(cand)
		// cheap upper bounds first
		if m.RealQuickRatio() < r.cutoff || m.QuickRatio() < r.cutoff {
			continue
		}
		score := m.Ratio()
		if score < r.cutoff {
			continue
		}
		name := r.names[i]
		if !found || score > bestScore || (score == bestScore && name > best) {
			best, bestScore, found = name, score, true
		}
	}
	return best, found
}

// ratio returns the similarity ratio of two strings in [0, 1]
func ratio(a, b string) float64 {
	return difflib.NewMatcher(splitChars(a), splitChars(b)).Ratio()
}

func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
