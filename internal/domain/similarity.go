package domain

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity computes a normalized edit-distance score in [0, 1] between two
// raw names. Both inputs are canonicalized with NormalizeCompanyName first,
// so "Google LLC" and "GOOGLE, Inc" score 1.0. The score is symmetric and
// total; two names whose canonical keys are both empty score 1 by convention.
//
// The score is advisory; it backs "did you mean" suggestions. Duplicate
// gating uses exact canonical-key equality only, which keeps the uniqueness
// guarantee deterministic and race-safe.
func Similarity(a, b string) float64 {
	na := NormalizeCompanyName(a)
	nb := NormalizeCompanyName(b)
	if na == nb {
		return 1
	}

	longer := utf8.RuneCountInString(na)
	if n := utf8.RuneCountInString(nb); n > longer {
		longer = n
	}

	distance := levenshtein.ComputeDistance(na, nb)
	return float64(longer-distance) / float64(longer)
}
