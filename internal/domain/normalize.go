package domain

import (
	"strings"
	"unicode"
)

// legalSuffixes is the fixed table of trailing legal-entity tokens stripped
// from company names. Keys are lowercase with dots removed, so dotted
// abbreviations ("l.l.c.", "Inc.") match the same entry. Covers common
// English, German, French/Spanish/Italian, and Dutch/Nordic incorporation
// markers plus a few generic organizational tails ("holdings", "group").
// The table is an immutable process-wide constant; it is never mutated
// after init.
var legalSuffixes = map[string]struct{}{
	// English / US
	"llc": {}, "lc": {}, "inc": {}, "incorporated": {}, "corp": {},
	"corporation": {}, "co": {}, "company": {}, "ltd": {}, "limited": {},
	"lp": {}, "llp": {}, "lllp": {}, "pllc": {}, "plc": {}, "pc": {},
	// German
	"gmbh": {}, "mbh": {}, "ag": {}, "kg": {}, "ohg": {}, "ug": {},
	// French / Spanish / Italian
	"sa": {}, "sarl": {}, "sas": {}, "sasu": {}, "sl": {}, "srl": {}, "spa": {},
	// Dutch / Nordic
	"bv": {}, "nv": {}, "vof": {}, "ab": {}, "oy": {}, "aps": {},
	// Commonwealth / Asia-Pacific
	"pty": {}, "pte": {},
	// Generic organizational tails
	"holdings": {}, "holding": {}, "group": {}, "international": {}, "intl": {},
}

// maxNormalizePasses caps the fixpoint iteration of NormalizeCompanyName.
// Each pass either shortens the string or leaves it unchanged, so the cap
// is never reached on real input; it keeps the function provably total.
const maxNormalizePasses = 8

// NormalizeName returns the canonical key for a reference entity name.
// Companies get full legal-suffix stripping; Sources get the lighter
// lowercase + whitespace-collapse transform only, since organizational-form
// markers carry no signal for job boards and recruiters.
func NormalizeName(kind EntityKind, raw string) string {
	if kind == EntityKindCompany {
		return NormalizeCompanyName(raw)
	}
	return NormalizeText(raw)
}

// NormalizeCompanyName maps a raw company name to its canonical key:
//
//  1. lowercase, trim surrounding whitespace
//  2. strip trailing punctuation (commas, periods, semicolons)
//  3. strip trailing legal-entity suffix tokens until stable
//     (handles compound tails such as "Corp. Ltd.")
//  4. drop every rune that is not a letter, digit, or whitespace
//  5. collapse internal whitespace runs to a single space
//
// The pipeline runs to a fixpoint so the function is idempotent even when
// step 4 exposes a new trailing suffix (e.g. "Acme (Inc)" -> "acme inc"
// -> "acme"). Total over arbitrary input; an empty result is a valid key
// and it is the caller's job to reject it as an entity name.
func NormalizeCompanyName(raw string) string {
	s := normalizeCompanyOnce(raw)
	for i := 0; i < maxNormalizePasses; i++ {
		next := normalizeCompanyOnce(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// NormalizeText prepares free text for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses internal whitespace runs into a single space
//
// Punctuation, diacritics, and suffix tokens are preserved. This is the
// canonicalization rule for Sources.
func NormalizeText(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

func normalizeCompanyOnce(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = trimTrailingPunct(s)

	for {
		rest, ok := stripTrailingSuffix(s)
		if !ok {
			break
		}
		s = trimTrailingPunct(rest)
	}

	s = stripSymbols(s)
	return strings.Join(strings.Fields(s), " ")
}

// trimTrailingPunct removes trailing punctuation and whitespace.
func trimTrailingPunct(s string) string {
	return strings.TrimRight(s, " \t.,;")
}

// stripTrailingSuffix removes the last whitespace-delimited token when it is
// a known legal-entity suffix (dots ignored, so "l.l.c." matches "llc").
// The token-boundary check keeps names like "Tipico" or "Costco" intact.
func stripTrailingSuffix(s string) (string, bool) {
	if s == "" {
		return s, false
	}

	idx := strings.LastIndexFunc(s, unicode.IsSpace)
	token := s[idx+1:]
	key := strings.ReplaceAll(token, ".", "")
	if _, ok := legalSuffixes[key]; !ok {
		return s, false
	}

	if idx < 0 {
		return "", true
	}
	return strings.TrimSpace(s[:idx]), true
}

// stripSymbols drops every rune that is not a letter, digit, or whitespace.
func stripSymbols(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
