// Package textnorm provides language-aware text normalization for
// multilingual corpus preparation.
//
// Normalization must be applied identically at indexing time and at
// query time: if stored text is normalized but queries are not, surface
// forms diverge and retrieval recall degrades.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Language codes used throughout the pipeline.
const (
	LangEN      = "en"
	LangFR      = "fr"
	LangAR      = "ar"
	LangUnknown = "unknown"
)

var spaceTabRun = regexp.MustCompile(`[ \t]+`)

// Preclean prepares raw extracted text for section detection. It folds
// Unicode presentation forms (NFKC), removes bidi/format control
// characters, strips the Arabic tatweel, collapses space/tab runs, and
// converts form-feed page breaks into blank lines. Line structure is
// preserved so that line-based heading detection still works.
func Preclean(s string) string {
	if s == "" {
		return s
	}
	s = norm.NFKC.String(s)
	s = stripFormatControls(s)
	s = strings.ReplaceAll(s, tatweel, "")
	s = strings.ReplaceAll(s, "\f", "\n\n")
	s = spaceTabRun.ReplaceAllString(s, " ")
	return s
}

// Normalize applies full content normalization for the given language:
// strong Arabic normalization for "ar", NFKC plus whitespace collapsing
// for everything else. The result is idempotent.
func Normalize(s, lang string) string {
	if s == "" {
		return s
	}
	if lang == LangAR {
		return NormalizeArabic(s)
	}
	return NormalizeGeneric(s)
}

// NormalizeGeneric applies gentle normalization for Latin-script text:
// NFKC, whitespace collapsed to single spaces, trimmed.
func NormalizeGeneric(s string) string {
	if s == "" {
		return s
	}
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

// Light normalizes titles and section paths for presentation: NFKC plus
// whitespace collapsing, no script-specific folding.
func Light(s string) string {
	return NormalizeGeneric(s)
}

// stripFormatControls removes all Unicode format characters (category
// Cf), which covers the bidi controls U+200E, U+200F, U+202A..U+202E,
// U+2066..U+2069 and U+061C. Newlines, carriage returns and tabs are
// always kept.
func stripFormatControls(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if unicode.Is(unicode.Cf, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
