// Package hygiene applies rule-based quality filtering to candidate
// chunks. Rules run in a fixed priority order and the first matching
// rule wins, so every dropped chunk reports exactly one reason.
package hygiene

import (
	"regexp"
	"strings"
	"unicode"
)

// Reason identifies which rule dropped a chunk.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonTooShort         Reason = "too_short"
	ReasonBoilerplateTitle Reason = "boilerplate_title"
	ReasonDigitsPunctHeavy Reason = "digits_punct_heavy"
	ReasonArMovieSubs      Reason = "ar_movie_subs"
	// ReasonDedupeExact is reported by the pipeline's dedup stage, not by
	// Evaluate; it lives here so all drop reasons share one type.
	ReasonDedupeExact Reason = "dedupe_exact"
)

// Decision is the outcome of evaluating one chunk.
type Decision struct {
	Dropped bool
	Reason  Reason
}

// Thresholds holds the tunable limits for the drop rules. The ratio
// cutoffs were calibrated on one observed corpus and are likely to need
// recalibration for new ones, which is why they are configuration
// rather than constants.
type Thresholds struct {
	// MinChars is the per-language minimum content length in characters.
	MinChars map[string]int
	// MinWords is the minimum whitespace-delimited word count.
	MinWords int
	// DigitsPunctDrop drops chunks whose non-letter character ratio
	// exceeds it. Targets tables, running headers and OCR artifacts.
	DigitsPunctDrop float64
	// ArMovieDigitsDrop is the digit-ratio cutoff for the Arabic
	// subtitle-leak heuristic.
	ArMovieDigitsDrop float64
}

// DefaultThresholds returns the tuned defaults. Arabic gets a higher
// character floor because normalization strips diacritics and inflates
// apparent brevity.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinChars:          map[string]int{"en": 50, "fr": 50, "ar": 60},
		MinWords:          6,
		DigitsPunctDrop:   0.60,
		ArMovieDigitsDrop: 0.30,
	}
}

// minCharsFor falls back to 50 for languages without an explicit floor.
func (t Thresholds) minCharsFor(lang string) int {
	if n, ok := t.MinChars[lang]; ok {
		return n
	}
	return 50
}

// Boilerplate section-title patterns per language: front/back-matter
// keywords whose sections are not worth retrieving.
var titlePatterns = map[string]*regexp.Regexp{
	"en": regexp.MustCompile(`(?i)(cover|about this text|acknowledg|table of contents|index|bibliograph|copyright|license)`),
	"fr": regexp.MustCompile(`(?i)(couverture|à propos|remerciements|sommaire|table des matières|bibliograph|droits|licen[cs]e)`),
	"ar": regexp.MustCompile(`(الفهرس|شكر(?:\s*وتقدير)?|المحتويات|الخاتمة|المراجع|حقوق|ترخيص)`),
}

// arMovieTerms matches subtitle-leak vocabulary observed in one Arabic
// pack (a Terminator 2 subtitle file bled into the OCR output).
var arMovieTerms = regexp.MustCompile(`(?i)(ترميناتور|تي\s*٢|تي2|T2|ترميناتور\s*2)`)

// Evaluate runs the drop rules against one candidate chunk in priority
// order: too_short, boilerplate_title, digits_punct_heavy,
// ar_movie_subs. The first matching rule short-circuits the rest.
func Evaluate(sectionTitle, content, lang string, t Thresholds) Decision {
	if tooShort(content, lang, t) {
		return Decision{Dropped: true, Reason: ReasonTooShort}
	}
	if isBoilerplateTitle(sectionTitle, lang) {
		return Decision{Dropped: true, Reason: ReasonBoilerplateTitle}
	}
	r := charRatios(content)
	if r.nonLetter > t.DigitsPunctDrop {
		return Decision{Dropped: true, Reason: ReasonDigitsPunctHeavy}
	}
	if lang == "ar" && arMovieTerms.MatchString(content) && r.digit > t.ArMovieDigitsDrop {
		return Decision{Dropped: true, Reason: ReasonArMovieSubs}
	}
	return Decision{}
}

func tooShort(content, lang string, t Thresholds) bool {
	content = strings.TrimSpace(content)
	if content == "" {
		return true
	}
	if len([]rune(content)) < t.minCharsFor(lang) {
		return true
	}
	return len(strings.Fields(content)) < t.MinWords
}

func isBoilerplateTitle(title, lang string) bool {
	if title == "" {
		return false
	}
	pat, ok := titlePatterns[lang]
	if !ok {
		return false
	}
	return pat.MatchString(title)
}

type ratios struct {
	letter    float64
	digit     float64
	nonLetter float64
}

// charRatios computes letter, digit and non-letter character ratios
// over the rune count of the text.
func charRatios(s string) ratios {
	runes := []rune(s)
	if len(runes) == 0 {
		return ratios{nonLetter: 1.0}
	}
	var letters, digits int
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	total := float64(len(runes))
	letterRatio := float64(letters) / total
	return ratios{
		letter:    letterRatio,
		digit:     float64(digits) / total,
		nonLetter: 1.0 - letterRatio,
	}
}
