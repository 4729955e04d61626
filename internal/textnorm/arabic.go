package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const tatweel = "ـ" // kashida elongation mark

// arabicDiacritics covers the tashkeel short-vowel signs and related
// combining marks: U+0610..U+061A, U+064B..U+065F, U+0670 (superscript
// alef) and the Quranic annotation range U+06D6..U+06ED.
var arabicDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0610, Hi: 0x061A, Stride: 1},
		{Lo: 0x064B, Hi: 0x065F, Stride: 1},
		{Lo: 0x0670, Hi: 0x0670, Stride: 1},
		{Lo: 0x06D6, Hi: 0x06ED, Stride: 1},
	},
}

// letterFolds unifies orthographic variants that spell the same word:
// hamza-seated alef forms to bare alef, ya variants to plain ya,
// waw-hamza to plain waw, ta-marbuta to ha.
var letterFolds = map[rune]rune{
	'أ': 'ا', // alef with hamza above
	'إ': 'ا', // alef with hamza below
	'آ': 'ا', // alef with madda
	'ى': 'ي', // alef maqsura -> ya
	'ئ': 'ي', // ya with hamza -> ya
	'ؤ': 'و', // waw with hamza -> waw
	'ة': 'ه', // ta marbuta -> ha
}

// NormalizeArabic applies strong normalization for Arabic content:
// NFKC, orthographic letter folding, tatweel removal, diacritic
// stripping, Arabic-Indic to Western digits, and whitespace collapsed
// to single spaces. Diacritic/orthographic variants of the same text
// collapse to one canonical form, which is what content fingerprinting
// relies on.
func NormalizeArabic(s string) string {
	if s == "" {
		return s
	}
	s = norm.NFKC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == 'ـ' || unicode.Is(arabicDiacritics, r) {
			continue
		}
		if folded, ok := letterFolds[r]; ok {
			r = folded
		}
		if r >= '٠' && r <= '٩' {
			r = '0' + (r - '٠')
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// StripArabicDiacritics removes only the tashkeel marks, leaving letter
// forms untouched. Used where diacritics hurt retrieval but the
// original orthography should survive.
func StripArabicDiacritics(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(arabicDiacritics, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ArabicIndicToWestern converts the digits U+0660..U+0669 to 0-9.
func ArabicIndicToWestern(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '٠' && r <= '٩' {
			return '0' + (r - '٠')
		}
		return r
	}, s)
}
