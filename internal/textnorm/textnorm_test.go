package textnorm

import (
	"strings"
	"testing"
)

func TestPreclean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "bidi controls removed",
			in:   "‏مرحبا‎ world‬",
			want: "مرحبا world",
		},
		{
			name: "arabic letter mark removed",
			in:   "؜نص",
			want: "نص",
		},
		{
			name: "newlines and tabs kept",
			in:   "line1\nline2\tend",
			want: "line1\nline2 end",
		},
		{
			name: "form feed becomes blank line",
			in:   "page one\fpage two",
			want: "page one\n\npage two",
		},
		{
			name: "space runs collapsed but line structure kept",
			in:   "a   b\n\nc  \t d",
			want: "a b\n\nc d",
		},
		{
			name: "tatweel stripped",
			in:   "الــــكتاب",
			want: "الكتاب",
		},
		{
			name: "presentation form folded",
			in:   "ﻻ", // lam-alef ligature
			want: "لا",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preclean(tt.in); got != tt.want {
				t.Errorf("Preclean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeArabic(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "hamza seated alef variants unified",
			in:   "أحمد إلى آخر",
			want: "احمد الي اخر",
		},
		{
			name: "ya and waw variants unified",
			in:   "مستشفى سؤال شاطئ",
			want: "مستشفي سوال شاطي",
		},
		{
			name: "ta marbuta to ha",
			in:   "مدرسة",
			want: "مدرسه",
		},
		{
			name: "diacritics stripped",
			in:   "الْكِتَابُ",
			want: "الكتاب",
		},
		{
			name: "arabic indic digits converted",
			in:   "الفصل ٣ صفحة ١٢",
			want: "الفصل 3 صفحه 12",
		},
		{
			name: "whitespace collapsed",
			in:   "  كلمة \n كلمة  ",
			want: "كلمه كلمه",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeArabic(tt.in); got != tt.want {
				t.Errorf("NormalizeArabic(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Normalization must be idempotent: applying it twice is the same as
// applying it once, for every language path.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []struct {
		lang string
		text string
	}{
		{LangAR, "الذَّكاءُ الاصطناعيُّ يغيِّر العالمَ ١٢٣"},
		{LangAR, "أسئلة أخلاقيّة‏ حول التقنية"},
		{LangEN, "Artificial   intelligence changes the world"},
		{LangFR, "L'intelligence  artificielle  évolue"},
	}

	for _, in := range inputs {
		once := Normalize(in.text, in.lang)
		twice := Normalize(once, in.lang)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q (%s): %q != %q", in.text, in.lang, once, twice)
		}
	}
}

func TestNormalizeGeneric(t *testing.T) {
	got := NormalizeGeneric("  Chapitre   premier \n l'éthique  ")
	want := "Chapitre premier l'éthique"
	if got != want {
		t.Errorf("NormalizeGeneric() = %q, want %q", got, want)
	}
}

func TestStripArabicDiacritics(t *testing.T) {
	in := "مُقَدِّمَة"
	got := StripArabicDiacritics(in)
	if strings.ContainsAny(got, "َُِّْ") {
		t.Errorf("StripArabicDiacritics(%q) = %q, diacritics remain", in, got)
	}
	// Letter forms must survive untouched.
	if got != "مقدمة" {
		t.Errorf("StripArabicDiacritics(%q) = %q, want %q", in, got, "مقدمة")
	}
}

func TestNormalizeDispatch(t *testing.T) {
	// Arabic path folds letters; generic path must not.
	ar := Normalize("مدرسة", LangAR)
	if ar != "مدرسه" {
		t.Errorf("Normalize(ar) = %q, want %q", ar, "مدرسه")
	}
	en := Normalize("mixed مدرسة text", LangEN)
	if !strings.Contains(en, "مدرسة") {
		t.Errorf("Normalize(en) must not fold Arabic letters, got %q", en)
	}
}
