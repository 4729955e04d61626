package sections

import "regexp"

// Chapter heading patterns per language. Each matches a standalone
// heading line such as "الفصل الأول", "Chapter IV" or "Chapitre premier",
// with the ordinal part captured. Latin-script patterns are
// case-insensitive; Arabic matching is exact.
var chapterPatterns = map[string]*regexp.Regexp{
	"ar": regexp.MustCompile(`^\s*الفصل\s+(الحادي\s+عشر|الثاني\s+عشر|الأول|الثاني|الثالث|الرابع|الخامس|السادس|السابع|الثامن|التاسع|العاشر|[0-9٠-٩]+)\s*$`),
	"en": regexp.MustCompile(`(?i)^\s*chapter\s+([IVXLCDM]+|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|\d+)\s*$`),
	"fr": regexp.MustCompile(`(?i)^\s*chapitre\s+([IVXLCDM]+|premier|deuxième|troisième|quatrième|cinquième|sixième|septième|huitième|neuvième|dixième|onzième|douzième|\d+)\s*$`),
}

// Part heading patterns, matched against whole lines.
var partPatterns = map[string]*regexp.Regexp{
	"ar": regexp.MustCompile(`(?m)^\s*الجزء\s+.+$`),
	"en": regexp.MustCompile(`(?im)^\s*part\s+(?:[IVXLCDM]+|\d+|one|two|three|four|five|six|seven|eight|nine|ten)\s*$`),
	"fr": regexp.MustCompile(`(?im)^\s*partie\s+(?:[IVXLCDM]+|\d+|première|deuxième|troisième|quatrième|cinquième)\s*$`),
}

// knownBlocks lists fixed front/back-matter headings that appear as
// single lines: table of contents, acknowledgments, glossary and
// similar. Each occurrence becomes a one-line-skip section marker.
var knownBlocks = map[string][]string{
	"ar": {
		"المحتويات", "تمهيد السلسلة", "شكر وتقدير", "مسرد المصطلحات",
		"ملاحظات", "قراءات إضافية", "المراجع",
	},
	"en": {
		"Contents", "Preface", "Acknowledgments", "Acknowledgements",
		"Glossary", "Notes", "Further Reading", "References", "Index",
	},
	"fr": {
		"Table des matières", "Préface", "Remerciements",
		"Glossaire", "Notes", "Lectures complémentaires", "Références", "Index",
	},
}

// Ordinal-word tables for chapter numbering, one through twelve.
var ordinalWords = map[string]map[string]int{
	"ar": {
		"الأول": 1, "الثاني": 2, "الثالث": 3, "الرابع": 4, "الخامس": 5,
		"السادس": 6, "السابع": 7, "الثامن": 8, "التاسع": 9, "العاشر": 10,
		"الحادي عشر": 11, "الثاني عشر": 12,
	},
	"en": {
		"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
		"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
	},
	"fr": {
		"premier": 1, "deuxième": 2, "troisième": 3, "quatrième": 4,
		"cinquième": 5, "sixième": 6, "septième": 7, "huitième": 8,
		"neuvième": 9, "dixième": 10, "onzième": 11, "douzième": 12,
	},
}

func chapterPattern(lang string) *regexp.Regexp {
	if re, ok := chapterPatterns[lang]; ok {
		return re
	}
	return chapterPatterns["en"]
}

func partPattern(lang string) *regexp.Regexp {
	if re, ok := partPatterns[lang]; ok {
		return re
	}
	return partPatterns["en"]
}

func blocksForLang(lang string) []string {
	if blocks, ok := knownBlocks[lang]; ok {
		return blocks
	}
	return knownBlocks["en"]
}
