// Package sections locates chapter, part and boilerplate-block
// boundaries in cleaned document text and slices it into titled
// section bodies.
//
// Detection is a single stateless pass over the document's lines.
// Chapter headings are matched per language, wrapped multi-line titles
// are stitched back together, and every marker becomes a section
// boundary. Markers do not persist beyond one detection pass.
package sections

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"polyglotai/internal/textnorm"
)

// Kind classifies a detected section marker.
type Kind string

const (
	KindChapter Kind = "chapter"
	KindPart    Kind = "part"
	KindBlock   Kind = "block"
)

// TitleMode selects how section titles and paths are normalized.
type TitleMode string

const (
	// TitleRaw leaves titles untouched apart from trimming.
	TitleRaw TitleMode = "raw"
	// TitleLight applies NFKC and whitespace collapsing, for presentation.
	TitleLight TitleMode = "light"
	// TitleFull applies the language-specific normalizer, for titles that
	// feed into fingerprinting or matching.
	TitleFull TitleMode = "full"
)

// FullDocumentTitle is used when a document yields no section markers.
const FullDocumentTitle = "FULL_DOCUMENT"

// maxTitleLines bounds how many wrapped lines are stitched into one title.
const maxTitleLines = 3

// maxTitleLineLen bounds title absorption: once some title has been
// collected, a line longer than this is treated as body text.
const maxTitleLineLen = 120

// Marker is a detected section boundary.
type Marker struct {
	Pos       int    // byte offset of the heading line in the document
	Kind      Kind   // chapter, part or block
	Heading   string // the matched heading line
	Title     string // stitched multi-line title, or the heading itself
	Number    int    // chapter number when resolvable, else 0
	SkipLines int    // heading/title lines to skip when slicing the body
}

// Section is one titled slice of a document.
type Section struct {
	Title string
	Path  []string
	Body  string
}

var (
	blankSplit  = regexp.MustCompile(`\n\s*\n+`)
	wrappedLine = regexp.MustCompile(`\s*\n\s*`)
	multiSpace  = regexp.MustCompile(`\s{2,}`)
	spaceBefore = regexp.MustCompile(`\s+\)`)
	spaceAfter  = regexp.MustCompile(`\(\s+`)
)

// Detect scans text for chapter, part and boilerplate-block headings
// and returns the markers sorted by position, deduplicated on exact
// position collisions (first wins).
func Detect(text, lang string) []Marker {
	var markers []Marker

	lines := strings.Split(text, "\n")
	offsets := lineOffsets(lines)

	// Fixed single-line blocks: case-insensitive for Latin scripts,
	// exact for Arabic.
	for _, kb := range blocksForLang(lang) {
		pat := `(?m)^\s*` + regexp.QuoteMeta(kb) + `\s*$`
		if lang == "en" || lang == "fr" {
			pat = `(?i)` + pat
		}
		re := regexp.MustCompile(pat)
		for _, loc := range re.FindAllStringIndex(text, -1) {
			markers = append(markers, Marker{
				Pos: loc[0], Kind: KindBlock,
				Heading: kb, Title: kb, SkipLines: 1,
			})
		}
	}

	// Part headings.
	for _, loc := range partPattern(lang).FindAllStringIndex(text, -1) {
		line := strings.TrimSpace(text[loc[0]:loc[1]])
		markers = append(markers, Marker{
			Pos: loc[0], Kind: KindPart,
			Heading: line, Title: line, SkipLines: 1,
		})
	}

	// Chapter headings with wrapped-title stitching.
	chapRe := chapterPattern(lang)
	i := 0
	for i < len(lines) {
		m := chapRe.FindStringSubmatch(lines[i])
		if m == nil {
			i++
			continue
		}

		heading := strings.TrimSpace(lines[i])
		headingPos := offsets[i]
		number := OrdinalNumber(lang, m[1])
		i++

		// Collect up to maxTitleLines following non-blank lines as the
		// wrapped title. Stop at a blank line once something has been
		// collected, at the next chapter heading, or at a long body line.
		var titleLines []string
		for i < len(lines) {
			cur := strings.TrimSpace(lines[i])
			if cur == "" {
				if len(titleLines) > 0 {
					i++
					break
				}
				i++
				continue
			}
			if chapRe.MatchString(lines[i]) {
				break
			}
			if len([]rune(cur)) > maxTitleLineLen && len(titleLines) > 0 {
				break
			}
			titleLines = append(titleLines, lines[i])
			if len(titleLines) >= maxTitleLines {
				i++
				break
			}
			i++
		}

		title := stitchTitle(titleLines)
		if title == "" {
			title = heading
		}
		markers = append(markers, Marker{
			Pos: headingPos, Kind: KindChapter,
			Heading: heading, Title: title, Number: number,
			SkipLines: 1 + len(titleLines),
		})
	}

	sort.SliceStable(markers, func(a, b int) bool { return markers[a].Pos < markers[b].Pos })

	// Dedupe exact position collisions, keeping the first.
	deduped := markers[:0]
	seen := make(map[int]bool, len(markers))
	for _, m := range markers {
		if seen[m.Pos] {
			continue
		}
		seen[m.Pos] = true
		deduped = append(deduped, m)
	}
	return deduped
}

// Slice cuts text into titled sections at the detected marker
// positions. Each section body spans from just after the skipped
// heading/title lines to the next marker or end of document. A
// document with no markers is one section titled FULL_DOCUMENT.
func Slice(text, lang string, mode TitleMode) []Section {
	markers := Detect(text, lang)
	if len(markers) == 0 {
		return []Section{{
			Title: FullDocumentTitle,
			Path:  []string{FullDocumentTitle},
			Body:  text,
		}}
	}

	sections := make([]Section, 0, len(markers))
	for i, m := range markers {
		start := m.Pos
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1].Pos
		}

		chunkLines := strings.Split(text[start:end], "\n")
		skip := m.SkipLines
		if skip > len(chunkLines) {
			skip = len(chunkLines)
		}
		body := strings.TrimSpace(strings.Join(chunkLines[skip:], "\n"))

		baseTitle := m.Title
		if baseTitle == "" {
			baseTitle = m.Heading
		}
		if baseTitle == "" {
			baseTitle = FullDocumentTitle
		}
		heading := m.Heading
		if heading == "" {
			heading = baseTitle
		}

		titleClean := normalizeTitle(baseTitle, lang, mode)
		headingClean := normalizeTitle(heading, lang, mode)

		sec := Section{Title: titleClean, Body: body}
		if m.Kind == KindChapter && titleClean != "" && headingClean != "" {
			sec.Path = []string{headingClean, titleClean}
		} else {
			sec.Path = []string{titleClean}
		}
		sections = append(sections, sec)
	}
	return sections
}

// SplitParagraphs splits a section body on blank lines and joins
// wrapped lines within each paragraph.
func SplitParagraphs(body string) []string {
	var out []string
	for _, p := range blankSplit.Split(body, -1) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, wrappedLine.ReplaceAllString(p, " "))
	}
	return out
}

// OrdinalNumber resolves a chapter ordinal (word, digit or Arabic-Indic
// digit form) to its number. Unmapped ordinal forms return 0; the
// section is still emitted, just without a chapter number.
func OrdinalNumber(lang, s string) int {
	s = multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
	key := s
	if lang == "en" || lang == "fr" {
		key = strings.ToLower(key)
	}
	if n, ok := ordinalWords[lang][key]; ok {
		return n
	}
	if n, err := strconv.Atoi(textnorm.ArabicIndicToWestern(s)); err == nil {
		return n
	}
	if n := romanToInt(strings.ToUpper(s)); n > 0 {
		return n
	}
	return 0
}

// stitchTitle joins wrapped title lines into one line and tidies
// spacing around parentheses.
func stitchTitle(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			parts = append(parts, t)
		}
	}
	title := strings.Join(parts, " ")
	title = spaceBefore.ReplaceAllString(title, ")")
	title = spaceAfter.ReplaceAllString(title, "(")
	return strings.TrimSpace(multiSpace.ReplaceAllString(title, " "))
}

func normalizeTitle(s, lang string, mode TitleMode) string {
	switch mode {
	case TitleRaw:
		return strings.TrimSpace(s)
	case TitleFull:
		return textnorm.Normalize(s, lang)
	default:
		return textnorm.Light(s)
	}
}

func lineOffsets(lines []string) []int {
	offsets := make([]int, len(lines))
	pos := 0
	for i, ln := range lines {
		offsets[i] = pos
		pos += len(ln) + 1
	}
	return offsets
}

var romanValues = map[byte]int{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000}

func romanToInt(s string) int {
	total := 0
	for i := 0; i < len(s); i++ {
		v, ok := romanValues[s[i]]
		if !ok {
			return 0
		}
		if i+1 < len(s) && romanValues[s[i+1]] > v {
			total -= v
		} else {
			total += v
		}
	}
	return total
}
