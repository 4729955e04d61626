package sections

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// MarkdownSlicer slices markdown documents into titled sections using
// goldmark AST parsing. It serves packs delivered as markdown instead
// of pdftotext output: every heading starts a new section and the
// heading hierarchy becomes the section path.
type MarkdownSlicer struct {
	parser goldmark.Markdown
}

// NewMarkdownSlicer creates a markdown slicer with table support.
func NewMarkdownSlicer() *MarkdownSlicer {
	return &MarkdownSlicer{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// Slice parses markdown content and returns one Section per heading,
// with the heading stack as the section path. Content before the first
// heading becomes a FULL_DOCUMENT-titled section.
func (s *MarkdownSlicer) Slice(content []byte) []Section {
	if len(content) == 0 {
		return nil
	}

	doc := s.parser.Parser().Parse(text.NewReader(content))

	var sections []Section
	var body strings.Builder
	stack := []string{}
	title := FullDocumentTitle

	flush := func() {
		b := strings.TrimSpace(body.String())
		if b == "" {
			body.Reset()
			return
		}
		path := make([]string, len(stack))
		copy(path, stack)
		if len(path) == 0 {
			path = []string{title}
		}
		sections = append(sections, Section{Title: title, Path: path, Body: b})
		body.Reset()
	}

	levels := []int{}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			flush()
			// Pop headings of equal or higher level off the stack.
			for len(levels) > 0 && levels[len(levels)-1] >= node.Level {
				levels = levels[:len(levels)-1]
				stack = stack[:len(stack)-1]
			}
			headingText := nodeText(node, content)
			levels = append(levels, node.Level)
			stack = append(stack, headingText)
			title = headingText
			return ast.WalkSkipChildren, nil

		case *ast.Text:
			body.Write(node.Segment.Value(content))

		case *ast.String:
			body.Write(node.Value)

		case *ast.CodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				body.Write(seg.Value(content))
			}
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				body.Write(seg.Value(content))
			}
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph, *ast.List, *ast.ListItem:
			if body.Len() > 0 && !strings.HasSuffix(body.String(), "\n") {
				body.WriteString("\n")
			}
		}
		return ast.WalkContinue, nil
	})

	flush()
	return sections
}

// nodeText extracts the plain text of a node and its children.
func nodeText(n ast.Node, content []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(content))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
