// Package chunker splits section text into overlapping fixed-size
// windows. Splitting is deterministic: the same input and parameters
// always produce identical chunk boundaries.
package chunker

import (
	"fmt"
	"strings"
)

// Params holds window sizing for chunking. Size and Overlap are
// counted in whitespace-delimited words for Words and in runes for
// Chars.
type Params struct {
	Size    int
	Overlap int
}

// Validate reports degenerate parameters. These are configuration
// errors and must be surfaced before any processing begins.
func (p Params) Validate() error {
	if p.Size <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", p.Size)
	}
	if p.Overlap < 0 {
		return fmt.Errorf("overlap must be non-negative, got %d", p.Overlap)
	}
	if p.Overlap >= p.Size {
		return fmt.Errorf("overlap %d must be smaller than chunk size %d", p.Overlap, p.Size)
	}
	return nil
}

// step is clamped to at least 1 so the loop always advances.
func (p Params) step() int {
	step := p.Size - p.Overlap
	if step < 1 {
		step = 1
	}
	return step
}

// Words splits text into whitespace-delimited tokens and returns
// windows of p.Size tokens, each starting p.Size-p.Overlap tokens after
// the previous one. Every window after the first overlaps its
// predecessor by exactly p.Overlap tokens; the final window may be
// shorter. The union of windows covers every token.
func Words(text string, p Params) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	step := p.step()
	for start := 0; start < len(words); start += step {
		end := start + p.Size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}

// Chars is the character-window variant for simple corpora that skip
// section detection. Windows are counted in runes so multi-byte
// scripts split at character boundaries.
func Chars(text string, p Params) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	var chunks []string
	step := p.step()
	for start := 0; start < len(runes); start += step {
		end := start + p.Size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
