// Package record defines the structured rows that cross the pipeline
// boundary: source rows going in, chunk records and drop records coming
// out, serialized one JSON object per line.
package record

import (
	"errors"
	"strings"

	"polyglotai/internal/textnorm"
)

// ErrMissingContent marks a row that cannot be chunked. Such rows are
// skipped and counted, never fatal.
var ErrMissingContent = errors.New("row has no content")

// SourceRow is one logical document unit prior to chunking.
type SourceRow struct {
	PackID       string   `json:"pack_id"`
	Language     string   `json:"language"`
	Book         string   `json:"book,omitempty"`
	SectionTitle string   `json:"section_title"`
	SectionPath  []string `json:"section_path,omitempty"`
	Page         int      `json:"page"`
	Content      string   `json:"content"`
}

// Validate rejects rows that are unusable at the boundary. Language is
// resolved (or inferred from the pack ID prefix convention) as a side
// effect, so callers see a populated Language afterwards.
func (r *SourceRow) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return ErrMissingContent
	}
	if !KnownLanguage(r.Language) {
		r.Language = InferLanguage(r.PackID, "")
	}
	if r.Page < 0 {
		r.Page = 0
	}
	return nil
}

// ChunkRecord is the final emitted unit, the only entity that crosses
// the core/collaborator boundary.
type ChunkRecord struct {
	ChunkID      string `json:"chunk_id"`
	PackID       string `json:"pack_id"`
	SectionTitle string `json:"section_title"`
	Page         int    `json:"page"`
	Language     string `json:"language"`
	Content      string `json:"content"`
}

// DropRecord carries a dropped chunk to the discarded stream for
// auditability.
type DropRecord struct {
	ChunkRecord
	Reason string `json:"drop_reason"`
}

// KnownLanguage reports whether lang is one of the supported corpus
// languages.
func KnownLanguage(lang string) bool {
	switch lang {
	case textnorm.LangEN, textnorm.LangFR, textnorm.LangAR:
		return true
	}
	return false
}

// InferLanguage resolves a language from the identifier prefix
// convention: IDs beginning with "AR-" or "AR_" (case-sensitive) are
// Arabic packs; lowercase "english_pack_" and "french_pack_" prefixes
// denote English and French.
func InferLanguage(packID, chunkID string) string {
	for _, id := range []string{chunkID, packID} {
		if id == "" {
			continue
		}
		if strings.HasPrefix(id, "AR-") || strings.HasPrefix(id, "AR_") {
			return textnorm.LangAR
		}
		lower := strings.ToLower(id)
		if strings.HasPrefix(lower, "french_pack_") {
			return textnorm.LangFR
		}
		if strings.HasPrefix(lower, "english_pack_") {
			return textnorm.LangEN
		}
	}
	return textnorm.LangUnknown
}
