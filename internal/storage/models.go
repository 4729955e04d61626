package storage

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Run identifies one pipeline run in the audit database.
type Run struct {
	ID        string // UUID
	StartedAt string // RFC3339
	Options   string // JSON-encoded pipeline options
}

// ChunkRow is one kept chunk persisted for auditing and indexing.
type ChunkRow struct {
	ChunkID      string
	RunID        string
	PackID       string
	SectionTitle string
	Page         int
	Language     string
	Content      string
}

// DropRow is one discarded chunk with its drop reason.
type DropRow struct {
	ChunkRow
	Reason string
}
