package pipeline

import (
	"context"
	"fmt"
	"io"

	"polyglotai/internal/record"
	"polyglotai/internal/storage"
)

// JSONLSink writes kept chunks and drops to two JSONL streams.
type JSONLSink struct {
	kept      *record.Writer
	discarded *record.Writer
}

// NewJSONLSink creates a sink over a kept-chunks stream and a
// discarded-chunks stream. discarded may be nil if drops are not wanted.
func NewJSONLSink(kept io.Writer, discarded io.Writer) *JSONLSink {
	s := &JSONLSink{kept: record.NewWriter(kept)}
	if discarded != nil {
		s.discarded = record.NewWriter(discarded)
	}
	return s
}

// WriteChunk writes a kept chunk to the kept stream.
func (s *JSONLSink) WriteChunk(rec *record.ChunkRecord) error {
	return s.kept.Write(rec)
}

// WriteDrop writes a discarded chunk to the discarded stream, if any.
func (s *JSONLSink) WriteDrop(rec *record.DropRecord) error {
	if s.discarded == nil {
		return nil
	}
	return s.discarded.Write(rec)
}

// Flush flushes both streams. Call it once after Run returns.
func (s *JSONLSink) Flush() error {
	if err := s.kept.Flush(); err != nil {
		return fmt.Errorf("failed to flush kept stream: %w", err)
	}
	if s.discarded != nil {
		if err := s.discarded.Flush(); err != nil {
			return fmt.Errorf("failed to flush discarded stream: %w", err)
		}
	}
	return nil
}

// StoreSink persists kept chunks and drops to the audit store under one
// run ID.
type StoreSink struct {
	ctx   context.Context
	store storage.ChunkStore
	runID string
}

// NewStoreSink creates a sink that writes to the audit store. The run
// must already have been inserted via InsertRun.
func NewStoreSink(ctx context.Context, store storage.ChunkStore, runID string) *StoreSink {
	return &StoreSink{ctx: ctx, store: store, runID: runID}
}

// WriteChunk inserts a kept chunk.
func (s *StoreSink) WriteChunk(rec *record.ChunkRecord) error {
	return s.store.InsertChunk(s.ctx, &storage.ChunkRow{
		ChunkID:      rec.ChunkID,
		RunID:        s.runID,
		PackID:       rec.PackID,
		SectionTitle: rec.SectionTitle,
		Page:         rec.Page,
		Language:     rec.Language,
		Content:      rec.Content,
	})
}

// WriteDrop inserts a discarded chunk with its reason.
func (s *StoreSink) WriteDrop(rec *record.DropRecord) error {
	return s.store.InsertDrop(s.ctx, &storage.DropRow{
		ChunkRow: storage.ChunkRow{
			ChunkID:      rec.ChunkID,
			RunID:        s.runID,
			PackID:       rec.PackID,
			SectionTitle: rec.SectionTitle,
			Page:         rec.Page,
			Language:     rec.Language,
			Content:      rec.Content,
		},
		Reason: rec.Reason,
	})
}

// MultiSink fans writes out to several sinks in order.
type MultiSink []Sink

// WriteChunk writes the chunk to every sink.
func (m MultiSink) WriteChunk(rec *record.ChunkRecord) error {
	for _, s := range m {
		if err := s.WriteChunk(rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteDrop writes the drop to every sink.
func (m MultiSink) WriteDrop(rec *record.DropRecord) error {
	for _, s := range m {
		if err := s.WriteDrop(rec); err != nil {
			return err
		}
	}
	return nil
}
