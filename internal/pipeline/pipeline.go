// Package pipeline wires normalization, chunking, hygiene filtering,
// fingerprinting and deduplication into one sequential run over input
// rows.
//
// A run processes rows strictly in input order. The dedup set and the
// drop counters are owned by a single Run invocation and never shared,
// which keeps the "first occurrence wins" dedup guarantee intact.
// Parallelizing across documents would require serializing the dedup
// decision behind a stable merge by input index.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"polyglotai/internal/chunker"
	"polyglotai/internal/fingerprint"
	"polyglotai/internal/hygiene"
	"polyglotai/internal/record"
	"polyglotai/internal/textnorm"
)

// Options is the configuration surface of one pipeline run.
type Options struct {
	// ChunkSize and Overlap are word-window parameters.
	ChunkSize int
	Overlap   int
	// Normalize applies language-specific output normalization to kept
	// chunk text. Fingerprinting always normalizes regardless, so
	// dedup behaves the same either way.
	Normalize bool
	// Dedupe enables fingerprint-based exact-duplicate rejection.
	Dedupe bool
	// PrependTitle prefixes kept chunk text with "[section_title] ".
	PrependTitle bool
	// StrictLanguage skips rows whose language cannot be resolved;
	// permissive runs keep them bucketed under "unknown".
	StrictLanguage bool
	// Thresholds tunes the hygiene rules.
	Thresholds hygiene.Thresholds
}

// DefaultOptions returns the tuned defaults: 350-word windows with a
// 60-word overlap, dedup on, strict language handling.
func DefaultOptions() Options {
	return Options{
		ChunkSize:      350,
		Overlap:        60,
		Dedupe:         true,
		StrictLanguage: true,
		Thresholds:     hygiene.DefaultThresholds(),
	}
}

// Validate surfaces configuration errors before any processing begins.
func (o Options) Validate() error {
	if err := (chunker.Params{Size: o.ChunkSize, Overlap: o.Overlap}).Validate(); err != nil {
		return fmt.Errorf("invalid chunking parameters: %w", err)
	}
	if o.Thresholds.MinWords < 0 {
		return fmt.Errorf("min words must be non-negative, got %d", o.Thresholds.MinWords)
	}
	return nil
}

// Stats accumulates counters for one run. It is reported at completion
// regardless of how many rows were skipped.
type Stats struct {
	RowsRead      int            `json:"rows_read"`
	RowsSkipped   int            `json:"rows_skipped"`
	ChunksKept    int            `json:"chunks_kept"`
	ChunksDropped int            `json:"chunks_dropped"`
	DropReasons   map[string]int `json:"drop_reasons"`
}

func newStats() *Stats {
	return &Stats{DropReasons: make(map[string]int)}
}

// RowSource yields rows in input order; record.Reader implements it.
type RowSource interface {
	Next() (*record.SourceRow, error)
}

// Sink receives the two output streams of a run.
type Sink interface {
	WriteChunk(*record.ChunkRecord) error
	WriteDrop(*record.DropRecord) error
}

// Pipeline turns source rows into filtered, deduplicated chunk records.
type Pipeline struct {
	opts   Options
	logger *slog.Logger
}

// New validates opts and creates a pipeline.
func New(opts Options) (*Pipeline, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{opts: opts, logger: slog.Default()}, nil
}

// Run consumes rows until EOF, writing kept chunks and dropped chunks
// to the sink. Per-row problems are counted, never fatal; sink write
// failures abort the run.
func (p *Pipeline) Run(ctx context.Context, rows RowSource, sink Sink) (*Stats, error) {
	stats := newStats()
	seen := fingerprint.NewSeenSet()

	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		row, err := rows.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("failed to read row: %w", err)
		}

		stats.RowsRead++
		if err := p.processRow(ctx, row, seen, sink, stats); err != nil {
			return stats, err
		}
	}

	p.logger.InfoContext(ctx, "pipeline run completed",
		"rows_read", stats.RowsRead,
		"rows_skipped", stats.RowsSkipped,
		"chunks_kept", stats.ChunksKept,
		"chunks_dropped", stats.ChunksDropped,
	)
	return stats, nil
}

func (p *Pipeline) processRow(ctx context.Context, row *record.SourceRow, seen *fingerprint.SeenSet, sink Sink, stats *Stats) error {
	if err := row.Validate(); err != nil {
		stats.RowsSkipped++
		p.logger.DebugContext(ctx, "skipping row", "pack_id", row.PackID, "page", row.Page, "error", err)
		return nil
	}

	if !record.KnownLanguage(row.Language) && p.opts.StrictLanguage {
		stats.RowsSkipped++
		p.logger.DebugContext(ctx, "skipping row with unresolved language", "pack_id", row.PackID, "page", row.Page)
		return nil
	}

	text := row.Content
	if p.opts.Normalize {
		text = textnorm.Normalize(text, row.Language)
	}

	params := chunker.Params{Size: p.opts.ChunkSize, Overlap: p.opts.Overlap}
	for i, chunkText := range chunker.Words(text, params) {
		if err := p.emitChunk(row, i, chunkText, seen, sink, stats); err != nil {
			return err
		}
	}
	return nil
}

// emitChunk runs hygiene, fingerprinting and dedup for one candidate
// chunk and routes it to the kept or discarded stream. Hygiene rules
// run first; only chunks that pass them enter the dedup set, so a
// duplicate is dropped if and only if an identical fingerprint was
// already accepted.
func (p *Pipeline) emitChunk(row *record.SourceRow, seq int, chunkText string, seen *fingerprint.SeenSet, sink Sink, stats *Stats) error {
	decision := hygiene.Evaluate(row.SectionTitle, chunkText, row.Language, p.opts.Thresholds)

	fp := fingerprint.Content(chunkText, row.Language, true)
	if !decision.Dropped && p.opts.Dedupe && seen.Check(fp) {
		decision = hygiene.Decision{Dropped: true, Reason: hygiene.ReasonDedupeExact}
	}

	content := chunkText
	if p.opts.PrependTitle && row.SectionTitle != "" {
		content = "[" + row.SectionTitle + "] " + content
	}

	rec := record.ChunkRecord{
		ChunkID:      fingerprint.ChunkID(row.PackID, row.Page, seq, fp),
		PackID:       row.PackID,
		SectionTitle: row.SectionTitle,
		Page:         row.Page,
		Language:     row.Language,
		Content:      content,
	}

	if decision.Dropped {
		stats.ChunksDropped++
		stats.DropReasons[string(decision.Reason)]++
		if err := sink.WriteDrop(&record.DropRecord{ChunkRecord: rec, Reason: string(decision.Reason)}); err != nil {
			return fmt.Errorf("failed to write drop record: %w", err)
		}
		return nil
	}

	stats.ChunksKept++
	if err := sink.WriteChunk(&rec); err != nil {
		return fmt.Errorf("failed to write chunk record: %w", err)
	}
	return nil
}
