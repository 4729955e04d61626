package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"polyglotai/internal/record"
	"polyglotai/internal/storage"
)

func TestJSONLSink(t *testing.T) {
	var kept, discarded bytes.Buffer
	sink := NewJSONLSink(&kept, &discarded)

	chunk := &record.ChunkRecord{
		ChunkID:  "AR-X_1_0_ab12cd34",
		PackID:   "AR-X",
		Page:     1,
		Language: "ar",
		Content:  "محتوى",
	}
	if err := sink.WriteChunk(chunk); err != nil {
		t.Fatalf("WriteChunk() error = %v", err)
	}
	if err := sink.WriteDrop(&record.DropRecord{ChunkRecord: *chunk, Reason: "too_short"}); err != nil {
		t.Fatalf("WriteDrop() error = %v", err)
	}
	if err := sink.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if !strings.Contains(kept.String(), `"AR-X_1_0_ab12cd34"`) {
		t.Errorf("kept stream missing chunk: %s", kept.String())
	}
	if !strings.Contains(discarded.String(), `"too_short"`) {
		t.Errorf("discarded stream missing reason: %s", discarded.String())
	}
}

func TestJSONLSink_NilDiscarded(t *testing.T) {
	var kept bytes.Buffer
	sink := NewJSONLSink(&kept, nil)

	err := sink.WriteDrop(&record.DropRecord{Reason: "too_short"})
	if err != nil {
		t.Errorf("WriteDrop() with nil discarded stream error = %v", err)
	}
	if err := sink.Flush(); err != nil {
		t.Errorf("Flush() error = %v", err)
	}
}

func TestStoreSink(t *testing.T) {
	db, err := storage.New(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()
	repo := storage.NewChunkRepo(db)
	run := &storage.Run{ID: "run-1", StartedAt: "2026-08-30T00:00:00Z", Options: "{}"}
	if err := repo.InsertRun(ctx, run); err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	sink := NewStoreSink(ctx, repo, run.ID)

	chunk := &record.ChunkRecord{
		ChunkID:  "english_pack_01_2_0_aaaa1111",
		PackID:   "english_pack_01",
		Page:     2,
		Language: "en",
		Content:  "some kept content",
	}
	if err := sink.WriteChunk(chunk); err != nil {
		t.Fatalf("WriteChunk() error = %v", err)
	}
	if err := sink.WriteDrop(&record.DropRecord{ChunkRecord: *chunk, Reason: "dedupe_exact"}); err != nil {
		t.Fatalf("WriteDrop() error = %v", err)
	}

	got, err := repo.GetChunk(ctx, chunk.ChunkID)
	if err != nil {
		t.Fatalf("GetChunk() error = %v", err)
	}
	if got.RunID != run.ID || got.Content != chunk.Content {
		t.Errorf("stored chunk = %+v", got)
	}

	counts, err := repo.DropCountsByReason(ctx)
	if err != nil {
		t.Fatalf("DropCountsByReason() error = %v", err)
	}
	if counts["dedupe_exact"] != 1 {
		t.Errorf("DropCountsByReason() = %v", counts)
	}
}

func TestMultiSink(t *testing.T) {
	a := &memorySink{}
	b := &memorySink{}
	multi := MultiSink{a, b}

	chunk := &record.ChunkRecord{ChunkID: "x_1_0_11111111"}
	if err := multi.WriteChunk(chunk); err != nil {
		t.Fatalf("WriteChunk() error = %v", err)
	}
	if err := multi.WriteDrop(&record.DropRecord{ChunkRecord: *chunk, Reason: "too_short"}); err != nil {
		t.Fatalf("WriteDrop() error = %v", err)
	}

	if len(a.kept) != 1 || len(b.kept) != 1 {
		t.Errorf("kept fan-out = %d/%d, want 1/1", len(a.kept), len(b.kept))
	}
	if len(a.dropped) != 1 || len(b.dropped) != 1 {
		t.Errorf("dropped fan-out = %d/%d, want 1/1", len(a.dropped), len(b.dropped))
	}
}
