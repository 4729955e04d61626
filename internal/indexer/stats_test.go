package indexer

import (
	"context"
	"strings"
	"testing"

	"polyglotai/internal/storage"
)

func TestGetCoverageStats(t *testing.T) {
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

	chunkRepo := storage.NewChunkRepo(db)
	ix := &Indexer{chunkRepo: chunkRepo}

	ctx := context.Background()
	embeddingModelName := "test-embedding-model"

	// Empty database
	stats, err := ix.GetCoverageStats(ctx, embeddingModelName)
	if err != nil {
		t.Fatalf("GetCoverageStats() error = %v", err)
	}
	if stats.ChunksIndexed != 0 {
		t.Errorf("ChunksIndexed = %d, want 0", stats.ChunksIndexed)
	}
	if stats.DuplicateChunkIDs != 0 {
		t.Errorf("DuplicateChunkIDs = %d, want 0", stats.DuplicateChunkIDs)
	}
	if stats.IndexerVersion != IndexerVersion {
		t.Errorf("IndexerVersion = %s, want %s", stats.IndexerVersion, IndexerVersion)
	}
	if stats.IndexVersion == "" {
		t.Error("IndexVersion should not be empty")
	}

	// Insert test data
	run := &storage.Run{ID: "run-1", StartedAt: "2026-08-30T00:00:00Z", Options: "{}"}
	if err := chunkRepo.InsertRun(ctx, run); err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	rows := []*storage.ChunkRow{
		{ChunkID: "a_1_0_11111111", RunID: "run-1", PackID: "a", Page: 1, Language: "ar", Content: strings.Repeat("نص ", 40)},
		{ChunkID: "a_2_0_22222222", RunID: "run-1", PackID: "a", Page: 2, Language: "ar", Content: strings.Repeat("نص ", 80)},
		{ChunkID: "b_1_0_33333333", RunID: "run-1", PackID: "b", Page: 1, Language: "en", Content: strings.Repeat("word ", 60)},
	}
	for _, row := range rows {
		if err := chunkRepo.InsertChunk(ctx, row); err != nil {
			t.Fatalf("InsertChunk() error = %v", err)
		}
	}
	drop := &storage.DropRow{
		ChunkRow: storage.ChunkRow{ChunkID: "a_3_0_44444444", RunID: "run-1", PackID: "a", Page: 3, Language: "ar", Content: "x"},
		Reason:   "too_short",
	}
	if err := chunkRepo.InsertDrop(ctx, drop); err != nil {
		t.Fatalf("InsertDrop() error = %v", err)
	}

	stats, err = ix.GetCoverageStats(ctx, embeddingModelName)
	if err != nil {
		t.Fatalf("GetCoverageStats() error = %v", err)
	}

	if stats.ChunksIndexed != 3 {
		t.Errorf("ChunksIndexed = %d, want 3", stats.ChunksIndexed)
	}
	if stats.ChunksByLanguage["ar"] != 2 || stats.ChunksByLanguage["en"] != 1 {
		t.Errorf("ChunksByLanguage = %v", stats.ChunksByLanguage)
	}
	if stats.DropsByReason["too_short"] != 1 {
		t.Errorf("DropsByReason = %v", stats.DropsByReason)
	}
	if stats.DuplicateChunkIDs != 0 {
		t.Errorf("DuplicateChunkIDs = %d, want 0", stats.DuplicateChunkIDs)
	}
	if stats.ChunkTokenStats.Min <= 0 || stats.ChunkTokenStats.Max < stats.ChunkTokenStats.Min {
		t.Errorf("ChunkTokenStats = %+v", stats.ChunkTokenStats)
	}
	if stats.ChunkTokenStats.Mean <= 0 {
		t.Errorf("Mean = %v, want > 0", stats.ChunkTokenStats.Mean)
	}
}

func TestComputeTokenStats(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   ChunkTokenStats
	}{
		{
			name:   "empty",
			counts: nil,
			want:   ChunkTokenStats{},
		},
		{
			name:   "single value",
			counts: []int{10},
			want:   ChunkTokenStats{Min: 10, Max: 10, Mean: 10, P95: 10},
		},
		{
			name:   "spread",
			counts: []int{1, 2, 3, 4, 5},
			want:   ChunkTokenStats{Min: 1, Max: 5, Mean: 3, P95: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeTokenStats(tt.counts)
			if got != tt.want {
				t.Errorf("computeTokenStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
