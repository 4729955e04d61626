package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"polyglotai/internal/storage"
)

const (
	// IndexerVersion is the version identifier for the indexing pipeline.
	// Update this when chunking or embedding parameters change
	// significantly.
	IndexerVersion = "v1.0"
	// TokensPerRune is an approximation for token counting (4 chars per token).
	TokensPerRune = 4.0
)

// CoverageStats contains statistics about the indexed corpus.
type CoverageStats struct {
	// ChunksIndexed is the total number of kept chunks in the audit store.
	ChunksIndexed int `json:"chunks_indexed"`
	// ChunksByLanguage is the kept-chunk count per language.
	ChunksByLanguage map[string]int `json:"chunks_by_language"`
	// DropsByReason is the discarded-chunk count per drop reason.
	DropsByReason map[string]int `json:"drops_by_reason,omitempty"`
	// DuplicateChunkIDs is the number of chunk IDs stored more than once.
	// Should be zero when the dedup stage is on.
	DuplicateChunkIDs int `json:"duplicate_chunk_ids"`
	// ChunkTokenStats contains statistics about token counts per chunk.
	ChunkTokenStats ChunkTokenStats `json:"chunk_token_stats"`
	// IndexerVersion is the version of the indexing pipeline used.
	IndexerVersion string `json:"indexer_version"`
	// IndexVersion is a hash identifying the index build (pipeline
	// version + embedding model + chunking params).
	IndexVersion string `json:"index_version"`
}

// ChunkTokenStats contains statistics about token counts in chunks.
type ChunkTokenStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

// GetCoverageStats computes coverage statistics from the audit database.
func (ix *Indexer) GetCoverageStats(ctx context.Context, embeddingModelName string) (*CoverageStats, error) {
	chunkRepo, ok := ix.chunkRepo.(*storage.ChunkRepo)
	if !ok {
		return nil, fmt.Errorf("chunkRepo is not *storage.ChunkRepo, cannot query stats")
	}

	stats := &CoverageStats{
		IndexerVersion: IndexerVersion,
	}

	byLanguage, err := chunkRepo.CountByLanguage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count chunks by language: %w", err)
	}
	stats.ChunksByLanguage = byLanguage
	for _, n := range byLanguage {
		stats.ChunksIndexed += n
	}

	byReason, err := chunkRepo.DropCountsByReason(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count drops by reason: %w", err)
	}
	if len(byReason) > 0 {
		stats.DropsByReason = byReason
	}

	duplicates, err := chunkRepo.DuplicateChunkIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to audit duplicate chunk ids: %w", err)
	}
	stats.DuplicateChunkIDs = len(duplicates)

	tokenCounts, err := chunkTokenCounts(ctx, chunkRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to compute token counts: %w", err)
	}
	stats.ChunkTokenStats = computeTokenStats(tokenCounts)

	// Generate index version hash (indexer version + embedding model + chunking params)
	const chunkSize = 350
	const overlap = 60
	indexVersionInput := fmt.Sprintf("%s|%s|chunkSize=%d|overlap=%d",
		IndexerVersion, embeddingModelName, chunkSize, overlap)
	hash := sha256.Sum256([]byte(indexVersionInput))
	stats.IndexVersion = hex.EncodeToString(hash[:])[:16] // 16 hex chars = 64 bits

	return stats, nil
}

// chunkTokenCounts estimates a token count for every kept chunk.
func chunkTokenCounts(ctx context.Context, chunkRepo *storage.ChunkRepo) ([]int, error) {
	db := chunkRepo.DB()
	if db == nil {
		return nil, fmt.Errorf("chunkRepo.DB() returned nil")
	}

	rows, err := db.QueryContext(ctx, "SELECT content FROM chunks")
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk contents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var counts []int
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}

		runeCount := utf8.RuneCountInString(content)
		tokenCount := int(math.Round(float64(runeCount) / TokensPerRune))
		if tokenCount < 1 {
			tokenCount = 1
		}
		counts = append(counts, tokenCount)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return counts, nil
}

// computeTokenStats computes min, max, mean, and p95 from token counts.
func computeTokenStats(tokenCounts []int) ChunkTokenStats {
	if len(tokenCounts) == 0 {
		return ChunkTokenStats{}
	}

	sorted := make([]int, len(tokenCounts))
	copy(sorted, tokenCounts)
	sort.Ints(sorted)

	min := sorted[0]
	max := sorted[len(sorted)-1]

	sum := 0
	for _, count := range tokenCounts {
		sum += count
	}
	mean := float64(sum) / float64(len(tokenCounts))

	p95Index := int(math.Ceil(float64(len(sorted)) * 0.95))
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}
	p95 := sorted[p95Index]

	return ChunkTokenStats{
		Min:  min,
		Max:  max,
		Mean: math.Round(mean*100) / 100, // Round to 2 decimal places
		P95:  p95,
	}
}
