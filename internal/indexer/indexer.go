// Package indexer drives embedding and vector upserts for chunks that
// survived the preparation pipeline.
package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks polyglotai/internal/indexer Embedder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"polyglotai/internal/contextutil"
	"polyglotai/internal/llm"
	"polyglotai/internal/storage"
	"polyglotai/internal/vectorstore"
)

const (
	// DefaultBatchSize is the number of chunks embedded per API call.
	DefaultBatchSize = 64
	// DefaultMaxChars caps chunk length sent to the embedding model.
	// Longer chunks are truncated, not dropped; the full text stays in
	// the audit store.
	DefaultMaxChars = 6000
)

// Embedder generates passage or query embeddings for a batch of texts.
type Embedder interface {
	EmbedTexts(ctx context.Context, role llm.Role, texts []string) ([][]float32, error)
}

// Indexer embeds kept chunks and upserts them into per-language vector
// collections.
type Indexer struct {
	chunkRepo      storage.ChunkStore
	embedder       Embedder
	vectorStore    vectorstore.VectorStore
	baseCollection string
	vectorSize     int
	batchSize      int
	maxChars       int
	logger         *slog.Logger
}

// NewIndexer creates a new indexer.
func NewIndexer(
	chunkRepo storage.ChunkStore,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	baseCollection string,
	vectorSize int,
) *Indexer {
	return &Indexer{
		chunkRepo:      chunkRepo,
		embedder:       embedder,
		vectorStore:    vectorStore,
		baseCollection: baseCollection,
		vectorSize:     vectorSize,
		batchSize:      DefaultBatchSize,
		maxChars:       DefaultMaxChars,
		logger:         slog.Default(),
	}
}

// PointID derives a stable vector point ID from a chunk ID. Re-indexing
// the same chunk overwrites its point instead of accumulating copies.
func PointID(chunkID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(chunkID)).String()
}

// IndexLanguage embeds all stored chunks for one language and upserts
// them into that language's collection. Returns the number of chunks
// indexed.
func (ix *Indexer) IndexLanguage(ctx context.Context, language string) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	chunks, err := ix.chunkRepo.ListChunksByLanguage(ctx, language)
	if err != nil {
		return 0, fmt.Errorf("failed to list chunks: %w", err)
	}

	if len(chunks) == 0 {
		logger.WarnContext(ctx, "no chunks to index", "language", language)
		return 0, nil
	}

	collection := vectorstore.CollectionName(ix.baseCollection, language)
	if err := ix.vectorStore.EnsureCollection(ctx, collection, ix.vectorSize); err != nil {
		return 0, fmt.Errorf("failed to ensure collection %s: %w", collection, err)
	}

	indexed := 0
	for start := 0; start < len(chunks); start += ix.batchSize {
		select {
		case <-ctx.Done():
			return indexed, ctx.Err()
		default:
		}

		end := start + ix.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = truncateRunes(chunk.Content, ix.maxChars)
		}

		embeddings, err := ix.embedder.EmbedTexts(ctx, llm.RolePassage, texts)
		if err != nil {
			return indexed, fmt.Errorf("failed to embed batch at offset %d: %w", start, err)
		}
		if len(embeddings) != len(batch) {
			return indexed, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(embeddings))
		}

		points := make([]vectorstore.Point, len(batch))
		for i, chunk := range batch {
			points[i] = vectorstore.Point{
				ID:  PointID(chunk.ChunkID),
				Vec: embeddings[i],
				Meta: map[string]any{
					"chunk_id":      chunk.ChunkID,
					"pack_id":       chunk.PackID,
					"section_title": chunk.SectionTitle,
					"page":          chunk.Page,
					"language":      chunk.Language,
					"content":       texts[i],
				},
			}
		}

		if err := ix.vectorStore.Upsert(ctx, collection, points); err != nil {
			return indexed, fmt.Errorf("failed to upsert batch at offset %d: %w", start, err)
		}
		indexed += len(batch)

		logger.DebugContext(ctx, "indexed batch", "collection", collection, "offset", start, "count", len(batch))
	}

	logger.InfoContext(ctx, "indexed language", "language", language, "collection", collection, "chunks", indexed)
	return indexed, nil
}

// IndexAll indexes each of the given languages. A failure in one
// language is logged and does not stop the others.
func (ix *Indexer) IndexAll(ctx context.Context, languages []string) error {
	logger := contextutil.LoggerFromContext(ctx)

	var total, errorCount int
	for _, language := range languages {
		n, err := ix.IndexLanguage(ctx, language)
		total += n
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			errorCount++
			logger.ErrorContext(ctx, "failed to index language", "language", language, "error", err)
			continue
		}
	}

	logger.InfoContext(ctx, "indexing completed", "languages", len(languages), "chunks", total, "errors", errorCount)

	if errorCount > 0 {
		return fmt.Errorf("indexing completed with %d errors", errorCount)
	}
	return nil
}

// truncateRunes limits s to max runes. Byte slicing would split a
// multi-byte Arabic character in half.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
