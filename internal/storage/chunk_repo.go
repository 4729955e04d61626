package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chunk_store.go -package=mocks polyglotai/internal/storage ChunkStore

import (
	"context"
	"database/sql"
	"fmt"
)

// ChunkStore defines the audit-store operations used by the pipeline
// and the indexer.
type ChunkStore interface {
	// InsertRun records a pipeline run before its chunks are written.
	InsertRun(ctx context.Context, run *Run) error
	// InsertChunk persists one kept chunk.
	InsertChunk(ctx context.Context, chunk *ChunkRow) error
	// InsertDrop persists one discarded chunk with its reason.
	InsertDrop(ctx context.Context, drop *DropRow) error
	// GetChunk returns a kept chunk by ID. Returns ErrNotFound if absent.
	GetChunk(ctx context.Context, chunkID string) (*ChunkRow, error)
	// ListChunksByLanguage returns kept chunks for a language, in
	// insertion order.
	ListChunksByLanguage(ctx context.Context, language string) ([]*ChunkRow, error)
	// CountByLanguage returns kept-chunk counts keyed by language.
	CountByLanguage(ctx context.Context) (map[string]int, error)
	// DuplicateChunkIDs returns chunk IDs stored more than once, for
	// ID-uniqueness audits across runs.
	DuplicateChunkIDs(ctx context.Context) ([]string, error)
	// DropCountsByReason returns discarded-chunk counts keyed by reason.
	DropCountsByReason(ctx context.Context) (map[string]int, error)
}

// ChunkRepo implements ChunkStore on a sql.DB.
type ChunkRepo struct {
	db *sql.DB
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

// DB exposes the underlying database for stats queries.
func (r *ChunkRepo) DB() *sql.DB {
	return r.db
}

// InsertRun records a pipeline run before its chunks are written.
func (r *ChunkRepo) InsertRun(ctx context.Context, run *Run) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO runs (id, started_at, options) VALUES (?, ?, ?)",
		run.ID, run.StartedAt, run.Options,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// InsertChunk persists one kept chunk.
func (r *ChunkRepo) InsertChunk(ctx context.Context, chunk *ChunkRow) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO chunks (chunk_id, run_id, pack_id, section_title, page, language, content) VALUES (?, ?, ?, ?, ?, ?, ?)",
		chunk.ChunkID, chunk.RunID, chunk.PackID, chunk.SectionTitle, chunk.Page, chunk.Language, chunk.Content,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chunk: %w", err)
	}
	return nil
}

// InsertDrop persists one discarded chunk with its reason.
func (r *ChunkRepo) InsertDrop(ctx context.Context, drop *DropRow) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO drops (chunk_id, run_id, pack_id, section_title, page, language, content, reason) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		drop.ChunkID, drop.RunID, drop.PackID, drop.SectionTitle, drop.Page, drop.Language, drop.Content, drop.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to insert drop: %w", err)
	}
	return nil
}

// GetChunk returns a kept chunk by ID. Returns ErrNotFound if absent.
func (r *ChunkRepo) GetChunk(ctx context.Context, chunkID string) (*ChunkRow, error) {
	var c ChunkRow
	err := r.db.QueryRowContext(ctx,
		"SELECT chunk_id, run_id, pack_id, section_title, page, language, content FROM chunks WHERE chunk_id = ? LIMIT 1",
		chunkID,
	).Scan(&c.ChunkID, &c.RunID, &c.PackID, &c.SectionTitle, &c.Page, &c.Language, &c.Content)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk: %w", err)
	}
	return &c, nil
}

// ListChunksByLanguage returns kept chunks for a language, in insertion
// order.
func (r *ChunkRepo) ListChunksByLanguage(ctx context.Context, language string) ([]*ChunkRow, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT chunk_id, run_id, pack_id, section_title, page, language, content FROM chunks WHERE language = ? ORDER BY rowid",
		language,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []*ChunkRow
	for rows.Next() {
		var c ChunkRow
		if err := rows.Scan(&c.ChunkID, &c.RunID, &c.PackID, &c.SectionTitle, &c.Page, &c.Language, &c.Content); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}

// CountByLanguage returns kept-chunk counts keyed by language.
func (r *ChunkRepo) CountByLanguage(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT language, COUNT(*) FROM chunks GROUP BY language")
	if err != nil {
		return nil, fmt.Errorf("failed to count chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[string]int)
	for rows.Next() {
		var lang string
		var n int
		if err := rows.Scan(&lang, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[lang] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return counts, nil
}

// DuplicateChunkIDs returns chunk IDs stored more than once. With the
// dedup stage enabled this should come back empty; anything else means
// an ID-uniqueness regression.
func (r *ChunkRepo) DuplicateChunkIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT chunk_id FROM chunks GROUP BY chunk_id HAVING COUNT(*) > 1 ORDER BY chunk_id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query duplicate ids: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return ids, nil
}

// DropCountsByReason returns discarded-chunk counts keyed by reason.
func (r *ChunkRepo) DropCountsByReason(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT reason, COUNT(*) FROM drops GROUP BY reason")
	if err != nil {
		return nil, fmt.Errorf("failed to count drops: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[string]int)
	for rows.Next() {
		var reason string
		var n int
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[reason] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return counts, nil
}
