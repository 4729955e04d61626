// Package handlers contains the HTTP handlers for the search API.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"polyglotai/internal/contextutil"
	"polyglotai/internal/indexer"
	"polyglotai/internal/llm"
	"polyglotai/internal/record"
	"polyglotai/internal/vectorstore"
)

const (
	defaultSearchK = 5
	maxSearchK     = 50
)

// SearchHandler handles HTTP requests for similarity search over the
// indexed chunks.
type SearchHandler struct {
	embedder       indexer.Embedder
	vectorStore    vectorstore.VectorStore
	baseCollection string
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(embedder indexer.Embedder, vectorStore vectorstore.VectorStore, baseCollection string) *SearchHandler {
	return &SearchHandler{
		embedder:       embedder,
		vectorStore:    vectorStore,
		baseCollection: baseCollection,
	}
}

// SearchRequest represents the HTTP request payload for searches.
type SearchRequest struct {
	// Query is the free-text search query.
	Query string `json:"query"`

	// Language selects which per-language collection to search: "ar",
	// "en", or "fr".
	Language string `json:"language"`

	// K is the number of results to return. Zero means the default.
	K int `json:"k,omitempty"`

	// PackID restricts results to a single source pack.
	PackID string `json:"pack_id,omitempty"`
}

// SearchResultResponse represents one search hit.
type SearchResultResponse struct {
	ChunkID      string  `json:"chunk_id"`
	Score        float32 `json:"score"`
	PackID       string  `json:"pack_id"`
	SectionTitle string  `json:"section_title,omitempty"`
	Page         int     `json:"page"`
	Content      string  `json:"content"`
	Rank         int     `json:"rank"`
}

// SearchResponse represents the HTTP response payload for searches.
type SearchResponse struct {
	Results []SearchResultResponse `json:"results"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles HTTP requests for similarity search.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Query == "" {
		logger.WarnContext(ctx, "empty query in request")
		h.writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	if !record.KnownLanguage(req.Language) {
		logger.WarnContext(ctx, "unknown language in request", "language", req.Language)
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown language: %s", req.Language))
		return
	}

	if req.K <= 0 {
		req.K = defaultSearchK
	}
	if req.K > maxSearchK {
		req.K = maxSearchK
	}

	vectors, err := h.embedder.EmbedTexts(ctx, llm.RoleQuery, []string{req.Query})
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed query", "error", err)
		h.writeError(w, http.StatusBadGateway, "Embedding service unavailable")
		return
	}

	var filters map[string]any
	if req.PackID != "" {
		filters = map[string]any{"pack_id": req.PackID}
	}

	collection := vectorstore.CollectionName(h.baseCollection, req.Language)
	hits, err := h.vectorStore.Search(ctx, collection, vectors[0], req.K, filters)
	if err != nil {
		logger.ErrorContext(ctx, "search failed", "collection", collection, "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "Vector store unavailable")
		return
	}

	results := make([]SearchResultResponse, 0, len(hits))
	for i, hit := range hits {
		results = append(results, SearchResultResponse{
			ChunkID:      metaString(hit.Meta, "chunk_id"),
			Score:        hit.Score,
			PackID:       metaString(hit.Meta, "pack_id"),
			SectionTitle: metaString(hit.Meta, "section_title"),
			Page:         metaInt(hit.Meta, "page"),
			Content:      metaString(hit.Meta, "content"),
			Rank:         i + 1,
		})
	}

	logger.InfoContext(ctx, "search handled", "language", req.Language, "k", req.K, "results", len(results))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SearchResponse{Results: results}); err != nil {
		logger.ErrorContext(ctx, "failed to encode search response", "error", err)
	}
}

// writeError writes an error response as JSON.
func (h *SearchHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func metaString(meta map[string]any, key string) string {
	if v, ok := meta[key].(string); ok {
		return v
	}
	return ""
}

func metaInt(meta map[string]any, key string) int {
	switch v := meta[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
