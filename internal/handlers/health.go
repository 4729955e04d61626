package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"polyglotai/internal/contextutil"
	"polyglotai/internal/vectorstore"
)

// CollectionChecker reports whether a vector collection exists.
// *vectorstore.QdrantStore implements it.
type CollectionChecker interface {
	CollectionExists(ctx context.Context, collection string) (bool, error)
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	checker            CollectionChecker
	baseCollection     string
	languages          []string
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. languages lists the
// per-language collections expected to exist.
func NewHealthHandler(checker CollectionChecker, baseCollection string, languages []string) *HealthHandler {
	return &HealthHandler{
		checker:            checker,
		baseCollection:     baseCollection,
		languages:          languages,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results, one per language collection
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
// Returns 200 OK if all language collections exist, 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	for _, language := range h.languages {
		collection := vectorstore.CollectionName(h.baseCollection, language)
		key := "collection_" + language
		if h.checkCollection(checkCtx, logger, collection) {
			checks[key] = "ok"
		} else {
			checks[key] = "error"
			issues = append(issues, fmt.Sprintf("collection %s unavailable", collection))
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
	if len(issues) > 0 {
		response.Issues = issues
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}

// checkCollection checks if a collection is accessible.
func (h *HealthHandler) checkCollection(ctx context.Context, logger *slog.Logger, collection string) bool {
	exists, err := h.checker.CollectionExists(ctx, collection)
	if err != nil {
		logger.WarnContext(ctx, "collection health check failed", "collection", collection, "error", err)
		return false
	}
	if !exists {
		logger.WarnContext(ctx, "collection does not exist", "collection", collection)
		return false
	}
	return true
}
