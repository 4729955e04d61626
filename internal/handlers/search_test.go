package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	indexer_mocks "polyglotai/internal/indexer/mocks"
	"polyglotai/internal/llm"
	"polyglotai/internal/vectorstore"
	vectorstore_mocks "polyglotai/internal/vectorstore/mocks"
)

func searchBody(t *testing.T, req SearchRequest) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		t.Fatalf("failed to encode request: %v", err)
	}
	return &buf
}

func TestSearchHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEmbedder := indexer_mocks.NewMockEmbedder(ctrl)
	mockVectorStore := vectorstore_mocks.NewMockVectorStore(ctrl)

	mockEmbedder.EXPECT().
		EmbedTexts(gomock.Any(), llm.RoleQuery, []string{"ما هو الذكاء الاصطناعي"}).
		Return([][]float32{{1, 0, 0}}, nil)

	mockVectorStore.EXPECT().
		Search(gomock.Any(), "packs_ar", []float32{1, 0, 0}, 5, nil).
		Return([]vectorstore.SearchResult{
			{
				PointID: "p1",
				Score:   0.92,
				Meta: map[string]any{
					"chunk_id":      "AR-ETHICS-2023_12_0_ab12cd34",
					"pack_id":       "AR-ETHICS-2023",
					"section_title": "الفصل الأول",
					"page":          int64(12),
					"content":       "نص الفقرة",
				},
			},
		}, nil)

	handler := NewSearchHandler(mockEmbedder, mockVectorStore, "packs")

	req := httptest.NewRequest(http.MethodPost, "/api/search",
		searchBody(t, SearchRequest{Query: "ما هو الذكاء الاصطناعي", Language: "ar"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp SearchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(resp.Results))
	}
	got := resp.Results[0]
	if got.ChunkID != "AR-ETHICS-2023_12_0_ab12cd34" {
		t.Errorf("ChunkID = %v", got.ChunkID)
	}
	if got.Page != 12 {
		t.Errorf("Page = %d, want 12", got.Page)
	}
	if got.Rank != 1 {
		t.Errorf("Rank = %d, want 1", got.Rank)
	}
}

func TestSearchHandler_Validation(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		req        SearchRequest
		wantStatus int
	}{
		{
			name:       "missing query",
			method:     http.MethodPost,
			req:        SearchRequest{Language: "en"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown language",
			method:     http.MethodPost,
			req:        SearchRequest{Query: "hello", Language: "de"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty language",
			method:     http.MethodPost,
			req:        SearchRequest{Query: "hello"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong method",
			method:     http.MethodGet,
			req:        SearchRequest{Query: "hello", Language: "en"},
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler := NewSearchHandler(
				indexer_mocks.NewMockEmbedder(ctrl),
				vectorstore_mocks.NewMockVectorStore(ctrl),
				"packs",
			)

			req := httptest.NewRequest(tt.method, "/api/search", searchBody(t, tt.req))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestSearchHandler_KBounds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEmbedder := indexer_mocks.NewMockEmbedder(ctrl)
	mockVectorStore := vectorstore_mocks.NewMockVectorStore(ctrl)

	mockEmbedder.EXPECT().
		EmbedTexts(gomock.Any(), llm.RoleQuery, gomock.Any()).
		Return([][]float32{{1}}, nil)

	// K above the cap is clamped to maxSearchK
	mockVectorStore.EXPECT().
		Search(gomock.Any(), "packs_en", gomock.Any(), maxSearchK, gomock.Any()).
		Return(nil, nil)

	handler := NewSearchHandler(mockEmbedder, mockVectorStore, "packs")

	req := httptest.NewRequest(http.MethodPost, "/api/search",
		searchBody(t, SearchRequest{Query: "hello", Language: "en", K: 500}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestSearchHandler_PackFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEmbedder := indexer_mocks.NewMockEmbedder(ctrl)
	mockVectorStore := vectorstore_mocks.NewMockVectorStore(ctrl)

	mockEmbedder.EXPECT().
		EmbedTexts(gomock.Any(), llm.RoleQuery, gomock.Any()).
		Return([][]float32{{1}}, nil)

	mockVectorStore.EXPECT().
		Search(gomock.Any(), "packs_fr", gomock.Any(), defaultSearchK, map[string]any{"pack_id": "french_pack_02"}).
		Return(nil, nil)

	handler := NewSearchHandler(mockEmbedder, mockVectorStore, "packs")

	req := httptest.NewRequest(http.MethodPost, "/api/search",
		searchBody(t, SearchRequest{Query: "bonjour", Language: "fr", PackID: "french_pack_02"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestSearchHandler_EmbedderFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEmbedder := indexer_mocks.NewMockEmbedder(ctrl)
	mockVectorStore := vectorstore_mocks.NewMockVectorStore(ctrl)

	mockEmbedder.EXPECT().
		EmbedTexts(gomock.Any(), llm.RoleQuery, gomock.Any()).
		Return(nil, fmt.Errorf("connection refused"))

	handler := NewSearchHandler(mockEmbedder, mockVectorStore, "packs")

	req := httptest.NewRequest(http.MethodPost, "/api/search",
		searchBody(t, SearchRequest{Query: "hello", Language: "en"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
