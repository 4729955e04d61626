package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewEmbeddingsClient(t *testing.T) {
	client := NewEmbeddingsClient("http://localhost:8080", "test-key", "test-model", 1024)
	if client == nil {
		t.Fatal("NewEmbeddingsClient() returned nil")
	}
	if client.BaseURL != "http://localhost:8080" {
		t.Errorf("NewEmbeddingsClient() BaseURL = %v, want http://localhost:8080", client.BaseURL)
	}
	if client.ExpectedSize != 1024 {
		t.Errorf("NewEmbeddingsClient() ExpectedSize = %v, want 1024", client.ExpectedSize)
	}
}

func TestPrefixed(t *testing.T) {
	got := Prefixed(RolePassage, []string{"النص العربي", "some english"})
	if got[0] != "passage: النص العربي" || got[1] != "passage: some english" {
		t.Errorf("Prefixed(passage) = %v", got)
	}

	got = Prefixed(RoleQuery, []string{"what is ai"})
	if got[0] != "query: what is ai" {
		t.Errorf("Prefixed(query) = %v", got)
	}
}

func TestEmbeddingsClient_EmbedTexts(t *testing.T) {
	tests := []struct {
		name         string
		role         Role
		texts        []string
		expectedSize int
		serverResp   func(t *testing.T, w http.ResponseWriter, r *http.Request)
		wantErr      bool
		wantCount    int
	}{
		{
			name:         "successful embedding with passage prefix",
			role:         RolePassage,
			texts:        []string{"Hello", "World"},
			expectedSize: 1024,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.URL.Path != "/v1/embeddings" {
					t.Errorf("expected /v1/embeddings, got %s", r.URL.Path)
				}

				var req EmbeddingsRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("failed to decode request: %v", err)
				}
				for _, input := range req.Input {
					if !strings.HasPrefix(input, "passage: ") {
						t.Errorf("input %q missing passage prefix", input)
					}
				}

				resp := EmbeddingsResponse{
					Data: []EmbeddingData{
						{Embedding: make([]float64, 1024)},
						{Embedding: make([]float64, 1024)},
					},
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr:   false,
			wantCount: 2,
		},
		{
			name:         "empty input",
			role:         RolePassage,
			texts:        []string{},
			expectedSize: 1024,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				// Should not be called
			},
			wantErr: true,
		},
		{
			name:         "wrong embedding count",
			role:         RoleQuery,
			texts:        []string{"Hello", "World"},
			expectedSize: 1024,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				resp := EmbeddingsResponse{
					Data: []EmbeddingData{
						{Embedding: make([]float64, 1024)},
					},
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr: true,
		},
		{
			name:         "wrong vector size",
			role:         RoleQuery,
			texts:        []string{"Hello"},
			expectedSize: 1024,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				resp := EmbeddingsResponse{
					Data: []EmbeddingData{
						{Embedding: make([]float64, 512)}, // Wrong size
					},
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr: true,
		},
		{
			name:         "server error",
			role:         RolePassage,
			texts:        []string{"Hello"},
			expectedSize: 1024,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("internal server error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.serverResp(t, w, r)
			}))
			defer server.Close()

			client := NewEmbeddingsClient(server.URL, "test-key", "test-model", tt.expectedSize)
			embeddings, err := client.EmbedTexts(context.Background(), tt.role, tt.texts)

			if tt.wantErr {
				if err == nil {
					t.Errorf("EmbedTexts() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("EmbedTexts() error = %v", err)
			}
			if len(embeddings) != tt.wantCount {
				t.Errorf("EmbedTexts() returned %d embeddings, want %d", len(embeddings), tt.wantCount)
			}
			for i, vec := range embeddings {
				if len(vec) != tt.expectedSize {
					t.Errorf("embedding %d has size %d, want %d", i, len(vec), tt.expectedSize)
				}
			}
		})
	}
}
