package embeddings_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/campushq/campus-agent/embeddings"
)

func TestOllamaEmbedderSendsBatchInOneCall(t *testing.T) {
	var (
		calls  int
		gotURL string
		gotReq struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotURL = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"embeddings": [][]float32{{1, 0}, {0, 1}, {1, 1}},
		})
	}))
	defer srv.Close()

	e := embeddings.NewOllamaEmbedder(embeddings.Options{
		Model:      "nomic-embed-text",
		Dimension:  2,
		OllamaHost: srv.URL,
	})

	vecs, err := e.Embed(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one HTTP call for the batch, got %d", calls)
	}
	if gotURL != "/api/embed" {
		t.Fatalf("unexpected endpoint %q", gotURL)
	}
	if gotReq.Model != "nomic-embed-text" || len(gotReq.Input) != 3 {
		t.Fatalf("unexpected request payload: %+v", gotReq)
	}
	if len(vecs) != 3 || vecs[1][1] != 1 {
		t.Fatalf("unexpected vectors: %v", vecs)
	}
}

func TestOllamaEmbedderRejectsCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"embeddings": [][]float32{{1, 0}},
		})
	}))
	defer srv.Close()

	e := embeddings.NewOllamaEmbedder(embeddings.Options{Model: "m", OllamaHost: srv.URL})

	_, err := e.Embed(context.Background(), []string{"a", "b"})
	if err == nil || !strings.Contains(err.Error(), "count mismatch") {
		t.Fatalf("expected count mismatch error, got %v", err)
	}
}

func TestOllamaEmbedderReportsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	e := embeddings.NewOllamaEmbedder(embeddings.Options{Model: "missing", OllamaHost: srv.URL})

	_, err := e.Embed(context.Background(), []string{"a"})
	if err == nil || !strings.Contains(err.Error(), "model not found") {
		t.Fatalf("expected server error to surface, got %v", err)
	}
}

func TestOpenAIEmbedderRejectsCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  "text-embedding-3-small",
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": []float32{1, 0}},
			},
		})
	}))
	defer srv.Close()

	e := embeddings.NewOpenAIEmbedder(embeddings.Options{
		Model:         "text-embedding-3-small",
		OpenAIAPIKey:  "test",
		OpenAIBaseURL: srv.URL,
	})

	_, err := e.Embed(context.Background(), []string{"a", "b"})
	if err == nil || !strings.Contains(err.Error(), "count mismatch") {
		t.Fatalf("expected count mismatch error, got %v", err)
	}
}

func TestOpenAIEmbedderRejectsDimensionMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  "text-embedding-3-small",
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": []float32{1, 0, 0}},
			},
		})
	}))
	defer srv.Close()

	e := embeddings.NewOpenAIEmbedder(embeddings.Options{
		Model:         "text-embedding-3-small",
		Dimension:     2,
		OpenAIAPIKey:  "test",
		OpenAIBaseURL: srv.URL,
	})

	_, err := e.Embed(context.Background(), []string{"a"})
	if err == nil || !strings.Contains(err.Error(), "dimension mismatch") {
		t.Fatalf("expected dimension mismatch error, got %v", err)
	}
}
