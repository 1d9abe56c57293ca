package vectordb

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New("test-region", "candidates", "secret", zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	client.APIURL = server.URL
	client.HTTPClient = server.Client()

	return client, server
}

func TestQueryDecodesCandidates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/namespaces/candidates/query" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("unexpected authorization header: %q", got)
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req["top_k"] != float64(250) {
			t.Fatalf("unexpected top_k: %v", req["top_k"])
		}
		if req["distance_metric"] != "cosine_distance" {
			t.Fatalf("unexpected distance metric: %v", req["distance_metric"])
		}

		json.NewEncoder(w).Encode(map[string]any{
			"rows": []map[string]any{
				{
					"id":   "cand-1",
					"dist": 0.25,
					"attributes": map[string]any{
						"name":           "Alex",
						"rerank_summary": "Tax attorney",
						"full_text":      "Full profile text",
						"keywords":       "tax, irs",
					},
				},
				{
					"id":   "cand-2",
					"dist": 0.75,
					"attributes": map[string]any{
						"name": "Sam",
					},
				},
			},
		})
	})

	candidates, err := client.Query(context.Background(), []float32{0.1, 0.2}, 250)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if candidates.Len() != 2 {
		t.Fatalf("expected 2 candidates, got %d", candidates.Len())
	}

	first := candidates.Items[0]
	if first.ID != "cand-1" || first.Name != "Alex" {
		t.Fatalf("unexpected first candidate: %+v", first)
	}
	if first.Summary != "Tax attorney" || first.FullText != "Full profile text" {
		t.Fatalf("attributes not decoded: %+v", first)
	}
	if math.Abs(first.VectorSimilarity-0.75) > 1e-9 {
		t.Fatalf("expected similarity 0.75, got %v", first.VectorSimilarity)
	}

	second := candidates.Items[1]
	if second.ID != "cand-2" {
		t.Fatalf("row order not preserved: %+v", second)
	}
	if math.Abs(second.VectorSimilarity-0.25) > 1e-9 {
		t.Fatalf("expected similarity 0.25, got %v", second.VectorSimilarity)
	}
}

func TestQueryEmptyVector(t *testing.T) {
	client, _ := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatalf("no request expected")
	})

	if _, err := client.Query(context.Background(), nil, 10); err == nil {
		t.Fatalf("expected an error for empty vector")
	}
}

func TestQueryBadStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := client.Query(context.Background(), []float32{0.1}, 10); err == nil {
		t.Fatalf("expected an error on bad status")
	}
}

func TestQueryEmptyResult(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"rows": []any{}})
	})

	candidates, err := client.Query(context.Background(), []float32{0.1}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidates.Len() != 0 {
		t.Fatalf("expected empty result, got %d", candidates.Len())
	}
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name      string
		region    string
		namespace string
		apiKey    string
	}{
		{"missing region", "", "ns", "key"},
		{"missing namespace", "region", "", "key"},
		{"missing api key", "region", "ns", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.region, tc.namespace, tc.apiKey, zap.NewNop()); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}
