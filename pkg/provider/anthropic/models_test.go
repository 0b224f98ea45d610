package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/provider"
)

func newTestProvider(t *testing.T, baseURL string) *Provider {
	t.Helper()
	p, err := New(provider.Config{
		Kind:    provider.KindAnthropic,
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "claude-3-5-sonnet-latest",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestListModelsPagination(t *testing.T) {
	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q, want test-key", got)
		}
		if got := r.Header.Get("anthropic-version"); got != "2023-06-01" {
			t.Errorf("anthropic-version = %q", got)
		}
		requests = append(requests, r.URL.RawQuery)

		switch r.URL.Query().Get("after_id") {
		case "":
			json.NewEncoder(w).Encode(modelsPage{
				Data:    []modelEntry{{ID: "claude-b", DisplayName: "B"}, {ID: "claude-a", DisplayName: "A"}},
				HasMore: true,
				LastID:  "claude-a",
			})
		case "claude-a":
			json.NewEncoder(w).Encode(modelsPage{
				Data:    []modelEntry{{ID: "claude-c", DisplayName: "C"}},
				HasMore: false,
			})
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("after_id"))
		}
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	models, err := p.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}

	if len(requests) != 2 {
		t.Errorf("made %d requests, want 2", len(requests))
	}
	want := []string{"claude-a", "claude-b", "claude-c"}
	if len(models) != len(want) {
		t.Fatalf("models = %+v, want %v", models, want)
	}
	for i, id := range want {
		if models[i].ID != id {
			t.Errorf("models[%d].ID = %q, want %q", i, models[i].ID, id)
		}
	}
}

func TestListModelsStopsWithoutCursor(t *testing.T) {
	// has_more true but no last_id: the loop must still terminate.
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(modelsPage{
			Data:    []modelEntry{{ID: fmt.Sprintf("claude-%d", calls)}},
			HasMore: true,
			LastID:  "",
		})
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	models, err := p.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if calls != 1 {
		t.Errorf("made %d requests, want 1 (absent cursor ends the loop)", calls)
	}
	if len(models) != 1 {
		t.Errorf("models = %+v, want single entry", models)
	}
}

func TestListModelsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	_, err := p.ListModels(context.Background())
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Status != 401 {
		t.Fatalf("err = %v, want upstream 401", err)
	}
}

func TestListModelsMissingKey(t *testing.T) {
	p := newTestProvider(t, "http://localhost:1")
	p.cfg.APIKey = ""
	_, err := p.ListModels(context.Background())
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != api.ErrorKindConfig {
		t.Fatalf("err = %v, want config error", err)
	}
}
