package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/provider"
)

func newTestProvider(t *testing.T, baseURL string) *Provider {
	t.Helper()
	p, err := New(provider.Config{
		Kind:    provider.KindGemini,
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "gemini-2.0-flash",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestToContentsRoleMapping(t *testing.T) {
	contents := toContents([]api.Message{
		{Role: api.RoleSystem, Content: "dropped"},
		{Role: api.RoleUser, Content: "hi"},
		{Role: api.RoleAssistant, Content: "hello"},
	})

	if len(contents) != 2 {
		t.Fatalf("contents = %+v, want 2 entries (system excluded)", contents)
	}
	if contents[0].Role != "user" {
		t.Errorf("user role = %q, want user", contents[0].Role)
	}
	if contents[1].Role != "model" {
		t.Errorf("assistant role = %q, want model", contents[1].Role)
	}
	for _, c := range contents {
		if len(c.Parts) != 1 || c.Parts[0].Text == "dropped" {
			t.Errorf("system content leaked: %+v", c)
		}
	}
}

func TestStreamChatKeyInQueryNotHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-2.0-flash:streamGenerateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("alt"); got != "sse" {
			t.Errorf("alt = %q, want sse", got)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key query = %q, want test-key", got)
		}
		if r.Header.Get("Authorization") != "" || r.Header.Get("x-api-key") != "" {
			t.Error("API key must not be sent as a header")
		}
		w.Write([]byte("data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"ok\"}]}}]}\n\n"))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	ch, err := p.StreamChat(context.Background(), []api.Message{{Role: api.RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("StreamChat: %v", err)
	}

	var events []api.StreamEvent
	for ev := range ch {
		events = append(events, ev)
	}
	if len(events) != 2 {
		t.Fatalf("events = %+v, want Delta then Done", events)
	}
	if events[0].Content != "ok" {
		t.Errorf("delta = %q, want ok", events[0].Content)
	}
	if events[1].Type != api.EventDone || events[1].TotalTokens != 0 {
		t.Errorf("terminal = %+v, want Done(0): gemini never reports usage", events[1])
	}
}

func TestStreamChatMissingKey(t *testing.T) {
	p := newTestProvider(t, "http://localhost:1")
	p.cfg.APIKey = ""
	_, err := p.StreamChat(context.Background(), nil)
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != api.ErrorKindConfig {
		t.Fatalf("err = %v, want config error", err)
	}
}

func TestListModelsPaginationAndFiltering(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key query = %q", got)
		}
		switch r.URL.Query().Get("pageToken") {
		case "":
			json.NewEncoder(w).Encode(modelsPage{
				Models: []modelEntry{
					{Name: "models/gemini-2.0-flash", DisplayName: "Flash", InputTokenLimit: 1048576, SupportedGenerationMethods: []string{"generateContent", "countTokens"}},
					{Name: "models/text-embedding-004", DisplayName: "Embed", SupportedGenerationMethods: []string{"embedContent"}},
				},
				NextPageToken: "page2",
			})
		case "page2":
			json.NewEncoder(w).Encode(modelsPage{
				Models: []modelEntry{
					{Name: "models/gemini-1.5-pro", DisplayName: "Pro", InputTokenLimit: 2097152, SupportedGenerationMethods: []string{"generateContent"}},
				},
			})
		default:
			t.Errorf("unexpected pageToken %q", r.URL.Query().Get("pageToken"))
		}
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	models, err := p.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}

	if calls != 2 {
		t.Errorf("made %d requests, want 2", calls)
	}
	if len(models) != 2 {
		t.Fatalf("models = %+v, want 2 (embedding filtered)", models)
	}
	// Sorted ascending, models/ prefix stripped, context window carried.
	if models[0].ID != "gemini-1.5-pro" || models[1].ID != "gemini-2.0-flash" {
		t.Errorf("ids = %q,%q", models[0].ID, models[1].ID)
	}
	if models[1].ContextWindow != 1048576 {
		t.Errorf("context window = %d, want 1048576", models[1].ContextWindow)
	}
}

func TestListModelsTerminatesWithoutToken(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(modelsPage{
			Models: []modelEntry{{Name: "models/gemini-2.0-flash", SupportedGenerationMethods: []string{"generateContent"}}},
		})
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	if _, err := p.ListModels(context.Background()); err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if calls != 1 {
		t.Errorf("made %d requests, want 1 (absent token ends the loop)", calls)
	}
}
