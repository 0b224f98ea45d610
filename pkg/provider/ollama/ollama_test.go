package ollama

import (
	"context"
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
		Kind:    provider.KindOllama,
		BaseURL: baseURL,
		Model:   "llama3",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestStreamChatEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %s, want /api/chat", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("ollama requests must carry no auth header")
		}
		w.Write([]byte("{\"message\":{\"content\":\"hey\"}}\n{\"done\":true}\n"))
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
	if len(events) != 2 || events[0].Content != "hey" || events[1].Type != api.EventDone {
		t.Errorf("events = %+v", events)
	}
}

func TestStreamChatNon2xxReportsStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model 'missing' not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	_, err := p.StreamChat(context.Background(), nil)
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Status != 404 {
		t.Fatalf("err = %v, want upstream 404", err)
	}
	if apiErr.Message == "" {
		t.Error("upstream error must carry the response body text")
	}
}

func TestListModelsEitherIDField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %s, want /api/tags", r.URL.Path)
		}
		w.Write([]byte(`{"models":[
			{"name":"llama3:latest"},
			{"model":"gemma:2b"},
			{"model":"mistral:7b","name":"ignored-when-model-present"}
		]}`))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	models, err := p.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}

	want := []string{"gemma:2b", "llama3:latest", "mistral:7b"}
	if len(models) != len(want) {
		t.Fatalf("models = %+v, want %v", models, want)
	}
	for i, id := range want {
		if models[i].ID != id {
			t.Errorf("models[%d].ID = %q, want %q", i, models[i].ID, id)
		}
	}
}
