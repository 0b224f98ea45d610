//go:build integration

// Package integration exercises the full dispatch path — engine, adapter,
// wire parsing — against local servers speaking each upstream framing.
package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/engine"
	"github.com/strom-dev/strom/pkg/provider"
)

func userMessage(content string) []api.Message {
	return []api.Message{{Role: api.RoleUser, Content: content}}
}

// collectStream runs engine.Stream and returns every delivered event.
func collectStream(t *testing.T, cfg provider.Config) []api.StreamEvent {
	t.Helper()
	var events []api.StreamEvent
	err := engine.Stream(context.Background(), cfg, userMessage("ping"), func(ev api.StreamEvent) {
		events = append(events, ev)
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	return events
}

// checkContract asserts the normalized stream shape and returns the
// concatenated content.
func checkContract(t *testing.T, events []api.StreamEvent) string {
	t.Helper()
	if len(events) < 2 {
		t.Fatalf("got %d events, want at least Started and a terminal", len(events))
	}
	if events[0].Type != api.EventStarted || events[0].MessageID == "" {
		t.Fatalf("first event = %+v, want Started with a message id", events[0])
	}
	var content string
	for _, ev := range events[1 : len(events)-1] {
		if ev.Type != api.EventDelta {
			t.Fatalf("mid-stream event = %+v, want only Deltas between Started and terminal", ev)
		}
		content += ev.Content
	}
	last := events[len(events)-1]
	if !last.Terminal() {
		t.Fatalf("last event = %+v, want a terminal", last)
	}
	return content
}

func TestOpenAIFraming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"pong \"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"pong\"},\"finish_reason\":\"stop\"}],\"usage\":{\"total_tokens\":9}}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	events := collectStream(t, provider.Config{
		Kind: provider.KindOpenAI, APIKey: "k", BaseURL: srv.URL, Model: "m",
	})
	if got := checkContract(t, events); got != "pong pong" {
		t.Errorf("content = %q", got)
	}
	last := events[len(events)-1]
	if last.Type != api.EventDone || last.TotalTokens != 9 {
		t.Errorf("terminal = %+v, want Done(9)", last)
	}
}

func TestAnthropicFraming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "k" {
			http.Error(w, `{"type":"error"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: content_block_delta\ndata: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":\"pong\"}}\n\n")
		fmt.Fprint(w, "event: message_delta\ndata: {\"type\":\"message_delta\",\"usage\":{\"input_tokens\":2,\"output_tokens\":3}}\n\n")
		fmt.Fprint(w, "event: message_stop\ndata: {\"type\":\"message_stop\"}\n\n")
	}))
	defer srv.Close()

	events := collectStream(t, provider.Config{
		Kind: provider.KindAnthropic, APIKey: "k", BaseURL: srv.URL, Model: "m",
	})
	if got := checkContract(t, events); got != "pong" {
		t.Errorf("content = %q", got)
	}
	last := events[len(events)-1]
	if last.Type != api.EventDone || last.TotalTokens != 5 {
		t.Errorf("terminal = %+v, want Done(5)", last)
	}
}

func TestGeminiFraming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "k" {
			http.Error(w, `{"error":{}}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"po\"},{\"text\":\"ng\"}]}}]}\n\n")
	}))
	defer srv.Close()

	events := collectStream(t, provider.Config{
		Kind: provider.KindGemini, APIKey: "k", BaseURL: srv.URL, Model: "m",
	})
	if got := checkContract(t, events); got != "pong" {
		t.Errorf("content = %q", got)
	}
	last := events[len(events)-1]
	if last.Type != api.EventDone || last.TotalTokens != 0 {
		t.Errorf("terminal = %+v, want Done(0)", last)
	}
}

func TestOllamaFraming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
		fmt.Fprint(w, "{\"message\":{\"content\":\"pong\"},\"done\":false}\n")
		fmt.Fprint(w, "{\"message\":{\"content\":\"\"},\"done\":true}\n")
	}))
	defer srv.Close()

	events := collectStream(t, provider.Config{
		Kind: provider.KindOllama, BaseURL: srv.URL, Model: "m",
	})
	if got := checkContract(t, events); got != "pong" {
		t.Errorf("content = %q", got)
	}
}

func TestListModelsAcrossKinds(t *testing.T) {
	openai := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"m-b"},{"id":"m-a"}]}`))
	}))
	defer openai.Close()
	ollama := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[{"name":"local:latest","model":"local:latest"}]}`))
	}))
	defer ollama.Close()

	configs := []provider.Config{
		{Kind: provider.KindOpenAI, APIKey: "k", BaseURL: openai.URL},
		{Kind: provider.KindOllama, BaseURL: ollama.URL},
	}
	results := engine.ListAllModels(context.Background(), configs)

	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Err != nil || len(results[0].Models) != 2 || results[0].Models[0].ID != "m-a" {
		t.Errorf("openai result = %+v, want sorted catalog", results[0])
	}
	if results[1].Err != nil || len(results[1].Models) != 1 || results[1].Models[0].ID != "local:latest" {
		t.Errorf("ollama result = %+v", results[1])
	}
}
