package anthropic

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

func TestStreamChatRequestShape(t *testing.T) {
	var captured messagesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s, want /v1/messages", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("Authorization header must not be sent; auth is x-api-key")
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Write([]byte("data: {\"type\":\"message_stop\"}\n\n"))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	ch, err := p.StreamChat(context.Background(), []api.Message{
		{Role: api.RoleSystem, Content: "be helpful"},
		{Role: api.RoleUser, Content: "hi"},
	})
	if err != nil {
		t.Fatalf("StreamChat: %v", err)
	}
	for range ch {
	}

	if captured.System != "be helpful" {
		t.Errorf("system = %q, want be helpful", captured.System)
	}
	if captured.MaxTokens != 4096 {
		t.Errorf("max_tokens = %d, want 4096", captured.MaxTokens)
	}
	if !captured.Stream {
		t.Error("stream = false, want true")
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Role != api.RoleUser {
		t.Errorf("messages = %+v, want only the user message", captured.Messages)
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

func TestNewRejectsForeignKind(t *testing.T) {
	if _, err := New(provider.Config{Kind: provider.KindOpenAI}); err == nil {
		t.Error("New with openai kind succeeded, want error")
	}
}
