// Command mock-provider runs a deterministic multi-protocol upstream for
// demos and integration testing. It serves all five wire framings on one
// port, echoing the last user message word by word:
//
//	POST /openai/chat/completions              OpenAI-compatible SSE + [DONE]
//	POST /anthropic/v1/messages                Anthropic typed SSE
//	POST /gemini/v1beta/models/{m}             Gemini SSE (alt=sse)
//	POST /ollama/api/chat                      Ollama NDJSON
//	GET  /openai/models, /anthropic/v1/models,
//	     /gemini/v1beta/models, /ollama/api/tags
//
// Configuration:
//
//	MOCK_PORT - Listen port (default: 9090)
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

func main() {
	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "9090"
	}

	srv := &http.Server{Addr: ":" + port, Handler: newMux()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("mock provider starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("mock provider failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("mock provider shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /openai/chat/completions", handleOpenAIChat)
	mux.HandleFunc("GET /openai/models", handleOpenAIModels)
	mux.HandleFunc("POST /anthropic/v1/messages", handleAnthropicChat)
	mux.HandleFunc("GET /anthropic/v1/models", handleAnthropicModels)
	mux.HandleFunc("POST /gemini/v1beta/models/{model}", handleGeminiChat)
	mux.HandleFunc("GET /gemini/v1beta/models", handleGeminiModels)
	mux.HandleFunc("POST /ollama/api/chat", handleOllamaChat)
	mux.HandleFunc("GET /ollama/api/tags", handleOllamaModels)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	return mux
}

// reply builds the canned answer: the last user message echoed word by word.
func reply(lastUser string) []string {
	if lastUser == "" {
		lastUser = "hello from the mock provider"
	}
	words := strings.Fields("You said: " + lastUser)
	chunks := make([]string, len(words))
	for i, w := range words {
		if i == 0 {
			chunks[i] = w
		} else {
			chunks[i] = " " + w
		}
	}
	return chunks
}

func sseFlush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// --- OpenAI-compatible framing ---

type openAIRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Stream bool `json:"stream"`
}

func (r openAIRequest) lastUser() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == "user" {
			return r.Messages[i].Content
		}
	}
	return ""
}

func handleOpenAIChat(w http.ResponseWriter, r *http.Request) {
	var req openAIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":{"message":"invalid request"}}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	chunks := reply(req.lastUser())
	for _, c := range chunks {
		fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%s}}]}\n\n", jsonString(c))
		sseFlush(w)
	}
	fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{},\"finish_reason\":\"stop\"}],\"usage\":{\"total_tokens\":%d}}\n\n", len(chunks))
	fmt.Fprint(w, "data: [DONE]\n\n")
	sseFlush(w)
}

func handleOpenAIModels(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"data":[{"id":"mock-large"},{"id":"mock-small"}]}`))
}

// --- Anthropic typed SSE framing ---

type anthropicRequest struct {
	Model    string `json:"model"`
	System   string `json:"system"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func handleAnthropicChat(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("x-api-key") == "" {
		http.Error(w, `{"type":"error","error":{"type":"authentication_error"}}`, http.StatusUnauthorized)
		return
	}

	var req anthropicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"type":"error"}`, http.StatusBadRequest)
		return
	}
	last := ""
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			last = req.Messages[i].Content
			break
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	fmt.Fprint(w, "event: message_start\ndata: {\"type\":\"message_start\"}\n\n")
	for _, c := range reply(last) {
		fmt.Fprintf(w, "event: content_block_delta\ndata: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":%s}}\n\n", jsonString(c))
		sseFlush(w)
	}
	fmt.Fprint(w, "event: message_delta\ndata: {\"type\":\"message_delta\",\"usage\":{\"input_tokens\":4,\"output_tokens\":6}}\n\n")
	fmt.Fprint(w, "event: message_stop\ndata: {\"type\":\"message_stop\"}\n\n")
	sseFlush(w)
}

func handleAnthropicModels(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"data":[{"id":"mock-claude","display_name":"Mock Claude"}],"has_more":false}`))
}

// --- Gemini SSE framing ---

type geminiRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

func handleGeminiChat(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("key") == "" {
		http.Error(w, `{"error":{"status":"UNAUTHENTICATED"}}`, http.StatusUnauthorized)
		return
	}

	var req geminiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":{}}`, http.StatusBadRequest)
		return
	}
	last := ""
	for i := len(req.Contents) - 1; i >= 0; i-- {
		if req.Contents[i].Role == "user" && len(req.Contents[i].Parts) > 0 {
			last = req.Contents[i].Parts[0].Text
			break
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	for _, c := range reply(last) {
		fmt.Fprintf(w, "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":%s}]}}]}\n\n", jsonString(c))
		sseFlush(w)
	}
}

func handleGeminiModels(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"models":[{"name":"models/mock-gemini","displayName":"Mock Gemini","inputTokenLimit":32768,"supportedGenerationMethods":["generateContent"]}]}`))
}

// --- Ollama NDJSON framing ---

func handleOllamaChat(w http.ResponseWriter, r *http.Request) {
	var req openAIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	for _, c := range reply(req.lastUser()) {
		fmt.Fprintf(w, "{\"message\":{\"role\":\"assistant\",\"content\":%s},\"done\":false}\n", jsonString(c))
		sseFlush(w)
	}
	fmt.Fprint(w, "{\"message\":{\"role\":\"assistant\",\"content\":\"\"},\"done\":true}\n")
	sseFlush(w)
}

func handleOllamaModels(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"models":[{"name":"mock-llama:latest","model":"mock-llama:latest"}]}`))
}

func jsonString(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}
