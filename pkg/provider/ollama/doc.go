// Package ollama implements the provider adapter for a local Ollama server.
// The chat stream is newline-delimited JSON rather than server-sent events,
// so the adapter splits the raw byte stream on line boundaries itself,
// buffering partial trailing lines across reads. No authentication.
package ollama
