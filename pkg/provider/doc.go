// Package provider defines the adapter contract shared by every upstream
// chat backend: the closed Kind enumeration, the per-call Config, the
// Adapter interface, the endpoint resolver, and the SSE scanner used by the
// server-sent-event adapters.
//
// Each variant lives in its own subpackage (openaicompat, anthropic, gemini,
// ollama, openrouter, copilot) and is selected by the engine dispatcher.
package provider
