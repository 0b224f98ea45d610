// Package copilot implements the provider adapter for GitHub Copilot.
//
// Copilot has no chat protocol of its own: a three-step OAuth preamble
// (device flow start, token poll, token exchange) yields a short-lived API
// token plus a base URL, which feed the OpenAI-compatible adapter for both
// chat streaming and model listing. Exchanged tokens are cached until just
// before expiry.
package copilot
