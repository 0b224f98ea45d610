// Package anthropic implements the provider adapter for the Anthropic
// Messages API: typed SSE event lifecycle, x-api-key header auth, and a
// cursor-paginated model catalog.
package anthropic
