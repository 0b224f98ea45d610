// Package gemini implements the provider adapter for the Google Gemini
// generateContent API: query-parameter key auth, assistant-to-model role
// remapping, and a page-token-paginated model catalog.
package gemini
