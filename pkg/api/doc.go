// Package api defines the normalized vocabulary shared by every provider
// adapter: chat messages, the Started/Delta/Done/Error stream event model,
// model catalog entries, the error taxonomy, and the OAuth device-flow
// state handed back to callers.
//
// Adapters translate their upstream wire protocol into these types; callers
// never see a provider-specific shape.
package api
