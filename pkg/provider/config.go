package provider

// Config is the resolved provider configuration for a single call. It is
// immutable once handed to an adapter; concurrent calls each carry their own
// copy.
type Config struct {
	// Kind selects the adapter variant.
	Kind Kind

	// APIKey is the provider credential. For github_copilot this is the
	// long-lived GitHub OAuth token obtained through the device flow; the
	// short-lived API token is exchanged internally per call.
	APIKey string

	// BaseURL optionally replaces the provider's default base URL. The path
	// suffix is never affected by the override.
	BaseURL string

	// Model is the target model id for chat generation.
	Model string
}
