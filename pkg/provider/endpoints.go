package provider

import "strings"

// Default base URLs per provider kind, used when the Config carries no
// override. Overrides replace only the base; path suffixes are fixed.
const (
	defaultOpenAIBase     = "https://api.openai.com/v1"
	defaultMistralBase    = "https://api.mistral.ai/v1"
	defaultGroqBase       = "https://api.groq.com/openai/v1"
	defaultDeepSeekBase   = "https://api.deepseek.com"
	defaultOpenRouterBase = "https://openrouter.ai/api/v1"
	defaultXAIBase        = "https://api.x.ai/v1"
	defaultAnthropicBase  = "https://api.anthropic.com"
	defaultGeminiBase     = "https://generativelanguage.googleapis.com"
	defaultOllamaBase     = "http://localhost:11434"
	defaultCopilotBase    = "https://api.individual.githubcopilot.com"
)

// DefaultBaseURL returns the hard-coded default base URL for a provider
// kind. An unrecognized kind falls back to the OpenAI-compatible shape.
func DefaultBaseURL(kind Kind) string {
	switch kind {
	case KindMistral:
		return defaultMistralBase
	case KindGroq:
		return defaultGroqBase
	case KindDeepSeek:
		return defaultDeepSeekBase
	case KindOpenRouter:
		return defaultOpenRouterBase
	case KindXAI:
		return defaultXAIBase
	case KindAnthropic:
		return defaultAnthropicBase
	case KindGemini:
		return defaultGeminiBase
	case KindOllama:
		return defaultOllamaBase
	case KindGitHubCopilot:
		return defaultCopilotBase
	default:
		return defaultOpenAIBase
	}
}

// BaseURL resolves the effective base URL: the override when non-empty
// (trailing slashes trimmed), the kind's default otherwise. Pure function,
// no I/O, cannot fail.
func BaseURL(kind Kind, override string) string {
	if override != "" {
		return strings.TrimRight(override, "/")
	}
	return DefaultBaseURL(kind)
}

// ChatURL resolves the fully-qualified chat generation endpoint. Gemini
// encodes the model id into the path and requests SSE framing via the alt
// query flag; every other kind has a fixed path.
func ChatURL(kind Kind, override, model string) string {
	base := BaseURL(kind, override)
	switch kind {
	case KindAnthropic:
		return base + "/v1/messages"
	case KindGemini:
		return base + "/v1beta/models/" + model + ":streamGenerateContent?alt=sse"
	case KindOllama:
		return base + "/api/chat"
	default:
		return base + "/chat/completions"
	}
}

// ModelsURL resolves the model-listing endpoint. Pagination and auth query
// parameters are appended by the fetchers, not here.
func ModelsURL(kind Kind, override string) string {
	base := BaseURL(kind, override)
	switch kind {
	case KindAnthropic:
		return base + "/v1/models"
	case KindGemini:
		return base + "/v1beta/models"
	case KindOllama:
		return base + "/api/tags"
	default:
		return base + "/models"
	}
}
