package provider

import "fmt"

// Kind identifies an upstream provider variant. The set is closed: adapter
// selection is a compile-time-checked switch over these values, never a
// string comparison scattered across call sites.
type Kind string

const (
	KindOpenAI        Kind = "openai"
	KindAnthropic     Kind = "anthropic"
	KindGemini        Kind = "gemini"
	KindOllama        Kind = "ollama"
	KindGitHubCopilot Kind = "github_copilot"
	KindMistral       Kind = "mistral"
	KindGroq          Kind = "groq"
	KindDeepSeek      Kind = "deepseek"
	KindOpenRouter    Kind = "openrouter"
	KindXAI           Kind = "xai"

	// KindGeneric covers any OpenAI-compatible backend not listed above.
	KindGeneric Kind = "generic"
)

// Kinds lists every known provider kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindOpenAI, KindAnthropic, KindGemini, KindOllama,
		KindGitHubCopilot, KindMistral, KindGroq, KindDeepSeek,
		KindOpenRouter, KindXAI, KindGeneric,
	}
}

// ParseKind converts a configuration string into a Kind. Unknown strings are
// rejected so that a typo in a config file fails validation instead of
// silently hitting the wrong endpoint.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	switch k {
	case KindOpenAI, KindAnthropic, KindGemini, KindOllama,
		KindGitHubCopilot, KindMistral, KindGroq, KindDeepSeek,
		KindOpenRouter, KindXAI, KindGeneric:
		return k, nil
	}
	return "", fmt.Errorf("unknown provider kind %q", s)
}
