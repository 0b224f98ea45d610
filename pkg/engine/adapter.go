package engine

import (
	"fmt"

	"github.com/strom-dev/strom/pkg/provider"
	"github.com/strom-dev/strom/pkg/provider/anthropic"
	"github.com/strom-dev/strom/pkg/provider/copilot"
	"github.com/strom-dev/strom/pkg/provider/gemini"
	"github.com/strom-dev/strom/pkg/provider/ollama"
	"github.com/strom-dev/strom/pkg/provider/openaicompat"
	"github.com/strom-dev/strom/pkg/provider/openrouter"
)

// newAdapter builds the adapter for the configured provider kind. The switch
// is exhaustive over provider.Kinds(); an unknown kind here means the config
// bypassed validation.
func newAdapter(cfg provider.Config) (provider.Adapter, error) {
	switch cfg.Kind {
	case provider.KindAnthropic:
		return anthropic.New(cfg)
	case provider.KindGemini:
		return gemini.New(cfg)
	case provider.KindOllama:
		return ollama.New(cfg)
	case provider.KindGitHubCopilot:
		return copilot.New(cfg)
	case provider.KindOpenRouter:
		return openrouter.New(cfg)
	case provider.KindOpenAI, provider.KindMistral, provider.KindGroq,
		provider.KindDeepSeek, provider.KindXAI, provider.KindGeneric:
		return openaicompat.New(cfg)
	}
	return nil, fmt.Errorf("engine: no adapter for provider kind %q", cfg.Kind)
}
