package openaicompat

import (
	"strings"

	"github.com/strom-dev/strom/pkg/provider"
)

// denylists holds per-kind substrings that mark non-chat models in the
// /models listing (embeddings, speech, image, moderation endpoints).
var denylists = map[provider.Kind][]string{
	provider.KindOpenAI:  {"embed", "tts", "dall-e", "whisper", "moderation", "babbage", "davinci"},
	provider.KindMistral: {"embed"},
	provider.KindGroq:    {"whisper", "guard", "playai-tts", "distil-whisper"},
	provider.KindXAI:     {"imagine"},
}

// denylisted reports whether a model id should be filtered from the catalog
// for the given kind. Fine-tune ids (ft: prefix) are excluded for openai.
func denylisted(kind provider.Kind, id string) bool {
	if kind == provider.KindOpenAI && strings.HasPrefix(id, "ft:") {
		return true
	}
	for _, sub := range denylists[kind] {
		if strings.Contains(id, sub) {
			return true
		}
	}
	return false
}
