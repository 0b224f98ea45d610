// Package openaicompat implements the provider adapter for OpenAI-compatible
// Chat Completions backends: openai, mistral, groq, deepseek, xai, and any
// generic compatible endpoint. The openrouter and copilot adapters delegate
// their chat streaming here as well.
package openaicompat
