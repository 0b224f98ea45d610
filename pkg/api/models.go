package api

import "sort"

// ModelInfo describes one entry in a provider's model catalog.
type ModelInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`

	// ContextWindow is the maximum input token count, 0 when unknown.
	ContextWindow int `json:"context_window,omitempty"`
}

// SortModels deduplicates the list by ID (first occurrence wins) and returns
// it sorted ascending by ID. Every catalog fetcher runs its result through
// this before returning.
func SortModels(models []ModelInfo) []ModelInfo {
	seen := make(map[string]bool, len(models))
	out := make([]ModelInfo, 0, len(models))
	for _, m := range models {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
