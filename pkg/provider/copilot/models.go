package copilot

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/debug"
	"github.com/strom-dev/strom/pkg/provider"
)

// modelDenylist filters ids that are not chat models from the Copilot
// catalog.
var modelDenylist = []string{"embed", "inference"}

// ListModels exchanges for an API token and fetches the Copilot model
// catalog. The upstream has shipped two listing shapes over time: the
// OpenAI-compatible {"data":[...]} wrapper and a bare JSON array. Both are
// accepted, and both run through the denylist before sorting.
func (p *Provider) ListModels(ctx context.Context) ([]api.ModelInfo, error) {
	tok, err := p.apiToken(ctx)
	if err != nil {
		return nil, err
	}

	base := tok.BaseURL
	if p.cfg.BaseURL != "" {
		base = p.cfg.BaseURL
	}

	url := provider.ModelsURL(provider.KindGitHubCopilot, base)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, api.NewNetworkError(err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+tok.Token)
	httpReq.Header.Set("Copilot-Integration-Id", integrationIDHeader)
	httpReq.Header.Set("Editor-Version", editorVersionHeader)

	httpClient := &http.Client{Timeout: 120 * time.Second}
	httpResp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, api.NewNetworkError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 8192))
		return nil, api.NewUpstreamError(httpResp.StatusCode, string(body))
	}

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, api.NewNetworkError(err)
	}

	ids, err := parseModelIDs(body)
	if err != nil {
		return nil, err
	}

	var models []api.ModelInfo
	for _, id := range ids {
		if id == "" || denylisted(id) {
			continue
		}
		models = append(models, api.ModelInfo{ID: id, DisplayName: id})
	}

	debug.Log("models", "copilot catalog fetched", "count", len(models))
	return api.SortModels(models), nil
}

type modelEntry struct {
	ID string `json:"id"`
}

// parseModelIDs tries the {"data":[...]} wrapper first, then a bare array.
func parseModelIDs(body []byte) ([]string, error) {
	var wrapped struct {
		Data []modelEntry `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && len(wrapped.Data) > 0 {
		return entryIDs(wrapped.Data), nil
	}

	var bare []modelEntry
	if err := json.Unmarshal(body, &bare); err == nil {
		return entryIDs(bare), nil
	}

	return nil, api.NewProtocolError("github_copilot: models response matches neither known listing shape")
}

func entryIDs(entries []modelEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func denylisted(id string) bool {
	for _, sub := range modelDenylist {
		if strings.Contains(id, sub) {
			return true
		}
	}
	return false
}
