package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/debug"
	"github.com/strom-dev/strom/pkg/provider"
)

// pageSize is the limit query parameter sent on each listing page.
const pageSize = "100"

// ListModels walks the cursor-paginated /v1/models listing. The loop
// follows last_id while has_more is set and terminates when the cursor is
// absent, even if the final page was non-empty.
func (p *Provider) ListModels(ctx context.Context) ([]api.ModelInfo, error) {
	if p.cfg.APIKey == "" {
		return nil, api.NewConfigError("anthropic: API key is required")
	}

	base := provider.ModelsURL(provider.KindAnthropic, p.cfg.BaseURL)

	var models []api.ModelInfo
	afterID := ""
	for {
		page, err := p.fetchPage(ctx, base, afterID)
		if err != nil {
			return nil, err
		}

		for _, m := range page.Data {
			if m.ID == "" {
				continue
			}
			models = append(models, api.ModelInfo{ID: m.ID, DisplayName: m.DisplayName})
		}

		if !page.HasMore || page.LastID == "" {
			break
		}
		afterID = page.LastID
	}

	debug.Log("models", "anthropic catalog fetched", "count", len(models))
	return api.SortModels(models), nil
}

// fetchPage retrieves a single listing page, optionally after a cursor.
func (p *Provider) fetchPage(ctx context.Context, base, afterID string) (*modelsPage, error) {
	query := url.Values{"limit": {pageSize}}
	if afterID != "" {
		query.Set("after_id", afterID)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+query.Encode(), nil)
	if err != nil {
		return nil, api.NewNetworkError(err)
	}
	setHeaders(httpReq, p.cfg.APIKey)

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, api.NewNetworkError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, api.NewUpstreamError(httpResp.StatusCode, readErrorBody(httpResp.Body))
	}

	var page modelsPage
	if err := json.NewDecoder(httpResp.Body).Decode(&page); err != nil {
		return nil, api.NewProtocolError("anthropic: parsing models response: " + err.Error())
	}
	return &page, nil
}
