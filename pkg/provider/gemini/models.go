package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/debug"
	"github.com/strom-dev/strom/pkg/provider"
)

const pageSize = "100"

// generateContentMethod is the capability a listed model must declare to be
// usable for chat.
const generateContentMethod = "generateContent"

// ListModels walks the page-token-paginated /v1beta/models listing. Only
// entries supporting generateContent are kept; the "models/" id prefix is
// stripped, and the input token limit is carried through as the context
// window. The loop terminates when nextPageToken is absent, even if the
// final page was non-empty.
func (p *Provider) ListModels(ctx context.Context) ([]api.ModelInfo, error) {
	if p.cfg.APIKey == "" {
		return nil, api.NewConfigError("gemini: API key is required")
	}

	base := provider.ModelsURL(provider.KindGemini, p.cfg.BaseURL)

	var models []api.ModelInfo
	pageToken := ""
	for {
		page, err := p.fetchPage(ctx, base, pageToken)
		if err != nil {
			return nil, err
		}

		for _, m := range page.Models {
			if !slices.Contains(m.SupportedGenerationMethods, generateContentMethod) {
				continue
			}
			id := strings.TrimPrefix(m.Name, "models/")
			if id == "" {
				continue
			}
			info := api.ModelInfo{ID: id, DisplayName: m.DisplayName}
			if m.InputTokenLimit > 0 {
				info.ContextWindow = m.InputTokenLimit
			}
			models = append(models, info)
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	debug.Log("models", "gemini catalog fetched", "count", len(models))
	return api.SortModels(models), nil
}

// fetchPage retrieves a single listing page, optionally continuing from a
// page token. The key rides in the query string, matching the chat call.
func (p *Provider) fetchPage(ctx context.Context, base, pageToken string) (*modelsPage, error) {
	query := url.Values{
		"pageSize": {pageSize},
		"key":      {p.cfg.APIKey},
	}
	if pageToken != "" {
		query.Set("pageToken", pageToken)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+query.Encode(), nil)
	if err != nil {
		return nil, api.NewNetworkError(err)
	}

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
		return nil, api.NewProtocolError("gemini: parsing models response: " + err.Error())
	}
	return &page, nil
}
