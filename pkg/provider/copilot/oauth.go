package copilot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/debug"
	"github.com/strom-dev/strom/pkg/observability"
)

// GitHub OAuth endpoints and the fixed device-flow parameters. The client id
// is injectable configuration; this is the published first-party default.
const (
	DefaultClientID = "Iv1.b507a08c87ecfe98"

	deviceCodeEndpoint  = "https://github.com/login/device/code"
	accessTokenEndpoint = "https://github.com/login/oauth/access_token"
	exchangeEndpoint    = "https://api.github.com/copilot_internal/v2/token"

	deviceScope     = "read:user"
	deviceGrantType = "urn:ietf:params:oauth:grant-type:device_code"

	userAgent = "Strom/1.0"
)

// OAuthError is the structured failure returned by the token poll endpoint.
// Its message renders as "{code}:{description}" so callers can branch on the
// code prefix.
type OAuthError struct {
	Code        string
	Description string
}

// Error implements the error interface.
func (e *OAuthError) Error() string {
	return e.Code + ":" + e.Description
}

// Pending reports that the user has not yet authorized; poll again after
// the interval.
func (e *OAuthError) Pending() bool {
	return e.Code == "authorization_pending"
}

// SlowDown reports that the caller should increase its polling interval.
func (e *OAuthError) SlowDown() bool {
	return e.Code == "slow_down"
}

// Terminal reports that polling can never succeed (expired_token,
// access_denied).
func (e *OAuthError) Terminal() bool {
	return !e.Pending() && !e.SlowDown()
}

// APIToken is the result of the Copilot token exchange: a short-lived
// bearer token, its expiry, and the API base URL to use with it.
type APIToken struct {
	Token     string
	ExpiresAt int64
	BaseURL   string
}

// OAuthClient performs the three GitHub calls of the Copilot preamble. Each
// method is a standalone idempotent operation: exactly one HTTP round trip,
// no internal retries, no state held between calls. Polling cadence is the
// caller's responsibility.
type OAuthClient struct {
	clientID   string
	httpClient *http.Client

	// Endpoint overrides for tests.
	deviceCodeURL  string
	accessTokenURL string
	exchangeURL    string
}

// NewOAuthClient creates an OAuth client. An empty clientID selects the
// published default.
func NewOAuthClient(clientID string) *OAuthClient {
	if clientID == "" {
		clientID = DefaultClientID
	}
	return &OAuthClient{
		clientID:       clientID,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		deviceCodeURL:  deviceCodeEndpoint,
		accessTokenURL: accessTokenEndpoint,
		exchangeURL:    exchangeEndpoint,
	}
}

// StartDeviceFlow requests a device and user code pair. The caller shows
// the user code and verification URI to the user, then polls.
func (c *OAuthClient) StartDeviceFlow(ctx context.Context) (*api.DeviceFlowState, error) {
	form := url.Values{
		"client_id": {c.clientID},
		"scope":     {deviceScope},
	}

	var state api.DeviceFlowState
	if err := c.postForm(ctx, c.deviceCodeURL, form, &state); err != nil {
		observability.OAuthRequestsTotal.WithLabelValues("start", "error").Inc()
		return nil, err
	}
	if state.DeviceCode == "" {
		observability.OAuthRequestsTotal.WithLabelValues("start", "error").Inc()
		return nil, api.NewProtocolError("copilot: device code response missing device_code")
	}

	observability.OAuthRequestsTotal.WithLabelValues("start", "done").Inc()
	debug.Log("oauth", "device flow started", "interval", state.Interval, "expires_in", state.ExpiresIn)
	return &state, nil
}

// PollToken performs one poll attempt against the token endpoint. On
// success it returns the long-lived GitHub access token; otherwise the
// error is an *OAuthError classified by its code.
func (c *OAuthClient) PollToken(ctx context.Context, deviceCode string) (string, error) {
	form := url.Values{
		"client_id":   {c.clientID},
		"device_code": {deviceCode},
		"grant_type":  {deviceGrantType},
	}

	var result struct {
		AccessToken      string `json:"access_token"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := c.postForm(ctx, c.accessTokenURL, form, &result); err != nil {
		observability.OAuthRequestsTotal.WithLabelValues("poll", "error").Inc()
		return "", err
	}

	if result.Error != "" {
		observability.OAuthRequestsTotal.WithLabelValues("poll", "error").Inc()
		return "", &OAuthError{Code: result.Error, Description: result.ErrorDescription}
	}
	if result.AccessToken == "" {
		observability.OAuthRequestsTotal.WithLabelValues("poll", "error").Inc()
		return "", api.NewProtocolError("copilot: token response carried neither access_token nor error")
	}

	observability.OAuthRequestsTotal.WithLabelValues("poll", "done").Inc()
	return result.AccessToken, nil
}

// ExchangeToken trades the long-lived GitHub token for a short-lived
// Copilot API token. GitHub's "token" authorization scheme is required
// here, not "Bearer". The response may name the API base to use; absent
// that, the hard-coded default applies.
func (c *OAuthClient) ExchangeToken(ctx context.Context, githubToken string) (*APIToken, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.exchangeURL, nil)
	if err != nil {
		return nil, api.NewNetworkError(err)
	}
	httpReq.Header.Set("Authorization", "token "+githubToken)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		observability.OAuthRequestsTotal.WithLabelValues("exchange", "error").Inc()
		return nil, api.NewNetworkError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		observability.OAuthRequestsTotal.WithLabelValues("exchange", "error").Inc()
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 8192))
		return nil, api.NewUpstreamError(httpResp.StatusCode, string(body))
	}

	var result struct {
		Token     string `json:"token"`
		ExpiresAt int64  `json:"expires_at"`
		Endpoints struct {
			API string `json:"api"`
		} `json:"endpoints"`
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&result); err != nil {
		observability.OAuthRequestsTotal.WithLabelValues("exchange", "error").Inc()
		return nil, api.NewProtocolError("copilot: parsing token exchange response: " + err.Error())
	}
	if result.Token == "" {
		observability.OAuthRequestsTotal.WithLabelValues("exchange", "error").Inc()
		return nil, api.NewProtocolError("copilot: token exchange response missing token")
	}

	baseURL := strings.TrimRight(result.Endpoints.API, "/")
	if baseURL == "" {
		baseURL = defaultAPIBase
	}

	observability.OAuthRequestsTotal.WithLabelValues("exchange", "done").Inc()
	debug.Log("oauth", "token exchanged", "expires_at", result.ExpiresAt, "base_url", baseURL)
	return &APIToken{Token: result.Token, ExpiresAt: result.ExpiresAt, BaseURL: baseURL}, nil
}

// postForm sends a form-encoded POST to a GitHub OAuth endpoint and decodes
// the JSON response into out.
func (c *OAuthClient) postForm(ctx context.Context, endpoint string, form url.Values, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return api.NewNetworkError(err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return api.NewNetworkError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 8192))
		return api.NewUpstreamError(httpResp.StatusCode, string(body))
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return api.NewProtocolError(fmt.Sprintf("copilot: parsing %s response: %s", endpoint, err.Error()))
	}
	return nil
}
