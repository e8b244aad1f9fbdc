package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/forniture-store/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from a provider (1MB)
const maxResponseSize = 1 << 20

// httpClient performs JSON GET requests against one provider
type httpClient struct {
	name      string
	baseURL   string
	userAgent string
	client    *http.Client
}

func newHTTPClient(name, baseURL string, cfg *Config) *httpClient {
	return &httpClient{
		name:      name,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

// getJSON fetches path and decodes the body into dest.
// 404 maps to ErrLookupNotFound; transport errors, other non-2xx statuses
// and undecodable bodies wrap ErrLookupUnavailable.
func (c *httpClient) getJSON(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", c.name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", integration.ErrLookupUnavailable, c.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: %s: failed to read response: %v", integration.ErrLookupUnavailable, c.name, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", integration.ErrLookupNotFound, c.name)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: %s: HTTP %d", integration.ErrLookupUnavailable, c.name, resp.StatusCode)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: %s: failed to parse response: %v", integration.ErrLookupUnavailable, c.name, err)
	}
	return nil
}
