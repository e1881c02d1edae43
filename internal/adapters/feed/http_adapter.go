package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/code4imabari/kyukyu-annai/internal/domain/entities"
	"github.com/code4imabari/kyukyu-annai/internal/domain/providers"
	apperrors "github.com/code4imabari/kyukyu-annai/pkg/errors"
)

const (
	feedPath           = "/data.json"
	defaultHTTPTimeout = 15 * time.Second
)

// HTTPAdapter implements FeedProvider against the published JSON feed.
type HTTPAdapter struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPAdapter creates a new feed HTTP adapter.
func NewHTTPAdapter(baseURL string) providers.FeedProvider {
	return NewHTTPAdapterWithOptions(baseURL, nil)
}

// NewHTTPAdapterWithOptions allows overriding the HTTP client (used for tests).
func NewHTTPAdapterWithOptions(baseURL string, httpClient *http.Client) providers.FeedProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &HTTPAdapter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Fetch retrieves and parses the full feed document. Transport failures and
// non-success statuses surface to the caller untouched; there is no retry.
func (a *HTTPAdapter) Fetch(ctx context.Context) (*entities.Feed, error) {
	reqURL := a.baseURL + feedPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("feed request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewExternalError(fmt.Sprintf("feed request returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to read feed response", err)
	}

	feed, err := entities.ParseFeed(body)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to parse feed", err)
	}

	return feed, nil
}
