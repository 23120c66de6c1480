// Package xivapi wraps the remote item directory. Two calls are
// consumed: a name search and a fetch by id, each yielding the first
// result or nothing. Malformed results are absorbed here and never
// propagate past the boundary.
package xivapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tatarubot/tataru/internal/domain"
	"github.com/tatarubot/tataru/internal/logger"
	"github.com/tatarubot/tataru/internal/metrics"
)

const (
	searchURLFormat = "https://beta.xivapi.com/api/1/search?sheets=Item&query=%%2BName~%%22%s%%22+%%2BItemSearchCategory%%3E%%3D1&language=en&limit=30&fields=Name,ItemSearchCategory,Icon"
	itemURLFormat   = "https://xivapi.com/item/%d"

	endpointSearch = "search"
	endpointItem   = "item"

	requestTimeout = 10 * time.Second
)

// Client is the HTTP client for the item directory.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a directory client with a request timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// SearchByName searches the directory by item name and returns the
// first parsed result, or nil when nothing usable came back.
func (c *Client) SearchByName(ctx context.Context, name string) (*domain.Item, error) {
	results, err := c.get(ctx, endpointSearch, fmt.Sprintf(searchURLFormat, url.QueryEscape(name)))
	if err != nil {
		return nil, err
	}
	return c.firstItem(ctx, results)
}

// FetchByID fetches a single item record by numeric id and returns the
// parsed result, or nil when nothing usable came back.
func (c *Client) FetchByID(ctx context.Context, id int) (*domain.Item, error) {
	results, err := c.get(ctx, endpointItem, fmt.Sprintf(itemURLFormat, id))
	if err != nil {
		return nil, err
	}
	return c.firstItem(ctx, results)
}

// SearchAll returns every parsed result of a name search, skipping
// records that fail to decode. Used by the search command, which
// upserts everything it can show.
func (c *Client) SearchAll(ctx context.Context, name string) ([]domain.Item, error) {
	results, err := c.get(ctx, endpointSearch, fmt.Sprintf(searchURLFormat, url.QueryEscape(name)))
	if err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	items := make([]domain.Item, 0, len(results))
	for _, raw := range results {
		item, err := decodeItem(raw)
		if err != nil {
			log.Warn("Skipping malformed directory result", "error", err)
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}

// get performs the request and unwraps the results envelope. A body
// that is a bare record (the by-id endpoint) is treated as a single
// result.
func (c *Client) get(ctx context.Context, endpoint, reqURL string) ([]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RemoteCalls.WithLabelValues(endpoint, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	metrics.RemoteCalls.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory response: %w", err)
	}

	var envelope struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Results != nil {
		return envelope.Results, nil
	}
	return []json.RawMessage{body}, nil
}

// firstItem decodes the first result. A missing or malformed record is
// logged and reported as "no result", not as a failure.
func (c *Client) firstItem(ctx context.Context, results []json.RawMessage) (*domain.Item, error) {
	if len(results) == 0 {
		return nil, nil
	}
	item, err := decodeItem(results[0])
	if err != nil {
		logger.FromContext(ctx).Warn("Malformed directory result", "error", err)
		return nil, nil
	}
	return item, nil
}
