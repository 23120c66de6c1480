// Package universalis wraps the market-price aggregation API. Results
// are cached briefly so repeated price checks for the same item do not
// refetch.
package universalis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tatarubot/tataru/internal/logger"
	"github.com/tatarubot/tataru/internal/metrics"
)

const (
	aggregatedURLFormat = "https://universalis.app/api/v2/aggregated/%s/%d"

	requestTimeout = 10 * time.Second
	cacheSize      = 256
	cacheTTL       = 5 * time.Minute

	endpointAggregated = "aggregated"
)

// PricePoint is one listing price scoped to a world, datacenter or
// region.
type PricePoint struct {
	Price   float64 `json:"price"`
	WorldID int     `json:"worldId"`
}

// MinListing carries the cheapest current listing at each scope. Any
// scope may be absent.
type MinListing struct {
	World  *PricePoint `json:"world,omitempty"`
	DC     *PricePoint `json:"dc,omitempty"`
	Region *PricePoint `json:"region,omitempty"`
}

// QualityData is the per-quality (normal/high) price block.
type QualityData struct {
	MinListing MinListing `json:"minListing"`
}

// HasData reports whether any listing exists for this quality.
func (q QualityData) HasData() bool {
	return q.MinListing.World != nil || q.MinListing.DC != nil || q.MinListing.Region != nil
}

// WorldUploadTime records when a world's market data was last uploaded.
type WorldUploadTime struct {
	WorldID   int   `json:"worldId"`
	Timestamp int64 `json:"timestamp"` // milliseconds
}

// MarketData is the aggregated market answer for one item.
type MarketData struct {
	ItemID           int               `json:"itemId"`
	NQ               QualityData       `json:"nq"`
	HQ               QualityData       `json:"hq"`
	WorldUploadTimes []WorldUploadTime `json:"worldUploadTimes"`
}

// OldestUpload returns the world id and time of the stalest upload, or
// false when no upload times are present.
func (m *MarketData) OldestUpload() (int, time.Time, bool) {
	if len(m.WorldUploadTimes) == 0 {
		return 0, time.Time{}, false
	}
	oldest := m.WorldUploadTimes[0]
	for _, t := range m.WorldUploadTimes[1:] {
		if t.Timestamp < oldest.Timestamp {
			oldest = t
		}
	}
	return oldest.WorldID, time.UnixMilli(oldest.Timestamp), true
}

// Client fetches aggregated market data for a fixed home server.
type Client struct {
	server     string
	httpClient *http.Client
	cache      *expirable.LRU[int, *MarketData]
}

// NewClient creates a market client for the given server name.
func NewClient(server string) *Client {
	return &Client{
		server:     server,
		httpClient: &http.Client{Timeout: requestTimeout},
		cache:      expirable.NewLRU[int, *MarketData](cacheSize, nil, cacheTTL),
	}
}

// Server returns the configured home server name.
func (c *Client) Server() string {
	return c.server
}

// Fetch returns aggregated market data for an item, served from the
// cache when fresh.
func (c *Client) Fetch(ctx context.Context, itemID int) (*MarketData, error) {
	if data, ok := c.cache.Get(itemID); ok {
		metrics.MarketCacheHits.Inc()
		return data, nil
	}
	metrics.MarketCacheMisses.Inc()

	log := logger.FromContext(ctx)
	reqURL := fmt.Sprintf(aggregatedURLFormat, c.server, itemID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RemoteCalls.WithLabelValues(endpointAggregated, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("market request failed: %w", err)
	}
	defer resp.Body.Close()

	metrics.RemoteCalls.WithLabelValues(endpointAggregated, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read market response: %w", err)
	}

	data, err := parseMarketData(body)
	if err != nil {
		return nil, err
	}

	log.Debug("Market data fetched", "item_id", itemID, "server", c.server)
	c.cache.Add(itemID, data)
	return data, nil
}

// parseMarketData unwraps both observed envelopes: a multi-item
// response carries an items array, a single-item response carries the
// results array at the top level.
func parseMarketData(body []byte) (*MarketData, error) {
	var multi struct {
		Items []struct {
			Results []MarketData `json:"results"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &multi); err == nil && len(multi.Items) > 0 && len(multi.Items[0].Results) > 0 {
		return &multi.Items[0].Results[0], nil
	}

	var single struct {
		Results []MarketData `json:"results"`
	}
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, fmt.Errorf("failed to decode market response: %w", err)
	}
	if len(single.Results) == 0 {
		return nil, fmt.Errorf("market response contained no results")
	}
	return &single.Results[0], nil
}
