// Package market implements the REST client for the upstream exchange's
// market-data API (Coinbase-Exchange-compatible). Quote requests never
// talk to the exchange directly; they consume this client through the
// service layer's Exchange interface.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/efreitasn/bookquote/internal/domain"
	"github.com/efreitasn/bookquote/internal/metrics"
)

// Client fetches tradable products and order-book snapshots. No
// authentication is required for public market data.
type Client struct {
	baseURL    string
	level      int
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// NewClient creates a market-data client.
//
// baseURL is the API root, e.g. "https://api.exchange.coinbase.com".
// level selects book aggregation (level 2 = top 50 aggregated levels).
func NewClient(baseURL string, level int, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: baseURL,
		level:   level,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: m,
	}
}

// apiProduct is the subset of the upstream product object we consume.
type apiProduct struct {
	ID string `json:"id"`
}

// apiBook is the raw level-2 book payload. Levels arrive as
// [price, size, ...] tuples with extra fields we ignore.
type apiBook struct {
	Bids [][]any `json:"bids"`
	Asks [][]any `json:"asks"`
}

// ListProducts returns the identifiers of all tradable pairs. Called
// once per process by the pair registry.
func (c *Client) ListProducts(ctx context.Context) ([]string, error) {
	var products []apiProduct
	if err := c.getJSON(ctx, "list_products", "/products", &products); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		if p.ID != "" {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

// GetOrderBook fetches a fresh book snapshot for the given product.
func (c *Client) GetOrderBook(ctx context.Context, productID string) (domain.OrderBook, error) {
	const op = "get_order_book"

	path := fmt.Sprintf("/products/%s/book?level=%d", url.PathEscape(productID), c.level)

	var raw apiBook
	if err := c.getJSON(ctx, op, path, &raw); err != nil {
		return domain.OrderBook{}, err
	}

	bids, err := parseLevels(raw.Bids)
	if err != nil {
		return domain.OrderBook{}, &domain.UpstreamError{Op: op, Err: fmt.Errorf("bids: %w", err)}
	}
	asks, err := parseLevels(raw.Asks)
	if err != nil {
		return domain.OrderBook{}, &domain.UpstreamError{Op: op, Err: fmt.Errorf("asks: %w", err)}
	}

	return domain.NewOrderBook(bids, asks), nil
}

func parseLevels(raw [][]any) ([]domain.PriceLevel, error) {
	levels := make([]domain.PriceLevel, 0, len(raw))
	for i, tuple := range raw {
		lvl, err := domain.ParsePriceLevel(tuple)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i, err)
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

// getJSON performs a GET against the API and decodes the response body
// into v. Numbers are decoded as json.Number so price and size strings
// survive with exact precision. All failures are wrapped as
// UpstreamError; the client never retries.
func (c *Client) getJSON(ctx context.Context, op, path string, v any) error {
	start := time.Now()
	err := c.doGetJSON(ctx, path, v)
	c.metrics.ObserveUpstream(op, time.Since(start), err)
	if err != nil {
		return &domain.UpstreamError{Op: op, Err: err}
	}
	return nil
}

func (c *Client) doGetJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
