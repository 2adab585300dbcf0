// Package store speaks the remote catalog's REST query dialect. It returns
// loosely-typed rows; the catalog gateway normalizes them into domain types.
package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/sevenpixels/xivcraft/internal/domain"
	"github.com/sevenpixels/xivcraft/internal/metrics"
)

const (
	// DefaultPageSize is the page size for full scans.
	DefaultPageSize = 1000
	// MaxPredicateListSize is the store's limit on "value in (...)" lists.
	MaxPredicateListSize = 1000
)

// Client issues queries against the remote catalog store.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a store client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// GetByID fetches a single row by equality on the id column.
// The second return value is false when the row does not exist.
func (c *Client) GetByID(ctx context.Context, table string, id int) (gjson.Result, bool, error) {
	params := url.Values{}
	params.Set("id", "eq."+strconv.Itoa(id))
	params.Set("limit", "1")
	rows, err := c.query(ctx, table, params)
	if err != nil {
		return gjson.Result{}, false, err
	}
	if len(rows) == 0 {
		return gjson.Result{}, false, nil
	}
	return rows[0], true, nil
}

// MatchAll returns rows whose column matches every pattern, combined with
// AND. Patterns use the store's wildcard syntax ("*foo*") and match
// case-insensitively.
func (c *Client) MatchAll(ctx context.Context, table, column string, patterns []string) ([]gjson.Result, error) {
	params := url.Values{}
	for _, p := range patterns {
		params.Add(column, "ilike."+p)
	}
	return c.query(ctx, table, params)
}

// SelectIn fetches rows whose column value is in values. The caller is
// responsible for chunking to MaxPredicateListSize.
func (c *Client) SelectIn(ctx context.Context, table, column string, values []int) ([]gjson.Result, error) {
	if len(values) > MaxPredicateListSize {
		return nil, fmt.Errorf("%w: in-list of %d exceeds %d", domain.ErrInvalidInput, len(values), MaxPredicateListSize)
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	params := url.Values{}
	params.Set(column, "in.("+strings.Join(parts, ",")+")")
	return c.query(ctx, table, params)
}

// Page fetches one page of a full scan.
func (c *Client) Page(ctx context.Context, table string, offset, limit int) ([]gjson.Result, error) {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("order", "id.asc")
	return c.query(ctx, table, params)
}

// ContainsIngredient returns recipe rows whose ingredient list contains the
// item, using the store's structural containment predicate. Stores that
// reject the predicate yield domain.ErrPredicateUnsupported so callers can
// fall back to a scan.
func (c *Client) ContainsIngredient(ctx context.Context, table string, itemID int) ([]gjson.Result, error) {
	params := url.Values{}
	params.Set("ingredients", fmt.Sprintf(`cs.[{"item_id":%d}]`, itemID))
	return c.query(ctx, table, params)
}

func (c *Client) query(ctx context.Context, table string, params url.Values) ([]gjson.Result, error) {
	endpoint := c.baseURL + "/" + table + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", table, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			metrics.StoreRequestsTotal.WithLabelValues(table, metrics.OutcomeCancelled).Inc()
			return nil, ctx.Err()
		}
		metrics.StoreRequestsTotal.WithLabelValues(table, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.StoreRequestsTotal.WithLabelValues(table, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrStoreUnavailable, err)
	}

	switch {
	case resp.StatusCode >= 500:
		metrics.StoreRequestsTotal.WithLabelValues(table, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("%w: %s returned %d", domain.ErrStoreUnavailable, table, resp.StatusCode)
	case resp.StatusCode == http.StatusBadRequest:
		metrics.StoreRequestsTotal.WithLabelValues(table, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("%w: %s rejected query", domain.ErrPredicateUnsupported, table)
	case resp.StatusCode >= 400:
		metrics.StoreRequestsTotal.WithLabelValues(table, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("query %s: unexpected status %d", table, resp.StatusCode)
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		metrics.StoreRequestsTotal.WithLabelValues(table, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("query %s: response is not a row array", table)
	}
	metrics.StoreRequestsTotal.WithLabelValues(table, metrics.OutcomeOK).Inc()
	return parsed.Array(), nil
}
