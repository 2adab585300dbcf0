package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/sevenpixels/xivcraft/internal/domain"
)

// LegacyClient fetches the legacy simplified-name dataset: a single JSON
// document mapping item id to simplified name, served over plain HTTP.
// It is consulted only when the primary store's simplified-name table
// yields nothing for a query.
type LegacyClient struct {
	url  string
	http *http.Client
}

// NewLegacyClient creates a client for the legacy dataset URL.
func NewLegacyClient(url string, timeout time.Duration) *LegacyClient {
	return &LegacyClient{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads the whole dataset.
func (c *LegacyClient) Fetch(ctx context.Context) (map[int]string, error) {
	if c.url == "" {
		return map[int]string{}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build legacy request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: legacy dataset returned %d", domain.ErrStoreUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read legacy dataset: %v", domain.ErrStoreUnavailable, err)
	}

	names := make(map[int]string)
	gjson.ParseBytes(body).ForEach(func(key, value gjson.Result) bool {
		id, convErr := strconv.Atoi(key.String())
		if convErr != nil {
			return true // skip malformed keys
		}
		names[id] = value.String()
		return true
	})
	return names, nil
}
