package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.polygon.io"

// PolygonProvider fetches daily aggregates from the Polygon.io REST API.
type PolygonProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewPolygonProvider creates a provider with a bounded request timeout.
func NewPolygonProvider(apiKey string) *PolygonProvider {
	return &PolygonProvider{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewPolygonProviderWithBaseURL is used by tests to point at a stub server.
func NewPolygonProviderWithBaseURL(apiKey, baseURL string) *PolygonProvider {
	p := NewPolygonProvider(apiKey)
	p.baseURL = baseURL
	return p
}

// DailyCloses returns split-adjusted daily closing prices, oldest first.
func (p *PolygonProvider) DailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]float64, error) {
	endpoint := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/1/day/%s/%s",
		p.baseURL, symbol, from.Format("2006-01-02"), to.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("marketdata: create request: %w", err)
	}
	q := req.URL.Query()
	q.Add("apiKey", p.apiKey)
	q.Add("adjusted", "true")
	q.Add("sort", "asc")
	q.Add("limit", "50000")
	req.URL.RawQuery = q.Encode()

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("marketdata: fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("marketdata: %s: status %d: %s", symbol, resp.StatusCode, string(body))
	}

	var result struct {
		Results []struct {
			C float64 `json:"c"`
		} `json:"results"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("marketdata: decode %s: %w", symbol, err)
	}
	if result.Status != "OK" && result.Status != "DELAYED" {
		return nil, fmt.Errorf("marketdata: %s: status %q", symbol, result.Status)
	}

	closes := make([]float64, 0, len(result.Results))
	for _, r := range result.Results {
		closes = append(closes, r.C)
	}
	return closes, nil
}
