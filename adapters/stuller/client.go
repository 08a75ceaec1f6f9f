// Package stuller is the client for the Stuller product API: the live
// pricing collaborator and the catalog source for sizing stock.
//
// The API is a POST-based product search with HTTP basic auth. All
// failure modes here surface as classified errors; the pricing core
// never sees a raw transport error.
package stuller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"bangler/internal/config"
	"bangler/internal/errors"
	"bangler/internal/logging"
)

// Client talks to the Stuller product API
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client

	// circuit breaker: opens after maxFailures consecutive failures,
	// resets on any success
	mu          sync.Mutex
	failures    int
	maxFailures int
}

// NewClient creates a client from configuration
func NewClient(cfg config.StullerConfig) (*Client, error) {
	if !cfg.HasCredentials() {
		return nil, errors.Config("Stuller credentials required", nil).
			WithSuggestion("Set STULLER_USERNAME and STULLER_PASSWORD.")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxFailures := cfg.MaxFailures
	if maxFailures <= 0 {
		maxFailures = 5
	}

	return &Client{
		baseURL:     cfg.BaseURL,
		username:    cfg.Username,
		password:    cfg.Password,
		httpClient:  &http.Client{Timeout: timeout},
		maxFailures: maxFailures,
	}, nil
}

// searchRequest is the product search body. Zero-valued fields are
// omitted so the API sees only the constraints we set.
type searchRequest struct {
	Filter                 []string         `json:"Filter,omitempty"`
	Include                []string         `json:"Include,omitempty"`
	SKU                    []string         `json:"SKU,omitempty"`
	AdvancedProductFilters []advancedFilter `json:"AdvancedProductFilters,omitempty"`
	PageSize               int              `json:"PageSize,omitempty"`
	NextPage               string           `json:"NextPage,omitempty"`
}

type advancedFilter struct {
	Name   string   `json:"Name"`
	Values []string `json:"Values"`
}

// searchResponse is the product search reply
type searchResponse struct {
	Products              []Product `json:"Products"`
	NextPage              string    `json:"NextPage"`
	TotalNumberOfProducts int       `json:"TotalNumberOfProducts"`
}

// searchProducts posts one search request and decodes the reply
func (c *Client) searchProducts(ctx context.Context, req searchRequest) (*searchResponse, error) {
	if err := c.checkBreaker(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Network("cannot encode product search", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/products", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Network("cannot build product search request", err)
	}
	httpReq.SetBasicAuth(c.username, c.password)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", "bangler/1.0")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.recordFailure()
		return nil, errors.Network("product search request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.recordFailure()
		return nil, errors.Network("authentication failed", nil).
			WithDetail("status=%d", resp.StatusCode).
			WithSuggestion("Check the Stuller credentials.")
	case resp.StatusCode == http.StatusTooManyRequests:
		c.recordFailure()
		return nil, errors.Network("API rate limit exceeded", nil).
			WithDetail("status=%d", resp.StatusCode)
	case resp.StatusCode >= 400:
		c.recordFailure()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Network("product search returned an error", nil).
			WithDetail("status=%d body=%s", resp.StatusCode, detail)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.recordFailure()
		return nil, errors.Network("cannot decode product search response", err)
	}

	c.recordSuccess()
	logging.Debug("product search",
		zap.Int("products", len(result.Products)),
		zap.Int("total", result.TotalNumberOfProducts),
		zap.Duration("took", time.Since(start)))
	return &result, nil
}

func (c *Client) checkBreaker() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failures >= c.maxFailures {
		return errors.Network(
			fmt.Sprintf("circuit breaker open after %d failures", c.failures), nil).
			WithSuggestion("Wait for the supplier API to recover, then restart.")
	}
	return nil
}

func (c *Client) recordFailure() {
	c.mu.Lock()
	c.failures++
	c.mu.Unlock()
}

func (c *Client) recordSuccess() {
	c.mu.Lock()
	c.failures = 0
	c.mu.Unlock()
}
