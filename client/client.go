// Package client reads the components API over HTTP.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sengkeat-dex/Tokenize/models"
)

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the server at baseURL, e.g. http://localhost:3030.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Components(ctx context.Context) ([]models.Component, error) {
	return c.fetch(ctx, "/api/components")
}

func (c *Client) ComponentsByType(ctx context.Context, mainType string) ([]models.Component, error) {
	return c.fetch(ctx, "/api/components/"+url.PathEscape(mainType))
}

func (c *Client) ComponentsBySubType(ctx context.Context, mainType, subType string) ([]models.Component, error) {
	return c.fetch(ctx, "/api/components/"+url.PathEscape(mainType)+"/"+url.PathEscape(subType))
}

func (c *Client) fetch(ctx context.Context, path string) ([]models.Component, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var body models.Response[[]models.Component]
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("HTTP %d: failed to decode response: %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || !body.Success {
		msg := http.StatusText(resp.StatusCode)
		if body.Message != nil {
			msg = *body.Message
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, msg)
	}
	if body.Data == nil {
		return []models.Component{}, nil
	}
	return body.Data, nil
}

// TypeCount is the number of components sharing a main type.
type TypeCount struct {
	MainType string `json:"main_type"`
	Count    int    `json:"count"`
}

// CountByMainType tallies components per main type, ordered by main type.
func CountByMainType(components []models.Component) []TypeCount {
	counts := make(map[string]int)
	for _, component := range components {
		counts[component.MainType]++
	}

	result := make([]TypeCount, 0, len(counts))
	for mainType, n := range counts {
		result = append(result, TypeCount{MainType: mainType, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MainType < result[j].MainType })
	return result
}
