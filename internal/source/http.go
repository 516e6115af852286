package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/karigor/search-service/pkg/httpclient"
	"github.com/karigor/search-service/pkg/pagination"
)

// serviceClient is the shared plumbing for the per-service HTTP stores. Each
// downstream call goes through the retrying client wrapped in a circuit
// breaker, so one slow or failing owner service cannot take the search
// surface down with it.
type serviceClient struct {
	baseURL string
	name    string
	client  *httpclient.CircuitBreakerClient
}

func newServiceClient(baseURL, name string, logger *slog.Logger) *serviceClient {
	base := httpclient.New(httpclient.DefaultConfig())
	return &serviceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		name:    name,
		client:  httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig(name), logger),
	}
}

// getJSON fetches a single resource into target. A 404 returns (false, nil)
// so callers can treat missing records as soft misses.
func (c *serviceClient) getJSON(ctx context.Context, path string, target any) (bool, error) {
	resp, err := c.client.Get(ctx, c.baseURL+path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", c.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, httpclient.ParseResponseError(resp, c.name)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return false, fmt.Errorf("%s: decode response: %w", c.name, err)
	}
	return true, nil
}

// listJSON fetches one page of a collection into target.
func (c *serviceClient) listJSON(ctx context.Context, path string, page, perPage int, target any) error {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("per_page", fmt.Sprintf("%d", perPage))

	resp, err := c.client.Get(ctx, c.baseURL+path+"?"+q.Encode())
	if err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, c.name)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.name, err)
	}
	return nil
}

// envelope mirrors the standard response wrapper the owner services emit.
type envelope[T any] struct {
	Data T `json:"data"`
}

// pageEnvelope mirrors the paginated list wrapper: the shared pagination
// result nested inside the standard data envelope.
type pageEnvelope[T any] struct {
	Data pagination.Result[T] `json:"data"`
}
