// Package breed validates cat breeds against TheCatAPI breed registry.
package breed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
)

const (
	DefaultURL     = "https://api.thecatapi.com/v1/breeds"
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 4 << 20
)

// ErrMalformed is returned when the registry answers with something other than a JSON array.
var ErrMalformed = errors.New("malformed breed payload")

type Client struct {
	url      string
	client   *http.Client
	cache    Cache
	cacheTTL time.Duration
	group    singleflight.Group
}

type Option func(*Client)

// WithCache serves breed lists from cache for ttl after a successful fetch.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func NewClient(url string, timeout time.Duration, opts ...Option) *Client {
	if url == "" {
		url = DefaultURL
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Admit reports whether breed appears in the registry. When the registry
// cannot be consulted the breed is admitted.
func (c *Client) Admit(ctx context.Context, breed string) bool {
	names, err := c.Breeds(ctx)
	if err != nil {
		slog.Warn("breed registry unavailable, admitting breed", "breed", breed, "error", err)
		return true
	}

	if !Contains(names, breed) {
		slog.Warn("breed not found in registry", "breed", breed)
		return false
	}

	return true
}

// Contains matches breed against names ignoring case and surrounding whitespace.
func Contains(names []string, breed string) bool {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(breed))

	for _, n := range names {
		if fold.String(strings.TrimSpace(n)) == want {
			return true
		}
	}

	return false
}

// Breeds returns the registry's breed names, from cache when possible.
func (c *Client) Breeds(ctx context.Context) ([]string, error) {
	if c.cache != nil {
		names, ok, err := c.cache.Get(ctx)
		if err != nil {
			slog.Warn("reading breed cache", "error", err)
		} else if ok {
			return names, nil
		}
	}

	v, err, _ := c.group.Do("breeds", func() (any, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		return nil, err
	}

	names := v.([]string)

	if c.cache != nil {
		if err := c.cache.Set(ctx, names, c.cacheTTL); err != nil {
			slog.Warn("writing breed cache", "error", err)
		}
	}

	return names, nil
}

func (c *Client) fetch(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching breeds: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching breeds: unexpected status %d", resp.StatusCode)
	}

	return decodeNames(io.LimitReader(resp.Body, maxBodyBytes))
}

// decodeNames reads a JSON array of breed objects. Entries that are not
// objects or lack a string name are skipped.
func decodeNames(r io.Reader) ([]string, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if raw == nil {
		return nil, fmt.Errorf("%w: null payload", ErrMalformed)
	}

	names := make([]string, 0, len(raw))

	for _, item := range raw {
		var entry struct {
			Name *string `json:"name"`
		}

		if err := json.Unmarshal(item, &entry); err != nil || entry.Name == nil {
			continue
		}

		names = append(names, *entry.Name)
	}

	return names, nil
}
