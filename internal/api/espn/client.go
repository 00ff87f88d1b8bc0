package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/omarshaarawi/gridiron/internal/config"
	"github.com/omarshaarawi/gridiron/internal/metrics"
)

const maxBodyBytes = 10 << 20

// Cache stores raw 2xx response bodies keyed by request URL. It is an
// optimization only; NopCache must give identical results.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, value []byte)
}

type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (NopCache) Put(context.Context, string, []byte)         {}

type Client struct {
	httpClient *http.Client
	Config     config.ESPNAPI
	cache      Cache
	metrics    *metrics.Metrics
}

type Option func(*Client)

func WithCache(cache Cache) Option {
	return func(c *Client) {
		if cache != nil {
			c.cache = cache
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewClient(cfg config.ESPNAPI, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		Config:     cfg,
		cache:      NopCache{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a single GET against endpoint and decodes the JSON body into
// result. Every failure comes back as a *FetchError.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string, result interface{}) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return &FetchError{Kind: KindNetwork, URL: endpoint, Err: fmt.Errorf("error parsing url: %w", err)}
	}

	q := u.Query()
	for key, value := range params {
		q.Set(key, value)
	}
	u.RawQuery = q.Encode()
	key := u.String()
	label := endpointLabel(u)

	if body, ok := c.cache.Get(ctx, key); ok {
		if err := json.Unmarshal(body, result); err == nil {
			c.metrics.CacheHit()
			return nil
		}
	}
	c.metrics.CacheMiss()

	start := time.Now()
	body, err := c.fetch(ctx, key)
	if err != nil {
		if fe, ok := AsFetchError(err); ok {
			c.metrics.ObserveRequest(label, string(fe.Kind), time.Since(start))
		}
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		c.metrics.ObserveRequest(label, string(KindParse), time.Since(start))
		return &FetchError{Kind: KindParse, URL: key, Err: fmt.Errorf("error decoding response: %w", err)}
	}
	c.metrics.ObserveRequest(label, "ok", time.Since(start))

	c.cache.Put(ctx, key, body)
	return nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: rawURL, Err: fmt.Errorf("error creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: rawURL, Err: fmt.Errorf("error making request: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &FetchError{Kind: KindNotFound, URL: rawURL, StatusCode: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &FetchError{Kind: KindHTTPStatus, URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: rawURL, Err: fmt.Errorf("error reading response: %w", err)}
	}
	return body, nil
}

// endpointLabel keeps metric cardinality bounded to a fixed set of names.
func endpointLabel(u *url.URL) string {
	base := path.Base(u.Path)
	switch base {
	case "scoreboard", "summary", "teams", "athletes":
		return base
	}
	if path.Base(path.Dir(u.Path)) == "teams" {
		return "team"
	}
	return "other"
}
