package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/wordsphere/pkg/buildinfo"
	"github.com/matzehuels/wordsphere/pkg/cache"
	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/errors"
	"github.com/matzehuels/wordsphere/pkg/httputil"
	wsio "github.com/matzehuels/wordsphere/pkg/io"
	"github.com/matzehuels/wordsphere/pkg/observability"
)

// DefaultBaseURL is the address of a locally running analysis service.
const DefaultBaseURL = "http://127.0.0.1:8000"

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 8 << 20
	analyzePath    = "/analyze"
)

// Client calls the analysis service.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	attempts int
	delay    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithCache caches successful results under keyer.AnalysisKey(url).
func WithCache(ch cache.Cache, keyer cache.Keyer, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = ch
		c.keyer = keyer
		c.ttl = ttl
	}
}

// WithRetry overrides the number of attempts and the initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// NewClient creates a client for the service at baseURL. An empty baseURL
// selects [DefaultBaseURL].
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: defaultTimeout},
		cache:    cache.NewNullCache(),
		keyer:    cache.NewDefaultKeyer(),
		attempts: 3,
		delay:    time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.keyer == nil {
		c.keyer = cache.NewDefaultKeyer()
	}
	if c.cache == nil {
		c.cache = cache.NewNullCache()
	}
	return c
}

// BaseURL returns the service address.
func (c *Client) BaseURL() string { return c.baseURL }

type analyzeRequest struct {
	URL string `json:"url"`
}

type analyzeResponse struct {
	Words []cloud.WordItem `json:"words"`
}

// Analyze returns the weighted keywords of the article at articleURL.
// Cached results are returned without contacting the service unless
// refresh is set.
func (c *Client) Analyze(ctx context.Context, articleURL string, refresh bool) ([]cloud.WordItem, error) {
	articleURL = strings.TrimSpace(articleURL)
	if err := errors.ValidateURL(articleURL); err != nil {
		return nil, err
	}

	key := c.keyer.AnalysisKey(articleURL)
	if !refresh {
		if words, ok := c.cached(ctx, key); ok {
			return words, nil
		}
	}

	var words []cloud.WordItem
	err := httputil.Retry(ctx, c.attempts, c.delay, func() error {
		var err error
		words, err = c.post(ctx, articleURL)
		return err
	})
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(words); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl); err == nil {
			observability.Cache().OnCacheSet(ctx, "analysis", len(data))
		}
	}
	return words, nil
}

func (c *Client) cached(ctx context.Context, key string) ([]cloud.WordItem, bool) {
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, "analysis")
		return nil, false
	}
	var words []cloud.WordItem
	if err := json.Unmarshal(data, &words); err != nil {
		observability.Cache().OnCacheMiss(ctx, "analysis")
		return nil, false
	}
	words, err = wsio.CleanWords(words)
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, "analysis")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "analysis")
	return words, true
}

func (c *Client) post(ctx context.Context, articleURL string) ([]cloud.WordItem, error) {
	body, err := json.Marshal(analyzeRequest{URL: articleURL})
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + analyzePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "bad analysis service URL %q", c.baseURL)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	host, path := hostPath(endpoint)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodPost, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodPost, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "analysis service unreachable")}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodPost, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var out analyzeResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidWords, err, "decode analysis response")
	}
	words, err := wsio.CleanWords(out.Words)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidWords, err, "analysis response")
	}
	return words, nil
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "article not found")
	case code == http.StatusTooManyRequests:
		retry := httputil.RetryAfter(resp.Header, time.Now())
		return &errors.RateLimitedError{RetryAfter: int(retry / time.Second), Message: "analysis service rate limit"}
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return errors.New(errors.ErrCodeInvalidURL, "analysis service rejected the URL (status %d)", code)
	case code >= 500:
		return &httputil.RetryableError{
			Err:   errors.New(errors.ErrCodeNetwork, "analysis service error (status %d)", code),
			After: httputil.RetryAfter(resp.Header, time.Now()),
		}
	default:
		return errors.New(errors.ErrCodeNetwork, "unexpected status %d", code)
	}
}

func hostPath(raw string) (string, string) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", raw
	}
	return u.Host, u.Path
}

// String implements fmt.Stringer for log output.
func (c *Client) String() string {
	return fmt.Sprintf("analysis.Client(%s)", c.baseURL)
}
