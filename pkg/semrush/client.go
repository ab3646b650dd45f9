package semrush

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"semrush-go/pkg/logger"
	"semrush-go/pkg/storage"
	"semrush-go/pkg/utils"
)

const (
	DefaultAnalyticsURL   = "https://api.semrush.com/"
	DefaultBacklinksURL   = "https://api.semrush.com/analytics/v1/"
	DefaultTimeout        = 30 * time.Second
	DefaultConnectTimeout = 30 * time.Second
	DefaultRateLimit      = 10.0
	DefaultMaxRetries     = 2
	DefaultRetryDelay     = 500 * time.Millisecond

	userAgent = "semrush-go/1.0"
)

// Client talks to the SEMrush analytics and backlinks APIs.
// It is safe for concurrent use.
type Client struct {
	apiKey       string
	analyticsURL string
	backlinksURL string

	http *fasthttp.Client
	dial fasthttp.DialFunc

	timeout        atomic.Int64
	connectTimeout atomic.Int64

	cacheMu sync.RWMutex
	cache   storage.Cache

	retry   *Retry
	limiter *rate.Limiter
	log     *logger.Logger
	secure  *logger.SecurityLogger
}

// Option configures a Client
type Option func(*Client)

// WithAnalyticsURL overrides the analytics endpoint
func WithAnalyticsURL(u string) Option {
	return func(c *Client) { c.analyticsURL = u }
}

// WithBacklinksURL overrides the backlinks endpoint
func WithBacklinksURL(u string) Option {
	return func(c *Client) { c.backlinksURL = u }
}

// WithDialer replaces the network dialer, e.g. with an in-memory listener
func WithDialer(dial fasthttp.DialFunc) Option {
	return func(c *Client) { c.dial = dial }
}

// WithRetry sets the number of retries after the first attempt and the initial backoff
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(c *Client) { c.retry = NewRetry(maxRetries, delay) }
}

// WithRateLimit caps requests per second; rps <= 0 disables limiting
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithCache sets the response cache
func WithCache(cache storage.Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithTimeouts sets request and connect timeouts
func WithTimeouts(request, connect time.Duration) Option {
	return func(c *Client) {
		c.SetTimeout(request)
		c.SetConnectTimeout(connect)
	}
}

// WithLogger sets the component logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a client for apiKey
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:       apiKey,
		analyticsURL: DefaultAnalyticsURL,
		backlinksURL: DefaultBacklinksURL,
		retry:        NewRetry(DefaultMaxRetries, DefaultRetryDelay),
		limiter:      rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		log:          logger.GetLogger().WithField("component", "semrush_client"),
	}
	c.timeout.Store(int64(DefaultTimeout))
	c.connectTimeout.Store(int64(DefaultConnectTimeout))

	for _, opt := range opts {
		opt(c)
	}
	c.secure = logger.NewSecurityLogger(c.log)

	if err := validateBaseURL(c.analyticsURL); err != nil {
		return nil, fmt.Errorf("analytics url: %w", err)
	}
	if err := validateBaseURL(c.backlinksURL); err != nil {
		return nil, fmt.Errorf("backlinks url: %w", err)
	}

	c.http = &fasthttp.Client{
		Name:                userAgent,
		MaxConnsPerHost:     32,
		MaxIdleConnDuration: 90 * time.Second,
		Dial:                c.dialConn,
	}

	return c, nil
}

func validateBaseURL(u string) error {
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return fmt.Errorf("%w: base url %q must be http(s)", ErrInvalidOptions, u)
	}
	return nil
}

func (c *Client) dialConn(addr string) (net.Conn, error) {
	if c.dial != nil {
		return c.dial(addr)
	}
	return fasthttp.DialTimeout(addr, c.ConnectTimeout())
}

// SetCache replaces the response cache; nil disables caching
func (c *Client) SetCache(cache storage.Cache) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	c.cache = cache
}

// SetTimeout sets the per-attempt request timeout
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout.Store(int64(d))
	}
}

// SetConnectTimeout sets the TCP connect timeout
func (c *Client) SetConnectTimeout(d time.Duration) {
	if d > 0 {
		c.connectTimeout.Store(int64(d))
	}
}

// Timeout returns the per-attempt request timeout
func (c *Client) Timeout() time.Duration {
	return time.Duration(c.timeout.Load())
}

// ConnectTimeout returns the connect timeout
func (c *Client) ConnectTimeout() time.Duration {
	return time.Duration(c.connectTimeout.Load())
}

// GetDomainRanks fetches the domain overview
func (c *Client) GetDomainRanks(ctx context.Context, domain string, opts Options) (Result, error) {
	return c.fetch(ctx, ReportDomainRanks, domain, opts)
}

// GetDomainOrganic fetches organic search keywords of a domain
func (c *Client) GetDomainOrganic(ctx context.Context, domain string, opts Options) (Result, error) {
	return c.fetch(ctx, ReportDomainOrganic, domain, opts)
}

// GetDomainAdwords fetches paid search keywords of a domain
func (c *Client) GetDomainAdwords(ctx context.Context, domain string, opts Options) (Result, error) {
	return c.fetch(ctx, ReportDomainAdwords, domain, opts)
}

// GetDomainPlaSearchKeywords fetches product listing ad keywords of a domain
func (c *Client) GetDomainPlaSearchKeywords(ctx context.Context, domain string, opts Options) (Result, error) {
	return c.fetch(ctx, ReportDomainShopping, domain, opts)
}

// GetKeywordDifficulty fetches the difficulty index for phrases (";"-separated)
func (c *Client) GetKeywordDifficulty(ctx context.Context, phrase string, opts Options) (Result, error) {
	return c.fetch(ctx, ReportPhraseKDI, phrase, opts)
}

// GetBacklinksOverview fetches aggregate backlink counters
func (c *Client) GetBacklinksOverview(ctx context.Context, target string, opts Options) (Result, error) {
	return c.fetch(ctx, ReportBacklinksOverview, target, opts)
}

// GetBacklinks fetches individual backlinks
func (c *Client) GetBacklinks(ctx context.Context, target string, opts Options) (Result, error) {
	return c.fetch(ctx, ReportBacklinks, target, opts)
}

// GetBacklinksReferringDomains fetches domains linking to target
func (c *Client) GetBacklinksReferringDomains(ctx context.Context, target string, opts Options) (Result, error) {
	return c.fetch(ctx, ReportBacklinksRefDomains, target, opts)
}

// GetBacklinksReferringIPs fetches IPs linking to target
func (c *Client) GetBacklinksReferringIPs(ctx context.Context, target string, opts Options) (Result, error) {
	return c.fetch(ctx, ReportBacklinksRefIPs, target, opts)
}

// GetBacklinksIndexedPages fetches indexed pages of target
func (c *Client) GetBacklinksIndexedPages(ctx context.Context, target string, opts Options) (Result, error) {
	return c.fetch(ctx, ReportBacklinksPages, target, opts)
}

// Close releases idle connections
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *Client) buildURL(report ReportType, target string, opts Options) string {
	base := c.analyticsURL
	if report.isBacklinks() {
		base = c.backlinksURL
	}

	params := opts.params(report, target)
	params.Set("key", c.apiKey)

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + params.Encode()
}

func (c *Client) fetch(ctx context.Context, report ReportType, target string, opts Options) (Result, error) {
	if strings.TrimSpace(target) == "" {
		return nil, fmt.Errorf("%w: %s requires a target", ErrInvalidOptions, report)
	}
	if err := opts.validate(report); err != nil {
		return nil, err
	}

	requestURL := c.buildURL(report, target, opts)
	cacheKey := utils.CalculateRequestHash(utils.RedactQueryParam(requestURL, "key"))
	log := c.log.WithField("report", string(report))

	if body, ok := c.cachedBody(ctx, cacheKey); ok {
		result, err := parseResponse(body, opts.ExportColumns)
		if err == nil {
			requestsTotal.WithLabelValues(string(report), "cached").Inc()
			log.Debug("Serving report from cache")
			return result, nil
		}
		log.WithError(err).Warn("Discarding unparseable cached response")
	}

	start := time.Now()
	var body []byte
	err := c.retry.Execute(ctx, func() error {
		b, err := c.do(ctx, requestURL)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	requestDuration.WithLabelValues(string(report)).Observe(time.Since(start).Seconds())

	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.NothingFound() {
			requestsTotal.WithLabelValues(string(report), "empty").Inc()
			log.Debug("Provider returned no rows")
			return Result{}, nil
		}

		requestsTotal.WithLabelValues(string(report), "error").Inc()
		c.secure.SafeError("Report request failed", err, map[string]interface{}{
			"request_url": requestURL,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil, fmt.Errorf("%s request failed: %w", report, err)
	}

	result, err := parseResponse(body, opts.ExportColumns)
	if err != nil {
		requestsTotal.WithLabelValues(string(report), "error").Inc()
		return nil, fmt.Errorf("%s response: %w", report, err)
	}

	c.storeBody(ctx, cacheKey, body)
	requestsTotal.WithLabelValues(string(report), "success").Inc()
	c.secure.SafeDebug("Report request completed", map[string]interface{}{
		"request_url": requestURL,
		"rows":        len(result),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return result, nil
}

// do performs a single attempt and returns a copy of the body
func (c *Client) do(ctx context.Context, requestURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "text/plain, text/csv")

	deadline := time.Now().Add(c.Timeout())
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &StatusError{
			StatusCode: resp.StatusCode(),
			Body:       truncate(string(resp.Body()), 200),
		}
	}

	body := append([]byte(nil), resp.Body()...)
	if apiErr, ok := parseAPIError(body); ok {
		return nil, apiErr
	}
	return body, nil
}

func (c *Client) currentCache() storage.Cache {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()
	return c.cache
}

func (c *Client) cachedBody(ctx context.Context, key string) ([]byte, bool) {
	cache := c.currentCache()
	if cache == nil {
		return nil, false
	}

	body, ok, err := cache.Get(ctx, key)
	switch {
	case err != nil:
		cacheLookups.WithLabelValues("error").Inc()
		c.log.WithError(err).Warn("Response cache lookup failed")
		return nil, false
	case !ok:
		cacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	cacheLookups.WithLabelValues("hit").Inc()
	return body, true
}

func (c *Client) storeBody(ctx context.Context, key string, body []byte) {
	cache := c.currentCache()
	if cache == nil {
		return
	}
	if err := cache.Set(ctx, key, body); err != nil {
		c.log.WithError(err).Warn("Failed to store response in cache")
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
