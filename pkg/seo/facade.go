package seo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"semrush-go/pkg/logger"
	"semrush-go/pkg/semrush"
	"semrush-go/pkg/storage"
)

const (
	// DefaultLimit is the page size offered by the CLI
	DefaultLimit          = 5
	DefaultTargetType     = semrush.TargetDomain
	DefaultIndexedSort    = "domains_num_desc"
	keywordSort           = "nq_desc"
	DefaultTimeout        = 30 * time.Second
	DefaultConnectTimeout = 30 * time.Second
)

var (
	// ErrNoData is returned when a single-record report comes back empty
	ErrNoData = errors.New("seo: no data returned")
	// ErrInvalidRequest is returned for malformed caller input
	ErrInvalidRequest = errors.New("seo: invalid request")
)

// ReportClient is the subset of the provider client the facade depends on
type ReportClient interface {
	GetDomainRanks(ctx context.Context, domain string, opts semrush.Options) (semrush.Result, error)
	GetDomainOrganic(ctx context.Context, domain string, opts semrush.Options) (semrush.Result, error)
	GetDomainAdwords(ctx context.Context, domain string, opts semrush.Options) (semrush.Result, error)
	GetDomainPlaSearchKeywords(ctx context.Context, domain string, opts semrush.Options) (semrush.Result, error)
	GetKeywordDifficulty(ctx context.Context, phrase string, opts semrush.Options) (semrush.Result, error)
	GetBacklinksOverview(ctx context.Context, target string, opts semrush.Options) (semrush.Result, error)
	GetBacklinks(ctx context.Context, target string, opts semrush.Options) (semrush.Result, error)
	GetBacklinksReferringDomains(ctx context.Context, target string, opts semrush.Options) (semrush.Result, error)
	GetBacklinksReferringIPs(ctx context.Context, target string, opts semrush.Options) (semrush.Result, error)
	GetBacklinksIndexedPages(ctx context.Context, target string, opts semrush.Options) (semrush.Result, error)
}

// ErrorPolicy decides whether keyword collection failures surface to the caller
type ErrorPolicy int

const (
	// ErrorPolicyTolerant logs keyword collection failures and returns empty maps
	ErrorPolicyTolerant ErrorPolicy = iota
	// ErrorPolicyStrict returns every upstream error
	ErrorPolicyStrict
)

func (p ErrorPolicy) String() string {
	switch p {
	case ErrorPolicyTolerant:
		return "tolerant"
	case ErrorPolicyStrict:
		return "strict"
	}
	return fmt.Sprintf("ErrorPolicy(%d)", int(p))
}

// ParseErrorPolicy accepts "tolerant" or "strict"; empty means tolerant
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tolerant":
		return ErrorPolicyTolerant, nil
	case "strict":
		return ErrorPolicyStrict, nil
	}
	return ErrorPolicyTolerant, fmt.Errorf("unknown error policy %q", s)
}

// Config holds what New needs to build its own provider client
type Config struct {
	APIKey         string
	Timeout        time.Duration
	ConnectTimeout time.Duration

	// Cache overrides the in-memory response cache built from CacheSize and CacheTTL
	Cache        storage.Cache
	CacheSize    int
	CacheTTL     time.Duration
	DisableCache bool

	ClientOptions []semrush.Option
}

// DefaultConfig returns a config with 30 second timeouts and an in-memory cache
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:         apiKey,
		Timeout:        DefaultTimeout,
		ConnectTimeout: DefaultConnectTimeout,
		CacheSize:      storage.DefaultMemoryCacheSize,
	}
}

// Facade exposes one method per report and returns flat typed records
type Facade struct {
	client  ReportClient
	regions Regions
	policy  ErrorPolicy
	log     *logger.Logger
	closers []func() error
}

// Option configures a Facade
type Option func(*Facade)

// WithErrorPolicy sets how keyword collection failures are reported
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(f *Facade) { f.policy = p }
}

// WithLogger sets the facade logger
func WithLogger(l *logger.Logger) Option {
	return func(f *Facade) { f.log = l }
}

// WithRegions replaces the region table
func WithRegions(r Regions) Option {
	return func(f *Facade) { f.regions = r }
}

// New builds a provider client from cfg and wraps it
func New(cfg Config, opts ...Option) (*Facade, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}

	var closers []func() error
	cache := cfg.Cache
	if cache == nil && !cfg.DisableCache {
		size := cfg.CacheSize
		if size <= 0 {
			size = storage.DefaultMemoryCacheSize
		}
		mem := storage.NewMemoryCacheWithTTL(size, cfg.CacheTTL)
		closers = append(closers, mem.Close)
		cache = mem
	}

	clientOpts := []semrush.Option{
		semrush.WithCache(cache),
		semrush.WithTimeouts(cfg.Timeout, cfg.ConnectTimeout),
	}
	client, err := semrush.NewClient(cfg.APIKey, append(clientOpts, cfg.ClientOptions...)...)
	if err != nil {
		for _, c := range closers {
			_ = c()
		}
		return nil, fmt.Errorf("failed to create semrush client: %w", err)
	}

	f := NewWithClient(client, opts...)
	f.closers = append(closers, client.Close)
	return f, nil
}

// NewWithClient wraps an existing client
func NewWithClient(client ReportClient, opts ...Option) *Facade {
	f := &Facade{
		client:  client,
		regions: defaultRegions,
		policy:  ErrorPolicyTolerant,
		log:     logger.GetLogger().WithField("component", "seo_facade"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ErrorPolicy returns the active error policy
func (f *Facade) ErrorPolicy() ErrorPolicy {
	return f.policy
}

// Close releases the client and any cache New created
func (f *Facade) Close() error {
	var errs []error
	for i := len(f.closers) - 1; i >= 0; i-- {
		if err := f.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	f.closers = nil
	return errors.Join(errs...)
}

func (f *Facade) database(region string) (semrush.Database, error) {
	if region == "" {
		region = DefaultRegion
	}
	return f.regions.Resolve(region)
}

// pagination resolves the provider display_limit/display_offset pair.
// The provider counts the limit from the first row, so it covers the offset too.
func pagination(limit, offset int) (int, int, error) {
	if limit < 0 || offset < 0 {
		return 0, 0, fmt.Errorf("%w: negative pagination (limit=%d offset=%d)", ErrInvalidRequest, limit, offset)
	}
	return limit + offset, offset, nil
}

// tolerate swallows a keyword collection failure under the tolerant policy
func (f *Facade) tolerate(op, target string, err error) bool {
	if f.policy != ErrorPolicyTolerant {
		return false
	}
	if errors.Is(err, ErrUnknownRegion) || errors.Is(err, ErrInvalidRequest) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	logger.NewSecurityLogger(f.log).SafeWarn("Keyword collection failed, returning empty result", map[string]interface{}{
		"operation": op,
		"target":    target,
		"error":     err.Error(),
	})
	return true
}
