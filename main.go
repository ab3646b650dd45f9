package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"semrush-go/internal/config"
	"semrush-go/pkg/logger"
	"semrush-go/pkg/semrush"
	"semrush-go/pkg/seo"
	"semrush-go/pkg/storage"
)

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// reportRequest carries the CLI arguments of one report run
type reportRequest struct {
	Report     string
	Target     string
	Region     string
	Limit      int
	Offset     int
	Brands     []string
	Filter     string
	TargetType string
	Sort       string
}

func main() {
	// Global panic recovery to prevent application crash
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "CRITICAL ERROR: application panic recovered: %v\n", r)
			os.Exit(1)
		}
	}()

	var (
		report     = flag.String("report", getEnvOrDefault("SEMRUSH_REPORT", ""), "Report to run (env: SEMRUSH_REPORT)")
		target     = flag.String("target", getEnvOrDefault("SEMRUSH_TARGET", ""), "Domain, URL or phrase (env: SEMRUSH_TARGET)")
		region     = flag.String("region", getEnvOrDefault("SEMRUSH_REGION", ""), "Region code, e.g. en-us (env: SEMRUSH_REGION)")
		limit      = flag.Int("limit", getEnvIntOrDefault("SEMRUSH_LIMIT", seo.DefaultLimit), "Rows to return (env: SEMRUSH_LIMIT)")
		offset     = flag.Int("offset", getEnvIntOrDefault("SEMRUSH_OFFSET", 0), "Rows to skip (env: SEMRUSH_OFFSET)")
		brands     = flag.String("brands", getEnvOrDefault("SEMRUSH_BRANDS", ""), "Comma-separated brands to exclude (env: SEMRUSH_BRANDS)")
		filter     = flag.String("filter", getEnvOrDefault("SEMRUSH_FILTER", ""), "Display filter clauses sign|field|operator|value (env: SEMRUSH_FILTER)")
		targetType = flag.String("target-type", getEnvOrDefault("SEMRUSH_TARGET_TYPE", string(seo.DefaultTargetType)), "Backlinks target type: root_domain, domain or url")
		sortBy     = flag.String("sort", getEnvOrDefault("SEMRUSH_SORT", ""), "Indexed pages sort order (default: domains_num_desc)")
		configPath = flag.String("config", getEnvOrDefault("SEMRUSH_CONFIG", ""), "Config file path; empty uses env only (env: SEMRUSH_CONFIG)")
		strict     = flag.Bool("strict", getEnvBoolOrDefault("SEMRUSH_STRICT", false), "Return keyword report errors instead of empty results")
		initConfig = flag.Bool("init-config", false, "Write a default config file to -config (or semrush.yaml) and exit")
		help       = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	if *initConfig {
		path := *configPath
		if path == "" {
			path = "semrush.yaml"
		}
		if err := config.WriteDefault(path); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Default config written to %s. Set api.key or SEMRUSH_API_KEY before running a report.\n", path)
		return
	}

	if *report == "" || *target == "" {
		fmt.Fprintln(os.Stderr, "ERROR: -report and -target are required.")
		fmt.Fprintln(os.Stderr, "")
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.NewManager().Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	logger.SetLogger(appLogger)
	log := appLogger.WithField("component", "main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *strict {
		cfg.Facade.ErrorPolicy = seo.ErrorPolicyStrict.String()
	}

	facade, closeCache, err := buildFacade(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to build SEMrush facade")
	}
	defer func() {
		if err := facade.Close(); err != nil {
			log.WithError(err).Warn("Failed to close facade cleanly")
		}
		if err := closeCache(); err != nil {
			log.WithError(err).Warn("Failed to close cache cleanly")
		}
	}()

	req := reportRequest{
		Report:     *report,
		Target:     *target,
		Region:     *region,
		Limit:      *limit,
		Offset:     *offset,
		Brands:     splitList(*brands),
		Filter:     *filter,
		TargetType: *targetType,
		Sort:       *sortBy,
	}
	if req.Region == "" {
		req.Region = cfg.Facade.DefaultRegion
	}

	logger.GetSecurityLogger().SafeInfo("Running report", map[string]interface{}{
		"report":       req.Report,
		"region":       req.Region,
		"api_key":      cfg.API.Key,
		"cache":        cfg.Cache.Backend,
		"error_policy": cfg.Facade.ErrorPolicy,
	})

	result, err := runReport(ctx, facade, req)
	if err != nil {
		log.WithError(err).Error("Report failed")
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.WithError(err).Error("Failed to encode report")
		os.Exit(1)
	}
	fmt.Println(string(out))
}

// buildFacade wires the configured cache backend and client settings into a facade.
// The returned func closes a cache the facade does not own.
func buildFacade(ctx context.Context, cfg *config.Config) (*seo.Facade, func() error, error) {
	policy, err := seo.ParseErrorPolicy(cfg.Facade.ErrorPolicy)
	if err != nil {
		return nil, nil, err
	}

	facadeCfg := seo.Config{
		APIKey:         cfg.API.Key,
		Timeout:        cfg.API.Timeout,
		ConnectTimeout: cfg.API.ConnectTimeout,
		CacheSize:      cfg.Cache.Size,
		CacheTTL:       cfg.Cache.TTL,
		ClientOptions: []semrush.Option{
			semrush.WithAnalyticsURL(cfg.API.AnalyticsURL),
			semrush.WithBacklinksURL(cfg.API.BacklinksURL),
			semrush.WithRetry(cfg.API.MaxRetries, cfg.API.RetryDelay),
			semrush.WithRateLimit(cfg.API.RateLimit, cfg.API.RateBurst),
		},
	}

	closeCache := func() error { return nil }
	switch cfg.Cache.Backend {
	case config.CacheNone:
		facadeCfg.DisableCache = true
	case config.CacheRedis:
		redisCache, err := storage.NewRedisCacheFromConfig(ctx, storage.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			return nil, nil, err
		}
		facadeCfg.Cache = redisCache
		closeCache = redisCache.Close
	}

	facade, err := seo.New(facadeCfg, seo.WithErrorPolicy(policy))
	if err != nil {
		_ = closeCache()
		return nil, nil, err
	}
	return facade, closeCache, nil
}

// runReport dispatches req to the matching facade method
func runReport(ctx context.Context, f *seo.Facade, req reportRequest) (interface{}, error) {
	tt := semrush.TargetType(req.TargetType)

	switch req.Report {
	case "overview":
		return f.DomainOverview(ctx, req.Target, req.Region)
	case "organic", "paid", "pla":
		filters, err := parseFilters(req.Filter)
		if err != nil {
			return nil, err
		}
		switch req.Report {
		case "organic":
			return f.CollectDomainOrganic(ctx, req.Target, req.Brands, req.Limit, req.Offset, req.Region, filters)
		case "paid":
			return f.CollectDomainPaid(ctx, req.Target, req.Brands, req.Limit, req.Offset, req.Region, filters)
		default:
			return f.CollectDomainPlaSearchKeywords(ctx, req.Target, req.Brands, req.Limit, req.Offset, req.Region, filters)
		}
	case "difficulty":
		return f.CollectKeywordDifficulty(ctx, req.Target, req.Region)
	case "backlinks-overview":
		return f.BacklinksOverview(ctx, req.Target, tt)
	case "backlinks":
		return f.Backlinks(ctx, req.Target, tt, req.Limit, req.Offset, req.Filter)
	case "referring-domains":
		return f.ReferringDomains(ctx, req.Target, tt, req.Limit, req.Offset)
	case "referring-ips":
		return f.ReferringIPs(ctx, req.Target, tt, req.Limit, req.Offset)
	case "indexed-pages":
		return f.IndexedPages(ctx, req.Target, tt, req.Limit, req.Sort)
	}
	return nil, fmt.Errorf("unknown report %q", req.Report)
}

// parseFilters reads sign|field|operator|value clauses joined by "|"
func parseFilters(raw string) ([]seo.Filter, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, "|")
	if len(parts)%4 != 0 {
		return nil, errors.New("filter must be sign|field|operator|value clauses")
	}
	filters := make([]seo.Filter, 0, len(parts)/4)
	for i := 0; i < len(parts); i += 4 {
		filters = append(filters, seo.Filter{
			Sign:     parts[i],
			Field:    parts[i+1],
			Operator: parts[i+2],
			Value:    parts[i+3],
		})
	}
	return filters, nil
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func printUsage() {
	fmt.Println("semrush-go: SEMrush report runner")
	fmt.Println("")
	fmt.Println("USAGE:")
	fmt.Println("    ./semrush-go -report <name> -target <domain> [OPTIONS]")
	fmt.Println("    ./semrush-go -init-config [-config path]")
	fmt.Println("")
	fmt.Println("REPORTS:")
	fmt.Println("    overview             Domain overview (domain_ranks)")
	fmt.Println("    organic              Organic keywords ranked in the top 20")
	fmt.Println("    paid                 Paid search keywords")
	fmt.Println("    pla                  Product listing ad keywords")
	fmt.Println("    difficulty           Keyword difficulty; -target is the phrase")
	fmt.Println("    backlinks-overview   Backlink profile summary")
	fmt.Println("    backlinks            Inbound links")
	fmt.Println("    referring-domains    Domains linking to the target")
	fmt.Println("    referring-ips        IPs linking to the target")
	fmt.Println("    indexed-pages        Pages of the target in the backlinks index")
	fmt.Println("")
	fmt.Println("OPTIONS:")
	fmt.Println("    -region string       Region code (default from config: en-us)")
	fmt.Println("    -limit int           Rows to return (default: 5)")
	fmt.Println("    -offset int          Rows to skip (default: 0)")
	fmt.Println("    -brands string       Comma-separated brands excluded from keyword reports")
	fmt.Println("    -filter string       Keyword reports: sign|field|operator|value clauses; backlinks: raw filter")
	fmt.Println("    -target-type string  root_domain, domain or url (default: domain)")
	fmt.Println("    -sort string         Indexed pages sort (default: domains_num_desc)")
	fmt.Println("    -config string       YAML config file (env: SEMRUSH_CONFIG)")
	fmt.Println("    -strict              Fail keyword reports on upstream errors")
	fmt.Println("    -init-config         Write a default config and exit")
	fmt.Println("    -help                Show this help message")
	fmt.Println("")
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("    SEMRUSH_API_KEY          API key (required)")
	fmt.Println("    SEMRUSH_CACHE_BACKEND    memory, redis or none (memory)")
	fmt.Println("    SEMRUSH_CACHE_REDIS_ADDR Redis address (localhost:6379)")
	fmt.Println("    SEMRUSH_LOGGER_LEVEL     debug, info, warn, error (info)")
	fmt.Println("")
	fmt.Println("EXAMPLES:")
	fmt.Println("    export SEMRUSH_API_KEY=...")
	fmt.Println("    ./semrush-go -report organic -target example.com -brands Acme -limit 10")
	fmt.Println("    ./semrush-go -report backlinks -target example.com -target-type root_domain")
}
