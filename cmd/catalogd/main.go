package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"catalogd/internal/cache"
	"catalogd/internal/config"
	"catalogd/internal/httpapi"
	"catalogd/internal/service"
	"catalogd/internal/source"
)

func main() {
	// Flags with environment variable defaults
	defaultAddr := ":8080"
	if v := os.Getenv("CATALOGD_ADDR"); v != "" {
		defaultAddr = v
	}
	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :8080")
	configPath := flag.String("config", "", "Optional config file (.yaml/.json/.toml)")
	sourceURL := flag.String("source-url", "", "Upstream pricing JSON URL (default: the published LiteLLM dataset)")
	sourceFile := flag.String("source-file", "", "Serve the pricing document from a local file instead of HTTP")
	refreshSec := flag.Int("refresh-seconds", 0, "Background refresh period in seconds (0=disabled)")
	minRefreshSec := flag.Int("min-refresh-seconds", 0, "Minimum interval between forced refreshes (default 30)")
	cacheEnabled := flag.Bool("cache", false, "Memoize the transformed catalog in memory")
	cacheTTLSec := flag.Int("cache-ttl-seconds", 0, "Catalog cache TTL in seconds (default 3600)")
	logLevel := flag.String("log-level", "", "Log level: debug|info|warn|error (default info)")
	corsEnabled := flag.Bool("cors", false, "Enable CORS for browser clients")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed CORS origins")
	flag.Parse()

	// Precedence: file < env < flags.
	var cfg config.Config
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			fatal("load config: %v", err)
		}
		cfg = c
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		fatal("apply env: %v", err)
	}
	if *addr != "" && (*addr != defaultAddr || cfg.Addr == "") {
		cfg.Addr = *addr
	}
	if *sourceURL != "" {
		cfg.SourceURL = *sourceURL
	}
	if *sourceFile != "" {
		cfg.SourceFile = *sourceFile
	}
	if *refreshSec > 0 {
		cfg.RefreshSeconds = *refreshSec
	}
	if *minRefreshSec > 0 {
		cfg.MinRefreshSeconds = *minRefreshSec
	}
	if *cacheEnabled {
		cfg.CacheEnabled = true
	}
	if *cacheTTLSec > 0 {
		cfg.CacheTTLSeconds = *cacheTTLSec
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *corsEnabled {
		cfg.CORSEnabled = true
	}
	if v := splitCSV(*corsOrigins); len(v) > 0 {
		cfg.CORSOrigins = v
	}

	logger := newLogger(cfg.LogLevel)

	var src service.Source
	if cfg.SourceFile != "" {
		src = source.File{Path: cfg.SourceFile}
	} else {
		src = source.NewClient(cfg.SourceURL)
	}
	var kv cache.Cache
	if cfg.CacheEnabled {
		kv = cache.NewMemory()
	}
	svc := service.New(service.Config{
		Source:             src,
		Cache:              kv,
		CacheTTL:           time.Duration(cfg.CacheTTLSeconds) * time.Second,
		MinRefreshInterval: time.Duration(cfg.MinRefreshSeconds) * time.Second,
		Logger:             &logger,
	})

	httpapi.SetLogger(logger)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins,
		[]string{http.MethodGet, http.MethodPost, http.MethodOptions},
		[]string{"Accept", "Content-Type", "X-Log-Level"})

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	httpapi.SetBaseContext(rootCtx)

	// Prime the snapshot. A failed initial fetch is not fatal: the daemon
	// serves /status and 503s until a refresh succeeds.
	loadCtx, loadCancel := context.WithTimeout(rootCtx, 60*time.Second)
	if err := svc.Load(loadCtx); err != nil {
		logger.Error().Err(err).Msg("initial catalog load failed")
	}
	loadCancel()

	mux := httpapi.NewMux(svc)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	g, gctx := errgroup.WithContext(rootCtx)
	g.Go(func() error {
		logger.Info().Str("addr", cfg.Addr).Msg("catalogd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	if cfg.RefreshSeconds > 0 {
		interval := time.Duration(cfg.RefreshSeconds) * time.Second
		g.Go(func() error {
			t := time.NewTicker(interval)
			defer t.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-t.C:
					if err := svc.Refresh(gctx); err != nil && !service.IsRefreshThrottled(err) {
						logger.Warn().Err(err).Msg("background refresh failed")
					}
				}
			}
		})
	}

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		cancel()
		ctx, sdCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer sdCancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown error")
		}
	}()

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if level != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil {
			lvl = parsed
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()
}

// splitCSV splits a comma-separated flag value, trimming whitespace and
// dropping empty items.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fatal(format string, args ...any) {
	l := zerolog.New(os.Stderr)
	l.Fatal().Msgf(format, args...)
}
