// Package web parses web service flags and launches the dashboard server.
package web

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/orgdash/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/orgdash/internal/platform/grpc"
	"github.com/louisbranch/orgdash/internal/platform/logging"
	"github.com/louisbranch/orgdash/internal/platform/timeouts"
	"github.com/louisbranch/orgdash/internal/services/web"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr   string        `env:"ORGDASH_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	APIBaseURL string        `env:"ORGDASH_WEB_API_BASE_URL" envDefault:"http://localhost:8090"`
	APIToken   string        `env:"ORGDASH_WEB_API_TOKEN"`
	APITimeout time.Duration `env:"ORGDASH_WEB_API_TIMEOUT" envDefault:"5s"`
	// OrgAPIHealthAddr is the orgapi gRPC health address to wait for before
	// serving. Empty skips the wait.
	OrgAPIHealthAddr string `env:"ORGDASH_WEB_ORGAPI_HEALTH_ADDR"`
	LogLevel         string `env:"ORGDASH_WEB_LOG_LEVEL" envDefault:"info"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Organization API base URL (empty runs degraded)")
	fs.StringVar(&cfg.APIToken, "api-token", cfg.APIToken, "Bearer token sent to the organization API")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "Per-call organization API timeout")
	fs.StringVar(&cfg.OrgAPIHealthAddr, "orgapi-health-addr", cfg.OrgAPIHealthAddr, "Organization API gRPC health address to wait for")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(entrypoint.ServiceWeb, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceWeb, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		if addr := strings.TrimSpace(cfg.OrgAPIHealthAddr); addr != "" {
			if err := platformgrpc.WaitForAddr(ctx, addr, timeouts.HealthWait, logger); err != nil {
				logger.Warnw("organization api not healthy, serving anyway", "addr", addr, "error", err)
			}
		}
		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:   cfg.HTTPAddr,
			APIBaseURL: cfg.APIBaseURL,
			APIToken:   cfg.APIToken,
			APITimeout: cfg.APITimeout,
			Logger:     logger,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
