// Package orgapi parses organization API flags and launches the service.
package orgapi

import (
	"context"
	"flag"
	"strings"

	entrypoint "github.com/louisbranch/orgdash/internal/platform/cmd"
	"github.com/louisbranch/orgdash/internal/platform/logging"
	server "github.com/louisbranch/orgdash/internal/services/orgapi/app"
)

// Config holds orgapi command configuration.
type Config struct {
	HTTPAddr    string `env:"ORGDASH_ORGAPI_HTTP_ADDR" envDefault:"localhost:8090"`
	GRPCAddr    string `env:"ORGDASH_ORGAPI_GRPC_ADDR" envDefault:"localhost:8091"`
	DBPath      string `env:"ORGDASH_ORGAPI_DB_PATH" envDefault:"data/orgapi.db"`
	DefaultUser string `env:"ORGDASH_ORGAPI_DEFAULT_USER"`
	// CORSOrigins is a comma-separated origin allow list.
	CORSOrigins string `env:"ORGDASH_ORGAPI_CORS_ORIGINS"`
	SeedDemo    bool   `env:"ORGDASH_ORGAPI_SEED_DEMO" envDefault:"false"`
	LogLevel    string `env:"ORGDASH_ORGAPI_LOG_LEVEL" envDefault:"info"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC health listen address (empty disables)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.DefaultUser, "default-user", cfg.DefaultUser, "User id assumed when requests carry no bearer token")
	fs.StringVar(&cfg.CORSOrigins, "cors-origins", cfg.CORSOrigins, "Comma-separated CORS origins")
	fs.BoolVar(&cfg.SeedDemo, "seed-demo", cfg.SeedDemo, "Seed the demo organization for the default user")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Origins splits the configured CORS origins.
func (c Config) Origins() []string {
	var out []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}

// Run starts the organization API service.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(entrypoint.ServiceOrgAPI, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceOrgAPI, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		return server.Run(ctx, server.Config{
			HTTPAddr:    cfg.HTTPAddr,
			GRPCAddr:    cfg.GRPCAddr,
			DBPath:      cfg.DBPath,
			DefaultUser: cfg.DefaultUser,
			CORSOrigins: cfg.Origins(),
			SeedDemo:    cfg.SeedDemo,
			Logger:      logger,
		})
	})
}
