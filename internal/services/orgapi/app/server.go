// Package server wires the organization API runtime and lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	platformgrpc "github.com/louisbranch/orgdash/internal/platform/grpc"
	"github.com/louisbranch/orgdash/internal/platform/logging"
	"github.com/louisbranch/orgdash/internal/platform/timeouts"
	"github.com/louisbranch/orgdash/internal/services/orgapi/api/rest"
	orgsqlite "github.com/louisbranch/orgdash/internal/services/orgapi/storage/sqlite"
)

// Config defines startup inputs for the organization API.
type Config struct {
	HTTPAddr string
	// GRPCAddr serves grpc.health.v1. Empty disables the health listener.
	GRPCAddr    string
	DBPath      string
	DefaultUser string
	CORSOrigins []string
	// SeedDemo populates the demo organization for DefaultUser on startup.
	SeedDemo bool
	Logger   *zap.SugaredLogger
}

// Server hosts the organization API HTTP surface, its health service and the
// storage lifecycle.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	health     *platformgrpc.HealthServer
	store      *orgsqlite.Store
	logger     *zap.SugaredLogger
}

// New opens storage, binds listeners and builds the HTTP handler.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.OrNop(cfg.Logger)
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	dbPath := strings.TrimSpace(cfg.DBPath)
	if dbPath == "" {
		dbPath = filepath.Join("data", "orgapi.db")
	}
	store, err := openStore(dbPath)
	if err != nil {
		return nil, err
	}
	if cfg.SeedDemo {
		if strings.TrimSpace(cfg.DefaultUser) == "" {
			_ = store.Close()
			return nil, errors.New("seeding demo data requires a default user")
		}
		if err := store.SeedDemo(ctx, cfg.DefaultUser, time.Now()); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
		logger.Infow("seeded demo organization", "organization", orgsqlite.DemoOrganization, "user", cfg.DefaultUser)
	}

	listener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("listen on %s: %w", httpAddr, err)
	}
	var health *platformgrpc.HealthServer
	if strings.TrimSpace(cfg.GRPCAddr) != "" {
		health, err = platformgrpc.ListenHealth(cfg.GRPCAddr)
		if err != nil {
			_ = listener.Close()
			_ = store.Close()
			return nil, err
		}
	}

	handler := rest.NewHandler(store, rest.Options{
		DefaultUser:    cfg.DefaultUser,
		AllowedOrigins: cfg.CORSOrigins,
		Logger:         logger.Named("http"),
	})
	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		health: health,
		store:  store,
		logger: logger,
	}, nil
}

// Run creates and serves an organization API server until context
// cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Addr returns the bound HTTP address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// HealthAddr returns the bound gRPC health address, if any.
func (s *Server) HealthAddr() string {
	if s == nil {
		return ""
	}
	return s.health.Addr()
}

// Serve runs HTTP and health listeners until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	serveErr := make(chan error, 2)
	s.logger.Infow("orgapi listening", "addr", s.Addr(), "health_addr", s.HealthAddr())
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()
	if s.health != nil {
		go func() {
			serveErr <- s.health.Serve()
		}()
		s.health.SetServing(true)
	}

	select {
	case <-ctx.Done():
		s.health.SetServing(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown orgapi http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve orgapi: %w", err)
	}
}

// Close releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	s.health.Stop()
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warnw("close orgapi store", "error", err)
		}
		s.store = nil
	}
}

func openStore(path string) (*orgsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := orgsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open orgapi sqlite store: %w", err)
	}
	return store, nil
}
