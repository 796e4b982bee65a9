// Package web hosts the browser-facing organization dashboard service.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/louisbranch/orgdash/internal/platform/logging"
	"github.com/louisbranch/orgdash/internal/platform/timeouts"
	webapp "github.com/louisbranch/orgdash/internal/services/web/app"
	"github.com/louisbranch/orgdash/internal/services/web/modules"
	"github.com/louisbranch/orgdash/internal/services/web/platform/apiclient"
	"github.com/louisbranch/orgdash/internal/services/web/platform/httpx"
	"github.com/louisbranch/orgdash/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/orgdash/internal/services/web/platform/observability"
	"github.com/louisbranch/orgdash/internal/services/web/platform/tooltip"
	webstatic "github.com/louisbranch/orgdash/internal/services/web/static"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	// APIBaseURL is the organization API root. Empty runs the dashboard in
	// degraded mode.
	APIBaseURL string
	APIToken   string
	APITimeout time.Duration
	// HTTPClient overrides the outbound API transport.
	HTTPClient *http.Client
	Logger     *zap.SugaredLogger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *zap.SugaredLogger
}

// NewHandler builds a root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := logging.OrNop(cfg.Logger)
	base := modulehandler.NewBase(nil, logger.Named("modules"))
	deps := modules.Dependencies{Base: base, Tooltips: tooltip.Title{}}
	if strings.TrimSpace(cfg.APIBaseURL) != "" {
		opts := []apiclient.Option{apiclient.WithToken(cfg.APIToken)}
		if cfg.APITimeout > 0 {
			opts = append(opts, apiclient.WithTimeout(cfg.APITimeout))
		}
		if cfg.HTTPClient != nil {
			opts = append(opts, apiclient.WithHTTPClient(cfg.HTTPClient))
		}
		client, err := apiclient.New(cfg.APIBaseURL, opts...)
		if err != nil {
			return nil, fmt.Errorf("build api client: %w", err)
		}
		deps.API = client
	} else {
		logger.Warnw("organization api base url not configured, running degraded")
	}

	registry := modules.DefaultModules(deps)
	h, err := webapp.Compose(webapp.ComposeInput{
		Modules:  registry,
		NotFound: http.HandlerFunc(base.WriteNotFound),
	})
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(webstatic.FS))))
	rootMux.Handle("GET /healthz", healthHandler(registry))
	rootMux.Handle("/", h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(logger.Named("http")),
	), nil
}

type healthReport struct {
	Status  string          `json:"status"`
	Modules map[string]bool `json:"modules"`
}

// healthHandler reports 200 when every module is healthy and 503 otherwise.
func healthHandler(registry []modules.Module) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		report := healthReport{Status: "ok", Modules: webapp.ModuleHealth(registry)}
		ids := make([]string, 0, len(report.Modules))
		for id := range report.Modules {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		status := http.StatusOK
		for _, id := range ids {
			if !report.Modules[id] {
				report.Status = "degraded"
				status = http.StatusServiceUnavailable
				break
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
	})
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	logger := logging.OrNop(cfg.Logger)
	return &Server{
		httpAddr: httpAddr,
		logger:   logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Infow("web listening", "addr", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
