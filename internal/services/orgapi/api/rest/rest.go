// Package rest serves the organization API over JSON/HTTP.
package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/louisbranch/orgdash/internal/services/orgapi/storage"
)

// Options configures the REST handler.
type Options struct {
	// DefaultUser is the actor used when a request carries no bearer token.
	DefaultUser string
	// AllowedOrigins enables CORS for the listed origins.
	AllowedOrigins []string
	Logger         *zap.SugaredLogger
	// Now overrides the clock used for stats windows.
	Now func() time.Time
	// TracerProvider records server spans. Nil uses the global provider.
	TracerProvider trace.TracerProvider
}

type handler struct {
	store       storage.Store
	defaultUser string
	logger      *zap.SugaredLogger
	now         func() time.Time
}

// NewHandler builds the organization API router.
func NewHandler(store storage.Store, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	h := &handler{
		store:       store,
		defaultUser: strings.TrimSpace(opts.DefaultUser),
		logger:      logger,
		now:         now,
	}

	r := chi.NewRouter()
	r.Use(traceRequests(opts.TracerProvider))
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Traceparent", "Tracestate"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", h.handleHealth)
	r.Route("/api/0", func(r chi.Router) {
		r.Use(h.requireActor)
		r.Route("/organizations/{org}", func(r chi.Router) {
			r.Get("/", h.handleOrganization)
			r.Get("/projects/", h.handleProjects)
			r.Delete("/members/me/teams/{team}/", h.handleLeaveTeam)
		})
		r.Route("/projects/{org}/{project}", func(r chi.Router) {
			r.Put("/", h.handleUpdateProject)
			r.Get("/environments/", h.handleEnvironments)
		})
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "The requested resource does not exist")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps storage errors onto API responses.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "The requested resource does not exist")
	case errors.Is(err, storage.ErrForbidden):
		writeDetail(w, http.StatusForbidden, "You do not have permission to perform this action.")
	case errors.Is(err, storage.ErrInvalidVisibility):
		writeDetail(w, http.StatusBadRequest, invalidVisibilityDetail)
	default:
		h.logger.Errorw("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		writeDetail(w, http.StatusInternalServerError, "Internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func requestLogger(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Infow("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"latency", time.Since(start).String(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
