package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// fakeOrgAPI serves a fixed organization and records project updates.
type fakeOrgAPI struct {
	mu      sync.Mutex
	updates []string
	auth    []string
}

func (f *fakeOrgAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.auth = append(f.auth, r.Header.Get("Authorization"))
	f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/0/organizations/acme/":
		_, _ = io.WriteString(w, `{"slug":"acme","name":"Acme","access":["project:write","team:write"],"teams":[{"slug":"backend","name":"Backend","isMember":true}]}`)
	case r.Method == http.MethodGet && r.URL.Path == "/api/0/organizations/acme/projects/":
		_, _ = io.WriteString(w, `[{"id":"1","slug":"api","name":"api","isBookmarked":false,"teams":[{"slug":"backend","name":"Backend"}],"stats":[[100,2],[200,4]]}]`)
	case r.Method == http.MethodPut && r.URL.Path == "/api/0/projects/acme/api/":
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.updates = append(f.updates, string(body))
		f.mu.Unlock()
		_, _ = io.WriteString(w, `{}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"not found"}`)
	}
}

func newTestHandler(t *testing.T, api http.Handler) http.Handler {
	t.Helper()
	cfg := Config{HTTPAddr: "127.0.0.1:0"}
	if api != nil {
		srv := httptest.NewServer(api)
		t.Cleanup(srv.Close)
		cfg.APIBaseURL = srv.URL
		cfg.APIToken = "user-1"
		cfg.HTTPClient = srv.Client()
	}
	h, err := NewHandler(cfg)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return h
}

func TestHandlerRendersTeamListFromAPI(t *testing.T) {
	t.Parallel()

	api := &fakeOrgAPI{}
	h := newTestHandler(t, api)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/organizations/acme/teams/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	body := rr.Body.String()
	for _, marker := range []string{"<h3>#backend</h3>", `href="/acme/api/"`, "data-lazy-load", `data-y="4"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
	api.mu.Lock()
	defer api.mu.Unlock()
	for _, got := range api.auth {
		if got != "Bearer user-1" {
			t.Fatalf("Authorization = %q, want bearer token", got)
		}
	}
}

func TestHandlerBookmarkRoundTrip(t *testing.T) {
	t.Parallel()

	api := &fakeOrgAPI{}
	h := newTestHandler(t, api)
	form := url.Values{"is_bookmarked": {"false"}}
	req := httptest.NewRequest(http.MethodPost, "/organizations/acme/teams/projects/api/bookmark/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.updates) != 1 || api.updates[0] != `{"isBookmarked":true}` {
		t.Fatalf("updates = %v", api.updates)
	}
}

func TestHandlerRendersDeploysPanel(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/organizations/acme/dashboard/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "Track deploys") {
		t.Fatalf("body missing deploys call to action")
	}
}

func TestHandlerServesStaticAssets(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "IntersectionObserver") {
		t.Fatal("app.js missing lazy-load observer")
	}
}

func TestHandlerUnknownPathRendersAppNotFound(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), `id="app-error-state"`) {
		t.Fatal("expected app error state")
	}
}

func TestHealthzReportsDegradedWithoutAPI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		api        http.Handler
		wantStatus int
		wantState  string
	}{
		{name: "degraded", api: nil, wantStatus: http.StatusServiceUnavailable, wantState: "degraded"},
		{name: "ok", api: &fakeOrgAPI{}, wantStatus: http.StatusOK, wantState: "ok"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := newTestHandler(t, tc.api)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			var report healthReport
			if err := json.Unmarshal(rr.Body.Bytes(), &report); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if report.Status != tc.wantState {
				t.Fatalf("status = %q, want %q", report.Status, tc.wantState)
			}
		})
	}
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(context.Background(), Config{}); err == nil {
		t.Fatal("expected missing address error")
	}
	if _, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0", APIBaseURL: "http://[::1"}); err == nil {
		t.Fatal("expected invalid api url error")
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	srv, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0"})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := srv.ListenAndServe(ctx); err != nil {
		t.Fatalf("ListenAndServe() error = %v", err)
	}
}

func TestNilServer(t *testing.T) {
	t.Parallel()

	var srv *Server
	if err := srv.ListenAndServe(context.Background()); err == nil {
		t.Fatal("expected nil server error")
	}
	srv.Close()
}
