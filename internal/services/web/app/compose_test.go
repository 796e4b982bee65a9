package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/louisbranch/orgdash/internal/services/web/module"
)

type stubModule struct {
	id       string
	mount    module.Mount
	mountErr error
}

func (s stubModule) ID() string { return s.id }

func (s stubModule) Mount() (module.Mount, error) {
	return s.mount, s.mountErr
}

type healthyStub struct {
	stubModule
	healthy bool
}

func (s healthyStub) Healthy() bool { return s.healthy }

func noContent() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestComposeRoutesToModulePrefix(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{
		Modules: []module.Module{
			stubModule{id: "teams", mount: module.Mount{Prefix: "/organizations/{org}/teams/", Handler: noContent()}},
		},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/organizations/acme/teams/", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/elsewhere", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestComposeUsesNotFoundHandler(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rr.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusTeapot)
	}
}

func TestComposeRejectsDuplicateModulePrefix(t *testing.T) {
	t.Parallel()

	_, err := Compose(ComposeInput{
		Modules: []module.Module{
			stubModule{id: "one", mount: module.Mount{Prefix: "/one/", Handler: noContent()}},
			stubModule{id: "two", mount: module.Mount{Prefix: "/one/", Handler: noContent()}},
		},
	})
	if err == nil {
		t.Fatalf("expected duplicate prefix error")
	}
	if !strings.Contains(err.Error(), `"one"`) {
		t.Fatalf("error = %q, want owning module id", err)
	}
}

func TestComposeRejectsInvalidModulePrefixes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
	}{
		{name: "missing leading slash", prefix: "organizations/x/"},
		{name: "missing trailing slash", prefix: "/organizations/x"},
		{name: "contains surrounding whitespace", prefix: "/organizations/x/ "},
		{name: "empty", prefix: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compose(ComposeInput{
				Modules: []module.Module{
					stubModule{id: "bad", mount: module.Mount{Prefix: tc.prefix, Handler: noContent()}},
				},
			})
			if err == nil {
				t.Fatalf("expected invalid prefix error")
			}
			if got := err.Error(); !strings.Contains(got, "invalid prefix") || !strings.Contains(got, "bad") {
				t.Fatalf("unexpected error = %q", got)
			}
		})
	}
}

func TestComposeRejectsBrokenModules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modules []module.Module
	}{
		{name: "nil module", modules: []module.Module{nil}},
		{name: "mount error", modules: []module.Module{stubModule{id: "err", mountErr: errors.New("boom")}}},
		{name: "nil handler", modules: []module.Module{stubModule{id: "nohandler", mount: module.Mount{Prefix: "/x/"}}}},
		{name: "root prefix", modules: []module.Module{stubModule{id: "root", mount: module.Mount{Prefix: "/", Handler: noContent()}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Compose(ComposeInput{Modules: tc.modules}); err == nil {
				t.Fatalf("expected compose error")
			}
		})
	}
}

func TestModuleHealth(t *testing.T) {
	t.Parallel()

	got := ModuleHealth([]module.Module{
		healthyStub{stubModule: stubModule{id: "teams"}, healthy: false},
		healthyStub{stubModule: stubModule{id: "other"}, healthy: true},
		stubModule{id: "deploys"},
		nil,
	})
	if len(got) != 2 {
		t.Fatalf("health entries = %d, want 2", len(got))
	}
	if got["teams"] || !got["other"] {
		t.Fatalf("health = %v", got)
	}
}
