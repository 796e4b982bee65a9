package weberror

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/text/language"

	apperrors "github.com/louisbranch/orgdash/internal/services/web/platform/errors"
	webi18n "github.com/louisbranch/orgdash/internal/services/web/platform/i18n"
)

func TestPublicMessage(t *testing.T) {
	t.Parallel()

	loc := webi18n.Printer(language.MustParse("en-US"))
	if got := PublicMessage(loc, apperrors.EK(apperrors.KindNotFound, "core.error.not_found", "raw")); got != "We could not find that page." {
		t.Fatalf("PublicMessage(keyed) = %q", got)
	}
	if got := PublicMessage(loc, errors.New("secret detail")); got != "Internal Server Error" {
		t.Fatalf("PublicMessage(plain) = %q", got)
	}
	if got := PublicMessage(loc, nil); got != "" {
		t.Fatalf("PublicMessage(nil) = %q", got)
	}
}

func TestWriteModuleErrorRendersAppPageForNotFound(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteModuleError(rr, httptest.NewRequest(http.MethodGet, "/", nil), apperrors.EK(apperrors.KindNotFound, "core.error.organization_not_found", "missing"), nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<!doctype html>") || !strings.Contains(body, "That organization does not exist") {
		t.Fatalf("body = %q", body)
	}
}

func TestWriteModuleErrorWritesPlainTextForClientErrors(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteModuleError(rr, httptest.NewRequest(http.MethodGet, "/", nil), apperrors.EK(apperrors.KindInvalidInput, "core.error.organization_required", "org"), nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "An organization is required.") {
		t.Fatalf("body = %q", rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "<html") {
		t.Fatal("client errors should not render the app shell")
	}
}

func TestWriteAppErrorRendersShellForPartialRequests(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	WriteAppError(rr, req, http.StatusServiceUnavailable, "", nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<html") || !strings.Contains(body, "temporarily unavailable") {
		t.Fatalf("body = %q", body)
	}
}
