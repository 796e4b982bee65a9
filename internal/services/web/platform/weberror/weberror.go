// Package weberror renders shared app-shell error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	apperrors "github.com/louisbranch/orgdash/internal/services/web/platform/errors"
	"github.com/louisbranch/orgdash/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/orgdash/internal/services/web/platform/i18n"
	webtemplates "github.com/louisbranch/orgdash/internal/services/web/templates"
)

// ShouldRenderAppError reports whether status should use app error-page UX.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteAppError writes a localized app-shell error page. message may be blank
// to use the status default.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, message string, resolveLanguage func(*http.Request) string) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}

	loc, lang := webi18n.ResolveLocalizer(w, r, resolveLanguage)
	fragment := webtemplates.AppErrorState(statusCode, message, loc)
	ctx := templ.WithChildren(httpx.RequestContext(r), fragment)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	title := webtemplates.AppErrorPageTitle(statusCode, loc)
	layout := webtemplates.AppLayout(webtemplates.AppLayoutView{Title: title, Lang: lang}, loc)
	if err := layout.Render(ctx, w); err != nil {
		http.Error(w, PublicMessage(loc, err), statusCode)
	}
}

// WriteModuleError writes a module-safe localized error response.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, resolveLanguage func(*http.Request) string) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	loc, _ := webi18n.ResolveLocalizer(w, r, resolveLanguage)
	if ShouldRenderAppError(statusCode) {
		message := ""
		if apperrors.LocalizationKey(err) != "" {
			message = PublicMessage(loc, err)
		}
		WriteAppError(w, r, statusCode, message, resolveLanguage)
		return
	}
	http.Error(w, PublicMessage(loc, err), statusCode)
}
