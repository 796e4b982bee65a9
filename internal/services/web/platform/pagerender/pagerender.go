// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	flashnotice "github.com/louisbranch/orgdash/internal/services/web/platform/flash"
	"github.com/louisbranch/orgdash/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/orgdash/internal/services/web/platform/i18n"
	webtemplates "github.com/louisbranch/orgdash/internal/services/web/templates"
)

// RequestResolver resolves language state from a request.
type RequestResolver interface {
	ResolveRequestLanguage(r *http.Request) string
}

// ModulePage describes a module page rendered inside the app shell.
type ModulePage struct {
	Title        string
	StatusCode   int
	Organization string
	Fragment     templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WriteModulePage writes a module page using shared app-shell rendering contracts.
func WriteModulePage(w http.ResponseWriter, r *http.Request, resolver RequestResolver, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}

	var resolveLanguage func(*http.Request) string
	if resolver != nil {
		resolveLanguage = resolver.ResolveRequestLanguage
	}
	loc, lang := webi18n.ResolveLocalizer(w, r, resolveLanguage)
	ctx := templ.WithChildren(httpx.RequestContext(r), fragment)

	var buf bytes.Buffer
	layout := webtemplates.AppLayout(webtemplates.AppLayoutView{
		Title:        page.Title,
		Lang:         lang,
		Organization: page.Organization,
		Toasts:       resolveFlashToasts(w, r),
	}, loc)
	if err := layout.Render(ctx, &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func resolveFlashToasts(w http.ResponseWriter, r *http.Request) []webtemplates.AppToast {
	notices := flashnotice.ReadAndClear(w, r)
	if len(notices) == 0 {
		return nil
	}
	toasts := make([]webtemplates.AppToast, 0, len(notices))
	for _, notice := range notices {
		toasts = append(toasts, webtemplates.AppToast{Kind: string(notice.Level), Message: notice.Message})
	}
	return toasts
}
