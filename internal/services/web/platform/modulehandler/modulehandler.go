// Package modulehandler provides a composable base for web module handlers.
//
// Modules share infrastructure for localization, page rendering, logging and
// error handling. Module handler structs embed Base rather than duplicating it.
package modulehandler

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	module "github.com/louisbranch/orgdash/internal/services/web/module"
	webi18n "github.com/louisbranch/orgdash/internal/services/web/platform/i18n"
	"github.com/louisbranch/orgdash/internal/services/web/platform/pagerender"
	"github.com/louisbranch/orgdash/internal/services/web/platform/weberror"
)

// Base carries the shared request-scoped resolvers used by module handlers.
type Base struct {
	resolveLanguage module.ResolveLanguage
	logger          *zap.SugaredLogger
}

// NewBase builds a handler base from explicit dependencies.
func NewBase(resolveLanguage module.ResolveLanguage, logger *zap.SugaredLogger) Base {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return Base{resolveLanguage: resolveLanguage, logger: logger}
}

// NewTestBase builds a handler base with request-derived language and a
// no-op logger.
func NewTestBase() Base {
	return NewBase(nil, nil)
}

// Logger returns the module logger.
func (b Base) Logger() *zap.SugaredLogger {
	if b.logger == nil {
		return zap.NewNop().Sugar()
	}
	return b.logger
}

// ResolveRequestLanguage returns the explicit request language, if any.
func (b Base) ResolveRequestLanguage(r *http.Request) string {
	if b.resolveLanguage == nil {
		return ""
	}
	return b.resolveLanguage(r)
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (webi18n.Localizer, string) {
	return webi18n.ResolveLocalizer(w, r, b.resolveLanguage)
}

// RequestLocaleTag returns the resolved language tag for the request.
func (b Base) RequestLocaleTag(r *http.Request) language.Tag {
	tag, _ := webi18n.ResolveTag(r)
	return tag
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		b.Logger().Warnw("module request failed", "path", r.URL.Path, "error", err)
	}
	weberror.WriteModuleError(w, r, err, b.resolveLanguage)
}

// WriteNotFound renders a 404 error page within the app shell.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, "", b.resolveLanguage)
}

// WritePage renders a full module page.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page pagerender.ModulePage) {
	if err := pagerender.WriteModulePage(w, r, b, page); err != nil {
		b.WriteError(w, r, err)
	}
}
