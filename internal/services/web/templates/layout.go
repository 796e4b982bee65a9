package templates

import (
	"strings"

	webi18n "github.com/louisbranch/orgdash/internal/services/web/platform/i18n"
)

// AppLayoutView carries app shell state for one page.
type AppLayoutView struct {
	Title        string
	Lang         string
	Organization string
	Toasts       []AppToast
}

func layoutTitle(view AppLayoutView, loc webi18n.Localizer) string {
	appName := webi18n.T(loc, "core.app_name")
	if title := strings.TrimSpace(view.Title); title != "" {
		return title + " | " + appName
	}
	return appName
}

func layoutLang(view AppLayoutView) string {
	if lang := strings.TrimSpace(view.Lang); lang != "" {
		return lang
	}
	return "en-US"
}

func layoutOrganization(view AppLayoutView) string {
	return strings.TrimSpace(view.Organization)
}
