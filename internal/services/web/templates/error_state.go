package templates

import (
	"net/http"
	"strconv"
	"strings"

	webi18n "github.com/louisbranch/orgdash/internal/services/web/platform/i18n"
)

// AppErrorPageTitle returns the document title for an error status.
func AppErrorPageTitle(statusCode int, loc webi18n.Localizer) string {
	return webi18n.T(loc, "core.error.title") + " " + strconv.Itoa(statusCode)
}

func appErrorMessage(statusCode int, message string, loc webi18n.Localizer) string {
	if message = strings.TrimSpace(message); message != "" {
		return message
	}
	switch statusCode {
	case http.StatusNotFound:
		return webi18n.T(loc, "core.error.not_found")
	case http.StatusServiceUnavailable:
		return webi18n.T(loc, "core.error.unavailable")
	default:
		return webi18n.T(loc, "core.error.server")
	}
}
