package teams

import (
	"net/http"

	"github.com/louisbranch/orgdash/internal/services/web/platform/httpx"
	"github.com/louisbranch/orgdash/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.OrganizationTeams+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodPost+" "+routepath.OrganizationTeamLeavePattern, h.handleLeave)
	mux.HandleFunc(http.MethodGet+" "+routepath.OrganizationTeamLeavePattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.OrganizationProjectBookmarkPattern, h.handleBookmark)
	mux.HandleFunc(http.MethodGet+" "+routepath.OrganizationProjectBookmarkPattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodGet+" "+routepath.OrganizationTeamsRestPattern, h.WriteNotFound)
	mux.HandleFunc(http.MethodPost+" "+routepath.OrganizationTeamsRestPattern, h.WriteNotFound)
}
