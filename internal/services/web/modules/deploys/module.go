// Package deploys renders the deploys panel of the organization dashboard.
package deploys

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/orgdash/internal/services/web/module"
	webi18n "github.com/louisbranch/orgdash/internal/services/web/platform/i18n"
	"github.com/louisbranch/orgdash/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/orgdash/internal/services/web/platform/pagerender"
	"github.com/louisbranch/orgdash/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/orgdash/internal/services/web/templates"
)

// Deploy is one recorded release deploy.
type Deploy struct {
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

// DeploysProps is the deploys panel input. Deploys is accepted for the
// listing view; the panel currently always renders its empty state.
type DeploysProps struct {
	Deploys []Deploy
}

// Module provides the organization dashboard route.
type Module struct {
	base modulehandler.Base
}

// New returns a deploys module.
func New(base modulehandler.Base) Module {
	return Module{base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "deploys" }

// Mount wires deploys route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := handlers{Base: m.base}
	mux.HandleFunc(http.MethodGet+" "+routepath.OrganizationDashboard+"{$}", h.handleDashboard)
	mux.HandleFunc(http.MethodGet+" "+routepath.OrganizationDashboardRestPattern, h.WriteNotFound)
	return module.Mount{Prefix: routepath.OrganizationDashboard, Handler: mux}, nil
}

type handlers struct {
	modulehandler.Base
}

func (h handlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	org := strings.TrimSpace(r.PathValue("org"))
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, pagerender.ModulePage{
		Title:        webi18n.T(loc, "deploys.title"),
		Organization: org,
		Fragment:     Panel(DeploysProps{}, loc),
	})
}

// Panel renders the deploys panel for props.
func Panel(_ DeploysProps, loc webi18n.Localizer) templ.Component {
	return webtemplates.DeploysPanel(loc)
}
