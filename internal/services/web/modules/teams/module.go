package teams

import (
	"net/http"

	"github.com/louisbranch/orgdash/internal/services/web/module"
	"github.com/louisbranch/orgdash/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/orgdash/internal/services/web/platform/tooltip"
	"github.com/louisbranch/orgdash/internal/services/web/routepath"
)

// Module provides organization team list routes.
type Module struct {
	gateway TeamGateway
	base    modulehandler.Base
	tips    tooltip.Registrar
}

// New returns a teams module with zero-value dependencies (degraded mode).
func New() Module {
	return Module{}
}

// NewWithGateway returns a teams module with explicit gateway, handler and
// tooltip dependencies.
func NewWithGateway(gateway TeamGateway, base modulehandler.Base, tips tooltip.Registrar) Module {
	return Module{gateway: gateway, base: base, tips: tips}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "teams" }

// Healthy reports whether the teams module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires teams route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.gateway)
	h := newHandlers(svc, m.base, m.tips)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.OrganizationTeams, Handler: mux}, nil
}
