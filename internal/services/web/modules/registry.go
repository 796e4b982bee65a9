// Package modules defines web module registry helpers.
package modules

import (
	module "github.com/louisbranch/orgdash/internal/services/web/module"
	"github.com/louisbranch/orgdash/internal/services/web/modules/deploys"
	"github.com/louisbranch/orgdash/internal/services/web/modules/teams"
	"github.com/louisbranch/orgdash/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/orgdash/internal/services/web/platform/tooltip"
)

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the collaborators required to compose the web module
// registry. A nil API leaves API-backed modules in degraded mode.
type Dependencies struct {
	API      teams.API
	Base     modulehandler.Base
	Tooltips tooltip.Registrar
}

// DefaultModules returns the organization web modules.
func DefaultModules(deps Dependencies) []Module {
	return []Module{
		teams.NewWithGateway(teams.NewHTTPGateway(deps.API), deps.Base, deps.Tooltips),
		deploys.New(deps.Base),
	}
}
