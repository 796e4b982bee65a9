package teams

import (
	"context"
	"net/url"
	"strings"

	"github.com/louisbranch/orgdash/internal/services/web/platform/apiclient"
)

// statsPeriod is the stats window requested for project charts.
const statsPeriod = "24h"

// API is the organization API capability the gateway calls through.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Update(ctx context.Context, path string, data any, callbacks apiclient.Callbacks) error
	Delete(ctx context.Context, path string, callbacks apiclient.Callbacks) error
}

// NewHTTPGateway builds the production teams gateway.
func NewHTTPGateway(api API) TeamGateway {
	if api == nil {
		return unavailableGateway{}
	}
	return httpGateway{api: api}
}

type httpGateway struct {
	api API
}

func (g httpGateway) LoadOrganization(ctx context.Context, org string) (Organization, error) {
	var out Organization
	if err := g.api.Get(ctx, organizationPath(org), nil, &out); err != nil {
		return Organization{}, apiclient.AppError(err)
	}
	return out, nil
}

func (g httpGateway) LoadProjects(ctx context.Context, org string) ([]Project, error) {
	var out []Project
	query := url.Values{"statsPeriod": []string{statsPeriod}}
	if err := g.api.Get(ctx, organizationPath(org)+"projects/", query, &out); err != nil {
		return nil, apiclient.AppError(err)
	}
	return out, nil
}

func (g httpGateway) UpdateProject(ctx context.Context, org string, project string, update ProjectUpdate, callbacks apiclient.Callbacks) error {
	return g.api.Update(ctx, "/api/0/projects/"+segment(org)+"/"+segment(project)+"/", update, callbacks)
}

func (g httpGateway) LeaveTeam(ctx context.Context, org string, team string, callbacks apiclient.Callbacks) error {
	return g.api.Delete(ctx, organizationPath(org)+"members/me/teams/"+segment(team)+"/", callbacks)
}

func organizationPath(org string) string {
	return "/api/0/organizations/" + segment(org) + "/"
}

func segment(value string) string {
	return url.PathEscape(strings.TrimSpace(value))
}
