package teams

import (
	"context"
	"sort"
	"strings"

	"github.com/louisbranch/orgdash/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/orgdash/internal/services/web/platform/errors"
	webi18n "github.com/louisbranch/orgdash/internal/services/web/platform/i18n"
	"github.com/louisbranch/orgdash/internal/services/web/platform/notify"
)

// TeamGateway loads team list data and performs team actions.
type TeamGateway interface {
	LoadOrganization(ctx context.Context, org string) (Organization, error)
	LoadProjects(ctx context.Context, org string) ([]Project, error)
	UpdateProject(ctx context.Context, org string, project string, update ProjectUpdate, callbacks apiclient.Callbacks) error
	LeaveTeam(ctx context.Context, org string, team string, callbacks apiclient.Callbacks) error
}

func requireOrganization(org string) (string, error) {
	org = strings.TrimSpace(org)
	if org == "" {
		return "", apperrors.EK(apperrors.KindInvalidInput, "core.error.organization_required", "organization is required")
	}
	return org, nil
}

type service struct {
	gateway TeamGateway
}

func newService(gateway TeamGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

func (s service) loadTeamList(ctx context.Context, org string) (TeamListProps, error) {
	resolvedOrg, err := requireOrganization(org)
	if err != nil {
		return TeamListProps{}, err
	}
	organization, err := s.gateway.LoadOrganization(ctx, resolvedOrg)
	if err != nil {
		return TeamListProps{}, err
	}
	if strings.TrimSpace(organization.Slug) == "" {
		organization.Slug = resolvedOrg
	}
	projects, err := s.gateway.LoadProjects(ctx, resolvedOrg)
	if err != nil {
		return TeamListProps{}, err
	}
	if projects == nil {
		projects = []Project{}
	}
	return TeamListProps{
		Access:       organization.AccessSet(),
		Organization: organization,
		TeamList:     organization.MemberTeams(),
		ProjectList:  projects,
		HasTeams:     len(organization.Teams) > 0,
	}, nil
}

// projectsForTeam returns the projects whose membership includes team,
// stably sorted by name.
func projectsForTeam(team Team, projects []Project) []Project {
	out := make([]Project, 0, len(projects))
	for _, project := range projects {
		if project.InTeam(team.Slug) {
			out = append(out, project)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// toggleBookmark asks the API to flip the project's bookmark. Local state is
// not touched; the next render reflects the result. A failure adds one error
// notice to sink.
func (s service) toggleBookmark(ctx context.Context, org string, project Project, sink notify.Sink, loc webi18n.Localizer) error {
	resolvedOrg, err := requireOrganization(org)
	if err != nil {
		return err
	}
	return s.gateway.UpdateProject(ctx, resolvedOrg, project.Slug, ProjectUpdate{IsBookmarked: !project.IsBookmarked}, apiclient.Callbacks{
		Error: func(error) {
			addNotice(sink, webi18n.T(loc, "teams.bookmark.error"), notify.LevelError)
		},
	})
}

// leaveTeam asks the API to remove the viewer from team. A failure adds one
// error notice to sink; success changes nothing locally.
func (s service) leaveTeam(ctx context.Context, org string, team Team, sink notify.Sink, loc webi18n.Localizer) error {
	resolvedOrg, err := requireOrganization(org)
	if err != nil {
		return err
	}
	return s.gateway.LeaveTeam(ctx, resolvedOrg, team.Slug, apiclient.Callbacks{
		Error: func(error) {
			addNotice(sink, webi18n.T(loc, "teams.leave.error"), notify.LevelError)
		},
	})
}

func addNotice(sink notify.Sink, message string, level notify.Level) {
	if sink == nil {
		return
	}
	sink.Add(message, level)
}
