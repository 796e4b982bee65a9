package templates

import (
	"github.com/a-h/templ"

	webi18n "github.com/louisbranch/orgdash/internal/services/web/platform/i18n"
	"github.com/louisbranch/orgdash/internal/services/web/routepath"
)

// TeamsEmptyKind selects the empty-state copy when the viewer has no teams.
type TeamsEmptyKind int

const (
	// TeamsEmptyNoTeams: the organization has no teams at all.
	TeamsEmptyNoTeams TeamsEmptyKind = iota
	// TeamsEmptyJoinOrCreate: teams exist and the viewer may create projects.
	TeamsEmptyJoinOrCreate
	// TeamsEmptyJoin: teams exist and the viewer may only join.
	TeamsEmptyJoin
)

// TeamsPageView is the team list page model.
type TeamsPageView struct {
	Organization string
	Teams        []TeamBlockView
	Empty        TeamsEmptyKind
}

// TeamBlockView is one team box.
type TeamBlockView struct {
	Slug          string
	LeaveURL      string
	SettingsURL   string
	NewProjectURL string
	Projects      []ProjectRowView
}

// ProjectRowView is one project row inside a team box.
type ProjectRowView struct {
	ID            string
	Name          string
	URL           string
	BookmarkURL   string
	IsBookmarked  bool
	BookmarkAttrs templ.Attributes
	HasChart      bool
	Chart         []ChartPoint
	ChartLabel    string
}

// teamsEmptyMessage picks the empty-state copy for a viewer with no teams.
func teamsEmptyMessage(view TeamsPageView, loc webi18n.Localizer) templ.Component {
	org := view.Organization
	switch view.Empty {
	case TeamsEmptyJoinOrCreate:
		return webi18n.Rich(loc, "teams.empty.join_or_create", map[string]webi18n.Element{
			"joinLink":   webi18n.Link(routepath.AllTeams(org)),
			"createLink": webi18n.Link(routepath.NewTeam(org)),
		})
	case TeamsEmptyJoin:
		return webi18n.Rich(loc, "teams.empty.join", map[string]webi18n.Element{
			"joinLink": webi18n.Link(routepath.AllTeams(org)),
		})
	default:
		return webi18n.Rich(loc, "teams.empty.no_teams", map[string]webi18n.Element{
			"link": webi18n.Link(routepath.NewTeam(org)),
		})
	}
}

func noProjectsMessage(team TeamBlockView, loc webi18n.Localizer) templ.Component {
	return webi18n.Rich(loc, "teams.no_projects", map[string]webi18n.Element{
		"link": webi18n.Link(team.NewProjectURL),
	})
}
