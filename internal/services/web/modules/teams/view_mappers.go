package teams

import (
	"github.com/louisbranch/orgdash/internal/services/web/platform/access"
	webi18n "github.com/louisbranch/orgdash/internal/services/web/platform/i18n"
	"github.com/louisbranch/orgdash/internal/services/web/platform/tooltip"
	"github.com/louisbranch/orgdash/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/orgdash/internal/services/web/templates"
)

func mapTeamsPageView(props TeamListProps, tips tooltip.Registrar, loc webi18n.Localizer) webtemplates.TeamsPageView {
	org := props.Organization.Slug
	view := webtemplates.TeamsPageView{
		Organization: org,
		Empty:        emptyKind(props),
	}
	for _, team := range props.TeamList {
		view.Teams = append(view.Teams, mapTeamBlockView(org, team, props, tips, loc))
	}
	return view
}

func emptyKind(props TeamListProps) webtemplates.TeamsEmptyKind {
	switch {
	case !props.HasTeams:
		return webtemplates.TeamsEmptyNoTeams
	case props.Access.Has(access.ProjectWrite):
		return webtemplates.TeamsEmptyJoinOrCreate
	default:
		return webtemplates.TeamsEmptyJoin
	}
}

func mapTeamBlockView(org string, team Team, props TeamListProps, tips tooltip.Registrar, loc webi18n.Localizer) webtemplates.TeamBlockView {
	block := webtemplates.TeamBlockView{
		Slug:          team.Slug,
		LeaveURL:      routepath.TeamLeave(org, team.Slug),
		NewProjectURL: routepath.NewProject(org, team.Slug),
	}
	if props.Access.Has(access.TeamWrite) {
		block.SettingsURL = routepath.TeamSettings(org, team.Slug)
	}
	for _, project := range projectsForTeam(team, props.ProjectList) {
		block.Projects = append(block.Projects, mapProjectRowView(org, project, tips, loc))
	}
	return block
}

func mapProjectRowView(org string, project Project, tips tooltip.Registrar, loc webi18n.Localizer) webtemplates.ProjectRowView {
	tipKey := "teams.bookmark.add"
	if project.IsBookmarked {
		tipKey = "teams.bookmark.remove"
	}
	row := webtemplates.ProjectRowView{
		ID:            project.ID,
		Name:          project.DisplayName(),
		URL:           routepath.Project(org, project.Slug),
		BookmarkURL:   routepath.ProjectBookmark(org, project.Slug),
		IsBookmarked:  project.IsBookmarked,
		BookmarkAttrs: tooltip.OrDefault(tips).Attrs(webi18n.T(loc, tipKey)),
	}
	if project.Stats != nil {
		row.HasChart = true
		row.ChartLabel = webi18n.T(loc, "teams.chart.label")
		row.Chart = chartPoints(project.Stats)
	}
	return row
}

func chartPoints(stats []StatPoint) []webtemplates.ChartPoint {
	points := make([]webtemplates.ChartPoint, 0, len(stats))
	for _, stat := range stats {
		points = append(points, webtemplates.ChartPoint{X: stat.Timestamp, Y: stat.Count})
	}
	return points
}
