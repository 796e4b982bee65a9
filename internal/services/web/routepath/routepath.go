// Package routepath centralizes web route patterns and URL builders.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Static = "/static/"

	// OrganizationTeams is the teams module mount prefix.
	OrganizationTeams = "/organizations/{org}/teams/"
	// OrganizationTeamLeavePattern leaves one team.
	OrganizationTeamLeavePattern = "/organizations/{org}/teams/{team}/leave/"
	// OrganizationProjectBookmarkPattern toggles one project bookmark.
	OrganizationProjectBookmarkPattern = "/organizations/{org}/teams/projects/{project}/bookmark/"
	// OrganizationTeamsRestPattern catches unknown teams routes.
	OrganizationTeamsRestPattern = "/organizations/{org}/teams/{rest...}"

	// OrganizationDashboard is the deploys module mount prefix.
	OrganizationDashboard = "/organizations/{org}/dashboard/"
	// OrganizationDashboardRestPattern catches unknown dashboard routes.
	OrganizationDashboardRestPattern = "/organizations/{org}/dashboard/{rest...}"
)

// Teams returns the team list URL for an organization.
func Teams(org string) string {
	return "/organizations/" + escapeSegment(org) + "/teams/"
}

// NewTeam returns the create-team URL.
func NewTeam(org string) string {
	return "/organizations/" + escapeSegment(org) + "/teams/new/"
}

// AllTeams returns the browse-all-teams URL.
func AllTeams(org string) string {
	return "/organizations/" + escapeSegment(org) + "/teams/all-teams/"
}

// TeamSettings returns the settings URL for one team.
func TeamSettings(org, team string) string {
	return "/organizations/" + escapeSegment(org) + "/teams/" + escapeSegment(team) + "/settings/"
}

// TeamLeave returns the leave-team action URL.
func TeamLeave(org, team string) string {
	return "/organizations/" + escapeSegment(org) + "/teams/" + escapeSegment(team) + "/leave/"
}

// ProjectBookmark returns the bookmark toggle action URL.
func ProjectBookmark(org, project string) string {
	return "/organizations/" + escapeSegment(org) + "/teams/projects/" + escapeSegment(project) + "/bookmark/"
}

// NewProject returns the create-project URL preselecting team.
func NewProject(org, team string) string {
	return "/organizations/" + escapeSegment(org) + "/projects/new/?" + url.Values{"team": []string{team}}.Encode()
}

// Project returns the project overview URL.
func Project(org, project string) string {
	return "/" + escapeSegment(org) + "/" + escapeSegment(project) + "/"
}

// Dashboard returns the organization dashboard URL.
func Dashboard(org string) string {
	return "/organizations/" + escapeSegment(org) + "/dashboard/"
}

func escapeSegment(value string) string {
	return url.PathEscape(strings.TrimSpace(value))
}
