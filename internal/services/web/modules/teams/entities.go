package teams

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/louisbranch/orgdash/internal/services/web/platform/access"
)

// Team is a named group of projects within an organization.
type Team struct {
	ID   string `json:"id,omitempty"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// OrganizationTeam is a team as listed on an organization, with the
// viewer's membership.
type OrganizationTeam struct {
	Team
	IsMember bool `json:"isMember"`
}

// Organization is the organization snapshot the team list is rendered for.
type Organization struct {
	ID     string             `json:"id,omitempty"`
	Slug   string             `json:"slug"`
	Name   string             `json:"name"`
	Access []string           `json:"access"`
	Teams  []OrganizationTeam `json:"teams"`
}

// AccessSet returns the viewer's capabilities.
func (o Organization) AccessSet() access.Set {
	return access.NewSet(o.Access...)
}

// MemberTeams returns the teams the viewer belongs to, in listing order.
func (o Organization) MemberTeams() []Team {
	out := make([]Team, 0, len(o.Teams))
	for _, team := range o.Teams {
		if team.IsMember {
			out = append(out, team.Team)
		}
	}
	return out
}

// StatPoint is one (timestamp, count) sample. It encodes as a two-element
// JSON array.
type StatPoint struct {
	Timestamp int64
	Count     int64
}

// MarshalJSON implements json.Marshaler.
func (p StatPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64{p.Timestamp, p.Count})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *StatPoint) UnmarshalJSON(data []byte) error {
	var pair []json.Number
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode stat point: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode stat point: want 2 elements, got %d", len(pair))
	}
	ts, err := pair[0].Int64()
	if err != nil {
		return fmt.Errorf("decode stat point timestamp: %w", err)
	}
	count, err := pair[1].Int64()
	if err != nil {
		return fmt.Errorf("decode stat point count: %w", err)
	}
	p.Timestamp, p.Count = ts, count
	return nil
}

// Project is a monitored unit owned by one or more teams. A nil Stats means
// no stats were requested or returned.
type Project struct {
	ID           string      `json:"id"`
	Slug         string      `json:"slug"`
	Name         string      `json:"name"`
	IsBookmarked bool        `json:"isBookmarked"`
	Stats        []StatPoint `json:"stats,omitempty"`
	Teams        []Team      `json:"teams"`
}

// InTeam reports whether the project's membership includes teamSlug.
func (p Project) InTeam(teamSlug string) bool {
	teamSlug = strings.TrimSpace(teamSlug)
	if teamSlug == "" {
		return false
	}
	for _, team := range p.Teams {
		if strings.TrimSpace(team.Slug) == teamSlug {
			return true
		}
	}
	return false
}

// DisplayName returns the project name, falling back to its slug.
func (p Project) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return p.Slug
}

// ProjectUpdate is the payload for a project update call.
type ProjectUpdate struct {
	IsBookmarked bool `json:"isBookmarked"`
}

// TeamListProps is the already-fetched snapshot the team list renders from.
type TeamListProps struct {
	Access       access.Set
	Organization Organization
	TeamList     []Team
	ProjectList  []Project
	HasTeams     bool
}
