// Package storage defines persistence contracts for organization API state.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrForbidden indicates the actor is not a member of the organization.
	ErrForbidden = errors.New("organization membership required")
	// ErrInvalidVisibility indicates an unknown environment visibility filter.
	ErrInvalidVisibility = errors.New("invalid environment visibility")
)

// Role is an organization membership role.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
)

// Capabilities returns the access capabilities granted by the role.
func (r Role) Capabilities() []string {
	switch r {
	case RoleOwner:
		return []string{"project:read", "team:read", "project:write", "team:write", "org:admin"}
	case RoleAdmin:
		return []string{"project:read", "team:read", "project:write", "team:write"}
	case RoleMember:
		return []string{"project:read", "team:read"}
	default:
		return nil
	}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r.Capabilities() != nil
}

// Organization is one tenant.
type Organization struct {
	ID        string
	Slug      string
	Name      string
	CreatedAt time.Time
}

// Team is a named group inside an organization.
type Team struct {
	ID   string
	Slug string
	Name string
}

// OrganizationTeam is a team annotated with the actor's membership.
type OrganizationTeam struct {
	Team
	IsMember bool
}

// OrganizationView is an organization as seen by one member.
type OrganizationView struct {
	Organization
	Role  Role
	Teams []OrganizationTeam
}

// StatPoint is one event-count bucket keyed by its unix start second.
type StatPoint struct {
	Timestamp int64
	Count     int64
}

// StatsWindow selects the stats returned with projects. A zero Bucket skips
// stats entirely.
type StatsWindow struct {
	Since  time.Time
	Until  time.Time
	Bucket time.Duration
}

// Enabled reports whether stats were requested.
func (w StatsWindow) Enabled() bool {
	return w.Bucket > 0
}

// Project is a monitored unit owned by zero or more teams.
type Project struct {
	ID           string
	Slug         string
	Name         string
	IsBookmarked bool
	Teams        []Team
	// Stats is nil when no window was requested.
	Stats []StatPoint
}

// Environment is a deploy environment attached to a project.
type Environment struct {
	ID       string
	Name     string
	IsHidden bool
}

// Visibility filters project environments by their hidden flag.
type Visibility string

const (
	VisibilityVisible Visibility = "visible"
	VisibilityHidden  Visibility = "hidden"
	VisibilityAll     Visibility = "all"
)

// ParseVisibility parses a visibility filter, defaulting to visible.
func ParseVisibility(raw string) (Visibility, error) {
	switch Visibility(strings.TrimSpace(raw)) {
	case "", VisibilityVisible:
		return VisibilityVisible, nil
	case VisibilityHidden:
		return VisibilityHidden, nil
	case VisibilityAll:
		return VisibilityAll, nil
	default:
		return "", fmt.Errorf("%w: valid values are: %s, %s, %s", ErrInvalidVisibility, VisibilityAll, VisibilityHidden, VisibilityVisible)
	}
}

// Store is the read/write surface used by the organization API handlers.
type Store interface {
	GetOrganization(ctx context.Context, orgSlug string, userID string) (OrganizationView, error)
	ListProjects(ctx context.Context, orgSlug string, userID string, window StatsWindow) ([]Project, error)
	SetProjectBookmark(ctx context.Context, orgSlug string, projectSlug string, userID string, bookmarked bool) error
	LeaveTeam(ctx context.Context, orgSlug string, teamSlug string, userID string) error
	ListEnvironments(ctx context.Context, orgSlug string, projectSlug string, userID string, visibility Visibility) ([]Environment, error)
}
