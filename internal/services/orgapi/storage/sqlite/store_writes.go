package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/orgdash/internal/services/orgapi/storage"
)

// PutOrganization upserts an organization by slug and returns its id.
func (s *Store) PutOrganization(ctx context.Context, org storage.Organization) (string, error) {
	if err := s.ready(ctx); err != nil {
		return "", err
	}
	slug := strings.TrimSpace(org.Slug)
	if slug == "" {
		return "", fmt.Errorf("organization slug is required")
	}
	createdAt := org.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	var id string
	err := s.sqlDB.QueryRowContext(ctx,
		`INSERT INTO organizations (id, slug, name, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET name = excluded.name
		 RETURNING id`,
		newID(org.ID), slug, strings.TrimSpace(org.Name), toMillis(createdAt),
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("put organization: %w", err)
	}
	return id, nil
}

// PutMember upserts an organization membership.
func (s *Store) PutMember(ctx context.Context, orgID string, userID string, role storage.Role) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO organization_members (organization_id, user_id, role) VALUES (?, ?, ?)
		 ON CONFLICT(organization_id, user_id) DO UPDATE SET role = excluded.role`,
		orgID, userID, string(role),
	)
	if err != nil {
		return fmt.Errorf("put member: %w", err)
	}
	return nil
}

// PutTeam upserts a team by organization and slug and returns its id.
func (s *Store) PutTeam(ctx context.Context, orgID string, team storage.Team) (string, error) {
	if err := s.ready(ctx); err != nil {
		return "", err
	}
	slug := strings.TrimSpace(team.Slug)
	if slug == "" {
		return "", fmt.Errorf("team slug is required")
	}
	var id string
	err := s.sqlDB.QueryRowContext(ctx,
		`INSERT INTO teams (id, organization_id, slug, name) VALUES (?, ?, ?, ?)
		 ON CONFLICT(organization_id, slug) DO UPDATE SET name = excluded.name
		 RETURNING id`,
		newID(team.ID), orgID, slug, strings.TrimSpace(team.Name),
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("put team: %w", err)
	}
	return id, nil
}

// PutTeamMember adds a user to a team.
func (s *Store) PutTeamMember(ctx context.Context, teamID string, userID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO team_members (team_id, user_id) VALUES (?, ?)
		 ON CONFLICT(team_id, user_id) DO NOTHING`,
		teamID, strings.TrimSpace(userID),
	)
	if err != nil {
		return fmt.Errorf("put team member: %w", err)
	}
	return nil
}

// PutProject upserts a project by organization and slug, links it to the
// given teams and returns its id.
func (s *Store) PutProject(ctx context.Context, orgID string, project storage.Project, teamIDs ...string) (string, error) {
	if err := s.ready(ctx); err != nil {
		return "", err
	}
	slug := strings.TrimSpace(project.Slug)
	if slug == "" {
		return "", fmt.Errorf("project slug is required")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin put project: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id string
	err = tx.QueryRowContext(ctx,
		`INSERT INTO projects (id, organization_id, slug, name) VALUES (?, ?, ?, ?)
		 ON CONFLICT(organization_id, slug) DO UPDATE SET name = excluded.name
		 RETURNING id`,
		newID(project.ID), orgID, slug, strings.TrimSpace(project.Name),
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("put project: %w", err)
	}
	for _, teamID := range teamIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO project_teams (project_id, team_id) VALUES (?, ?)
			 ON CONFLICT(project_id, team_id) DO NOTHING`,
			id, teamID,
		); err != nil {
			return "", fmt.Errorf("link project team: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit put project: %w", err)
	}
	return id, nil
}

// AddStat adds count events to the project at ts, accumulating repeats.
func (s *Store) AddStat(ctx context.Context, projectID string, ts time.Time, count int64) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("stat count must not be negative")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO project_stats (project_id, ts, count) VALUES (?, ?, ?)
		 ON CONFLICT(project_id, ts) DO UPDATE SET count = count + excluded.count`,
		projectID, ts.Unix(), count,
	)
	if err != nil {
		return fmt.Errorf("add stat: %w", err)
	}
	return nil
}

// PutEnvironment upserts an environment by name and attaches it to a
// project. A nil hidden leaves the flag unset, which reads as visible.
func (s *Store) PutEnvironment(ctx context.Context, orgID string, projectID string, name string, hidden *bool) (string, error) {
	if err := s.ready(ctx); err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("environment name is required")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin put environment: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id string
	err = tx.QueryRowContext(ctx,
		`INSERT INTO environments (id, organization_id, name) VALUES (?, ?, ?)
		 ON CONFLICT(organization_id, name) DO UPDATE SET name = excluded.name
		 RETURNING id`,
		newID(""), orgID, name,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("put environment: %w", err)
	}
	var hiddenValue any
	if hidden != nil {
		hiddenValue = *hidden
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO environment_projects (environment_id, project_id, is_hidden) VALUES (?, ?, ?)
		 ON CONFLICT(environment_id, project_id) DO UPDATE SET is_hidden = excluded.is_hidden`,
		id, projectID, hiddenValue,
	); err != nil {
		return "", fmt.Errorf("attach environment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit put environment: %w", err)
	}
	return id, nil
}
