// Package sqlite provides a SQLite-backed organization API storage
// implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	sqlitemigrate "github.com/louisbranch/orgdash/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/orgdash/internal/services/orgapi/storage"
	"github.com/louisbranch/orgdash/internal/services/orgapi/storage/sqlite/migrations"
)

// Store persists organization API state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite organization store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// membership resolves an organization by slug and the actor's role in it.
func (s *Store) membership(ctx context.Context, orgSlug string, userID string) (storage.Organization, storage.Role, error) {
	orgSlug = strings.TrimSpace(orgSlug)
	userID = strings.TrimSpace(userID)
	if orgSlug == "" {
		return storage.Organization{}, "", fmt.Errorf("organization slug is required")
	}
	var org storage.Organization
	var createdAt int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, slug, name, created_at FROM organizations WHERE slug = ?`,
		orgSlug,
	).Scan(&org.ID, &org.Slug, &org.Name, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Organization{}, "", storage.ErrNotFound
		}
		return storage.Organization{}, "", fmt.Errorf("get organization: %w", err)
	}
	org.CreatedAt = fromMillis(createdAt)
	if userID == "" {
		return storage.Organization{}, "", storage.ErrForbidden
	}

	var role string
	err = s.sqlDB.QueryRowContext(ctx,
		`SELECT role FROM organization_members WHERE organization_id = ? AND user_id = ?`,
		org.ID, userID,
	).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Organization{}, "", storage.ErrForbidden
		}
		return storage.Organization{}, "", fmt.Errorf("get organization member: %w", err)
	}
	return org, storage.Role(role), nil
}

func (s *Store) projectID(ctx context.Context, orgID string, projectSlug string) (string, error) {
	projectSlug = strings.TrimSpace(projectSlug)
	if projectSlug == "" {
		return "", fmt.Errorf("project slug is required")
	}
	var id string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id FROM projects WHERE organization_id = ? AND slug = ?`,
		orgID, projectSlug,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("get project: %w", err)
	}
	return id, nil
}

// GetOrganization returns the organization with every team and the actor's
// team membership.
func (s *Store) GetOrganization(ctx context.Context, orgSlug string, userID string) (storage.OrganizationView, error) {
	if err := s.ready(ctx); err != nil {
		return storage.OrganizationView{}, err
	}
	org, role, err := s.membership(ctx, orgSlug, userID)
	if err != nil {
		return storage.OrganizationView{}, err
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT t.id, t.slug, t.name,
		        EXISTS (SELECT 1 FROM team_members tm WHERE tm.team_id = t.id AND tm.user_id = ?)
		 FROM teams t
		 WHERE t.organization_id = ?
		 ORDER BY t.slug`,
		strings.TrimSpace(userID), org.ID,
	)
	if err != nil {
		return storage.OrganizationView{}, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	view := storage.OrganizationView{Organization: org, Role: role, Teams: []storage.OrganizationTeam{}}
	for rows.Next() {
		var team storage.OrganizationTeam
		if err := rows.Scan(&team.ID, &team.Slug, &team.Name, &team.IsMember); err != nil {
			return storage.OrganizationView{}, fmt.Errorf("scan team: %w", err)
		}
		view.Teams = append(view.Teams, team)
	}
	if err := rows.Err(); err != nil {
		return storage.OrganizationView{}, fmt.Errorf("list teams: %w", err)
	}
	return view, nil
}

// ListProjects returns the organization's projects ordered by slug, with
// their teams, the actor's bookmark and, when requested, bucketed stats.
func (s *Store) ListProjects(ctx context.Context, orgSlug string, userID string, window storage.StatsWindow) ([]storage.Project, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	org, _, err := s.membership(ctx, orgSlug, userID)
	if err != nil {
		return nil, err
	}

	projects, index, err := s.listProjectRows(ctx, org.ID, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	if err := s.attachProjectTeams(ctx, org.ID, projects, index); err != nil {
		return nil, err
	}
	if window.Enabled() {
		if err := s.attachProjectStats(ctx, org.ID, window, projects, index); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func (s *Store) listProjectRows(ctx context.Context, orgID string, userID string) ([]storage.Project, map[string]int, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT p.id, p.slug, p.name,
		        EXISTS (SELECT 1 FROM project_bookmarks b WHERE b.project_id = p.id AND b.user_id = ?)
		 FROM projects p
		 WHERE p.organization_id = ?
		 ORDER BY p.slug`,
		userID, orgID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []storage.Project{}
	index := make(map[string]int)
	for rows.Next() {
		var project storage.Project
		if err := rows.Scan(&project.ID, &project.Slug, &project.Name, &project.IsBookmarked); err != nil {
			return nil, nil, fmt.Errorf("scan project: %w", err)
		}
		project.Teams = []storage.Team{}
		index[project.ID] = len(projects)
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, index, nil
}

func (s *Store) attachProjectTeams(ctx context.Context, orgID string, projects []storage.Project, index map[string]int) error {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT pt.project_id, t.id, t.slug, t.name
		 FROM project_teams pt
		 JOIN teams t ON t.id = pt.team_id
		 WHERE t.organization_id = ?
		 ORDER BY t.slug`,
		orgID,
	)
	if err != nil {
		return fmt.Errorf("list project teams: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var projectID string
		var team storage.Team
		if err := rows.Scan(&projectID, &team.ID, &team.Slug, &team.Name); err != nil {
			return fmt.Errorf("scan project team: %w", err)
		}
		if i, ok := index[projectID]; ok {
			projects[i].Teams = append(projects[i].Teams, team)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list project teams: %w", err)
	}
	return nil
}

func (s *Store) attachProjectStats(ctx context.Context, orgID string, window storage.StatsWindow, projects []storage.Project, index map[string]int) error {
	first, step, count := statBuckets(window)
	for i := range projects {
		projects[i].Stats = make([]storage.StatPoint, count)
		for b := range projects[i].Stats {
			projects[i].Stats[b].Timestamp = first + int64(b)*step
		}
	}
	if count == 0 {
		return nil
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT s.project_id, (s.ts / ?) * ? AS bucket, SUM(s.count)
		 FROM project_stats s
		 JOIN projects p ON p.id = s.project_id
		 WHERE p.organization_id = ? AND s.ts >= ? AND s.ts < ?
		 GROUP BY s.project_id, bucket
		 ORDER BY s.project_id, bucket`,
		step, step, orgID, first, first+int64(count)*step,
	)
	if err != nil {
		return fmt.Errorf("list project stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var projectID string
		var point storage.StatPoint
		if err := rows.Scan(&projectID, &point.Timestamp, &point.Count); err != nil {
			return fmt.Errorf("scan project stat: %w", err)
		}
		i, ok := index[projectID]
		if !ok {
			continue
		}
		if b := (point.Timestamp - first) / step; b >= 0 && b < int64(count) {
			projects[i].Stats[b].Count = point.Count
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list project stats: %w", err)
	}
	return nil
}

// statBuckets returns the start of the first bucket, the bucket size in
// seconds and the bucket count covering window. The last bucket is the one
// holding the instant just before Until.
func statBuckets(window storage.StatsWindow) (first int64, step int64, count int) {
	step = int64(window.Bucket / time.Second)
	if step <= 0 {
		step = 1
	}
	since, until := window.Since.Unix(), window.Until.Unix()
	if until <= since {
		return 0, step, 0
	}
	count = int((until - since + step - 1) / step)
	last := ((until - 1) / step) * step
	return last - int64(count-1)*step, step, count
}

// SetProjectBookmark records or clears the actor's bookmark on a project.
func (s *Store) SetProjectBookmark(ctx context.Context, orgSlug string, projectSlug string, userID string, bookmarked bool) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	org, _, err := s.membership(ctx, orgSlug, userID)
	if err != nil {
		return err
	}
	projectID, err := s.projectID(ctx, org.ID, projectSlug)
	if err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)
	if bookmarked {
		_, err = s.sqlDB.ExecContext(ctx,
			`INSERT INTO project_bookmarks (project_id, user_id, created_at) VALUES (?, ?, ?)
			 ON CONFLICT(project_id, user_id) DO NOTHING`,
			projectID, userID, toMillis(time.Now()),
		)
	} else {
		_, err = s.sqlDB.ExecContext(ctx,
			`DELETE FROM project_bookmarks WHERE project_id = ? AND user_id = ?`,
			projectID, userID,
		)
	}
	if err != nil {
		return fmt.Errorf("set project bookmark: %w", err)
	}
	return nil
}

// LeaveTeam removes the actor from a team. It returns storage.ErrNotFound
// when the team does not exist or the actor is not on it.
func (s *Store) LeaveTeam(ctx context.Context, orgSlug string, teamSlug string, userID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	org, _, err := s.membership(ctx, orgSlug, userID)
	if err != nil {
		return err
	}
	teamSlug = strings.TrimSpace(teamSlug)
	if teamSlug == "" {
		return fmt.Errorf("team slug is required")
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM team_members
		 WHERE user_id = ?
		   AND team_id = (SELECT id FROM teams WHERE organization_id = ? AND slug = ?)`,
		strings.TrimSpace(userID), org.ID, teamSlug,
	)
	if err != nil {
		return fmt.Errorf("leave team: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("leave team rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListEnvironments returns a project's environments ordered by name.
func (s *Store) ListEnvironments(ctx context.Context, orgSlug string, projectSlug string, userID string, visibility storage.Visibility) ([]storage.Environment, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	var filter string
	switch visibility {
	case storage.VisibilityVisible, "":
		filter = ` AND (ep.is_hidden IS NULL OR ep.is_hidden = 0)`
	case storage.VisibilityHidden:
		filter = ` AND ep.is_hidden = 1`
	case storage.VisibilityAll:
	default:
		return nil, storage.ErrInvalidVisibility
	}
	org, _, err := s.membership(ctx, orgSlug, userID)
	if err != nil {
		return nil, err
	}
	projectID, err := s.projectID(ctx, org.ID, projectSlug)
	if err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT e.id, e.name, COALESCE(ep.is_hidden, 0)
		 FROM environment_projects ep
		 JOIN environments e ON e.id = ep.environment_id
		 WHERE ep.project_id = ?`+filter+`
		 ORDER BY e.name`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list environments: %w", err)
	}
	defer rows.Close()

	environments := []storage.Environment{}
	for rows.Next() {
		var env storage.Environment
		if err := rows.Scan(&env.ID, &env.Name, &env.IsHidden); err != nil {
			return nil, fmt.Errorf("scan environment: %w", err)
		}
		environments = append(environments, env)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list environments: %w", err)
	}
	return environments, nil
}

func newID(value string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return uuid.NewString()
}
