package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/orgdash/internal/services/orgapi/storage"
)

// DemoOrganization is the slug of the organization created by SeedDemo.
const DemoOrganization = "acme"

type demoProject struct {
	slug  string
	name  string
	teams []string
	// rate is the base hourly event count; zero records no stats.
	rate int64
}

// SeedDemo populates a demo organization for userID: three teams (the user
// belongs to two), four projects, a bookmark, a day of hourly stats ending at
// now and a few project environments. Seeding is idempotent.
func (s *Store) SeedDemo(ctx context.Context, userID string, now time.Time) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("demo user id is required")
	}
	orgID, err := s.PutOrganization(ctx, storage.Organization{Slug: DemoOrganization, Name: "Acme Corp", CreatedAt: now})
	if err != nil {
		return err
	}
	if err := s.PutMember(ctx, orgID, userID, storage.RoleAdmin); err != nil {
		return err
	}

	teamIDs := make(map[string]string)
	for _, team := range []struct {
		slug   string
		name   string
		member bool
	}{
		{slug: "backend", name: "Backend", member: true},
		{slug: "frontend", name: "Frontend", member: true},
		{slug: "ops", name: "Operations"},
	} {
		id, err := s.PutTeam(ctx, orgID, storage.Team{Slug: team.slug, Name: team.name})
		if err != nil {
			return err
		}
		teamIDs[team.slug] = id
		if team.member {
			if err := s.PutTeamMember(ctx, id, userID); err != nil {
				return err
			}
		}
	}

	start := now.UTC().Truncate(time.Hour).Add(-23 * time.Hour)
	projectIDs := make(map[string]string)
	for _, project := range []demoProject{
		{slug: "api", name: "api", teams: []string{"backend", "frontend"}, rate: 40},
		{slug: "worker", name: "worker", teams: []string{"backend"}, rate: 12},
		{slug: "web", name: "web", teams: []string{"frontend"}},
		{slug: "billing", name: "billing", teams: []string{"ops"}, rate: 3},
	} {
		ids := make([]string, 0, len(project.teams))
		for _, slug := range project.teams {
			ids = append(ids, teamIDs[slug])
		}
		id, err := s.PutProject(ctx, orgID, storage.Project{Slug: project.slug, Name: project.name}, ids...)
		if err != nil {
			return err
		}
		projectIDs[project.slug] = id
		if project.rate == 0 {
			continue
		}
		if err := s.clearStats(ctx, id); err != nil {
			return err
		}
		for hour := int64(0); hour < 24; hour++ {
			count := project.rate + (hour*7)%project.rate
			if err := s.AddStat(ctx, id, start.Add(time.Duration(hour)*time.Hour), count); err != nil {
				return err
			}
		}
	}

	if err := s.SetProjectBookmark(ctx, DemoOrganization, "api", userID, true); err != nil {
		return err
	}

	hidden := true
	for _, env := range []struct {
		name   string
		hidden *bool
	}{
		{name: "production"},
		{name: "staging"},
		{name: "qa", hidden: &hidden},
	} {
		if _, err := s.PutEnvironment(ctx, orgID, projectIDs["api"], env.name, env.hidden); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) clearStats(ctx context.Context, projectID string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM project_stats WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clear stats: %w", err)
	}
	return nil
}
