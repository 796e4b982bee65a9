package teams

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"sort"
	"testing"

	"golang.org/x/text/language"

	apperrors "github.com/louisbranch/orgdash/internal/services/web/platform/errors"
	webi18n "github.com/louisbranch/orgdash/internal/services/web/platform/i18n"
	"github.com/louisbranch/orgdash/internal/services/web/platform/notify"
)

func TestProjectsForTeamFiltersAndSortsByName(t *testing.T) {
	t.Parallel()

	got := projectsForTeam(Team{Slug: "backend"}, sampleProjects())
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "api" || got[1].Name != "worker" {
		t.Fatalf("order = [%s %s], want [api worker]", got[0].Name, got[1].Name)
	}
}

func TestProjectInTeamTrimsBothSlugs(t *testing.T) {
	t.Parallel()

	project := Project{Slug: "api", Teams: []Team{{Slug: " backend "}}}
	tests := []struct {
		team string
		want bool
	}{
		{team: "backend", want: true},
		{team: " backend", want: true},
		{team: "back", want: false},
		{team: " ", want: false},
	}
	for _, tc := range tests {
		if got := project.InTeam(tc.team); got != tc.want {
			t.Fatalf("InTeam(%q) = %v, want %v", tc.team, got, tc.want)
		}
	}
	if (Project{Teams: []Team{{Slug: ""}}}).InTeam("") {
		t.Fatal("InTeam(\"\") = true for blank membership, want false")
	}
}

func TestProjectsForTeamEmptyInput(t *testing.T) {
	t.Parallel()

	got := projectsForTeam(Team{Slug: "backend"}, nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("projectsForTeam(nil) = %#v, want empty slice", got)
	}
}

func TestProjectsForTeamIsStableForEqualNames(t *testing.T) {
	t.Parallel()

	projects := []Project{
		{ID: "a", Name: "same", Teams: []Team{{Slug: "t"}}},
		{ID: "b", Name: "Alpha", Teams: []Team{{Slug: "t"}}},
		{ID: "c", Name: "same", Teams: []Team{{Slug: "t"}}},
	}
	got := projectsForTeam(Team{Slug: "t"}, projects)
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	if ids[0] != "b" || ids[1] != "a" || ids[2] != "c" {
		t.Fatalf("ids = %v, want [b a c]", ids)
	}
}

func TestProjectsForTeamProperty(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	slugs := []string{"a", "b", "c"}
	names := []string{"zeta", "alpha", "Mid", "beta", "alpha"}
	for iteration := 0; iteration < 200; iteration++ {
		var projects []Project
		count := rng.Intn(8)
		for i := 0; i < count; i++ {
			var memberships []Team
			for _, slug := range slugs {
				if rng.Intn(2) == 0 {
					memberships = append(memberships, Team{Slug: slug})
				}
			}
			projects = append(projects, Project{ID: string(rune('0' + i)), Name: names[rng.Intn(len(names))], Teams: memberships})
		}
		team := Team{Slug: slugs[rng.Intn(len(slugs))]}
		got := projectsForTeam(team, projects)

		want := 0
		for _, p := range projects {
			if p.InTeam(team.Slug) {
				want++
			}
		}
		if len(got) != want {
			t.Fatalf("iteration %d: len = %d, want %d", iteration, len(got), want)
		}
		for _, p := range got {
			if !p.InTeam(team.Slug) {
				t.Fatalf("iteration %d: project %s not in team %s", iteration, p.ID, team.Slug)
			}
		}
		if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Name < got[j].Name }) {
			t.Fatalf("iteration %d: result not sorted by name", iteration)
		}
	}
}

func TestLoadTeamListBuildsProps(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{organization: sampleOrganization(), projects: sampleProjects()}
	props, err := newService(gateway).loadTeamList(context.Background(), "acme")
	if err != nil {
		t.Fatalf("loadTeamList() error = %v", err)
	}
	if !props.HasTeams {
		t.Fatal("HasTeams = false, want true")
	}
	if len(props.TeamList) != 2 || props.TeamList[0].Slug != "backend" {
		t.Fatalf("TeamList = %#v", props.TeamList)
	}
	if !props.Access.Has("team:write") {
		t.Fatal("expected team:write access")
	}
	if len(props.ProjectList) != 3 {
		t.Fatalf("ProjectList len = %d, want 3", len(props.ProjectList))
	}
}

func TestLoadTeamListRequiresOrganization(t *testing.T) {
	t.Parallel()

	_, err := newService(&fakeGateway{}).loadTeamList(context.Background(), "  ")
	if got := apperrors.HTTPStatus(err); got != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", got, http.StatusBadRequest)
	}
}

func TestLoadTeamListWithoutGatewayIsUnavailable(t *testing.T) {
	t.Parallel()

	_, err := newService(nil).loadTeamList(context.Background(), "acme")
	if got := apperrors.HTTPStatus(err); got != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", got, http.StatusServiceUnavailable)
	}
}

func TestToggleBookmarkSendsNegatedState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current bool
		want    bool
	}{
		{name: "bookmarked becomes unbookmarked", current: true, want: false},
		{name: "unbookmarked becomes bookmarked", current: false, want: true},
	}
	for _, tc := range tests {
		gateway := &fakeGateway{}
		sink := &recordingSink{}
		project := Project{ID: "1", Slug: "api", IsBookmarked: tc.current}
		if err := newService(gateway).toggleBookmark(context.Background(), "acme", project, sink, nil); err != nil {
			t.Fatalf("%s: toggleBookmark() error = %v", tc.name, err)
		}
		if len(gateway.updates) != 1 {
			t.Fatalf("%s: updates = %d, want 1", tc.name, len(gateway.updates))
		}
		call := gateway.updates[0]
		if call.org != "acme" || call.project != "api" || call.update.IsBookmarked != tc.want {
			t.Fatalf("%s: update = %+v", tc.name, call)
		}
		if project.IsBookmarked != tc.current {
			t.Fatalf("%s: project mutated locally", tc.name)
		}
		if len(sink.notices) != 0 {
			t.Fatalf("%s: notices = %+v, want none", tc.name, sink.notices)
		}
	}
}

func TestToggleBookmarkFailureAddsOneErrorNotice(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{updateErr: errors.New("boom")}
	sink := &recordingSink{}
	loc := webi18n.Printer(language.MustParse("en-US"))
	err := newService(gateway).toggleBookmark(context.Background(), "acme", Project{Slug: "api"}, sink, loc)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(sink.notices) != 1 || sink.notices[0].Level != notify.LevelError {
		t.Fatalf("notices = %+v, want one error", sink.notices)
	}
	if sink.notices[0].Message != "There was an error while trying to update the bookmark." {
		t.Fatalf("message = %q", sink.notices[0].Message)
	}
}

func TestLeaveTeamFailureAddsExactlyOneErrorNotice(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{leaveErr: errors.New("boom")}
	sink := &recordingSink{}
	loc := webi18n.Printer(language.MustParse("en-US"))
	err := newService(gateway).leaveTeam(context.Background(), "acme", Team{Slug: "backend"}, sink, loc)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(sink.notices) != 1 {
		t.Fatalf("notices = %d, want 1", len(sink.notices))
	}
	if sink.notices[0].Level != notify.LevelError || sink.notices[0].Message != "There was an error while trying to leave the team." {
		t.Fatalf("notice = %+v", sink.notices[0])
	}
	if len(gateway.leaves) != 1 || gateway.leaves[0] != (leaveCall{org: "acme", team: "backend"}) {
		t.Fatalf("leaves = %+v", gateway.leaves)
	}
}

func TestLeaveTeamSuccessAddsNothing(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	if err := newService(&fakeGateway{}).leaveTeam(context.Background(), "acme", Team{Slug: "backend"}, sink, nil); err != nil {
		t.Fatalf("leaveTeam() error = %v", err)
	}
	if len(sink.notices) != 0 {
		t.Fatalf("notices = %+v, want none", sink.notices)
	}
}

func TestLeaveTeamToleratesNilSink(t *testing.T) {
	t.Parallel()

	err := newService(&fakeGateway{leaveErr: errors.New("boom")}).leaveTeam(context.Background(), "acme", Team{Slug: "backend"}, nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
}
