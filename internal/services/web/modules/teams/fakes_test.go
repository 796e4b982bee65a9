package teams

import (
	"context"
	"net/url"
	"sync"

	"github.com/louisbranch/orgdash/internal/services/web/platform/apiclient"
	"github.com/louisbranch/orgdash/internal/services/web/platform/notify"
)

type updateCall struct {
	org     string
	project string
	update  ProjectUpdate
}

type leaveCall struct {
	org  string
	team string
}

// fakeGateway implements TeamGateway for tests with configurable return
// values, error injection and call recording.
type fakeGateway struct {
	mu           sync.Mutex
	organization Organization
	orgErr       error
	projects     []Project
	projectsErr  error
	updateErr    error
	leaveErr     error
	updates      []updateCall
	leaves       []leaveCall
}

var _ TeamGateway = (*fakeGateway)(nil)

func (f *fakeGateway) LoadOrganization(context.Context, string) (Organization, error) {
	if f.orgErr != nil {
		return Organization{}, f.orgErr
	}
	return f.organization, nil
}

func (f *fakeGateway) LoadProjects(context.Context, string) ([]Project, error) {
	if f.projectsErr != nil {
		return nil, f.projectsErr
	}
	return f.projects, nil
}

func (f *fakeGateway) UpdateProject(_ context.Context, org string, project string, update ProjectUpdate, callbacks apiclient.Callbacks) error {
	f.mu.Lock()
	f.updates = append(f.updates, updateCall{org: org, project: project, update: update})
	f.mu.Unlock()
	return finish(f.updateErr, callbacks)
}

func (f *fakeGateway) LeaveTeam(_ context.Context, org string, team string, callbacks apiclient.Callbacks) error {
	f.mu.Lock()
	f.leaves = append(f.leaves, leaveCall{org: org, team: team})
	f.mu.Unlock()
	return finish(f.leaveErr, callbacks)
}

func finish(err error, callbacks apiclient.Callbacks) error {
	if err != nil {
		if callbacks.Error != nil {
			callbacks.Error(err)
		}
		return err
	}
	if callbacks.Success != nil {
		callbacks.Success()
	}
	return nil
}

type apiCall struct {
	method string
	path   string
	query  url.Values
	data   any
}

// fakeAPI implements API and records every call.
type fakeAPI struct {
	calls   []apiCall
	getErr  error
	callErr error
	get     func(path string, out any)
}

func (f *fakeAPI) Get(_ context.Context, path string, query url.Values, out any) error {
	f.calls = append(f.calls, apiCall{method: "GET", path: path, query: query})
	if f.getErr != nil {
		return f.getErr
	}
	if f.get != nil {
		f.get(path, out)
	}
	return nil
}

func (f *fakeAPI) Update(_ context.Context, path string, data any, callbacks apiclient.Callbacks) error {
	f.calls = append(f.calls, apiCall{method: "PUT", path: path, data: data})
	return finish(f.callErr, callbacks)
}

func (f *fakeAPI) Delete(_ context.Context, path string, callbacks apiclient.Callbacks) error {
	f.calls = append(f.calls, apiCall{method: "DELETE", path: path})
	return finish(f.callErr, callbacks)
}

// recordingSink captures notices in order.
type recordingSink struct {
	notices []notify.Notice
}

func (s *recordingSink) Add(message string, level notify.Level) {
	s.notices = append(s.notices, notify.Notice{Message: message, Level: level})
}

func sampleOrganization() Organization {
	return Organization{
		Slug:   "acme",
		Name:   "Acme",
		Access: []string{"project:read", "project:write", "team:read", "team:write"},
		Teams: []OrganizationTeam{
			{Team: Team{Slug: "backend", Name: "Backend"}, IsMember: true},
			{Team: Team{Slug: "frontend", Name: "Frontend"}, IsMember: true},
			{Team: Team{Slug: "ops", Name: "Ops"}, IsMember: false},
		},
	}
}

func sampleProjects() []Project {
	return []Project{
		{ID: "3", Slug: "worker", Name: "worker", Teams: []Team{{Slug: "backend"}}, Stats: []StatPoint{{Timestamp: 100, Count: 3}, {Timestamp: 200, Count: 6}}},
		{ID: "1", Slug: "api", Name: "api", IsBookmarked: true, Teams: []Team{{Slug: "backend"}, {Slug: "frontend"}}},
		{ID: "2", Slug: "web", Name: "web", Teams: []Team{{Slug: "frontend"}}},
	}
}
