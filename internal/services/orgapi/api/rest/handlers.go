package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/louisbranch/orgdash/internal/services/orgapi/storage"
)

const (
	invalidVisibilityDetail  = "Invalid value for 'visibility', valid values are: all, hidden, visible"
	invalidStatsPeriodDetail = "Invalid statsPeriod. Use a number of days such as '14d' or a duration such as '24h' or '90m', at most 90d"
)

// maxStatsPeriod bounds how far back stats can be requested.
const maxStatsPeriod = 90 * 24 * time.Hour

var errInvalidStatsPeriod = errors.New("invalid stats period")

type teamResponse struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type organizationTeamResponse struct {
	teamResponse
	IsMember bool `json:"isMember"`
}

type organizationResponse struct {
	ID     string                     `json:"id"`
	Slug   string                     `json:"slug"`
	Name   string                     `json:"name"`
	Access []string                   `json:"access"`
	Teams  []organizationTeamResponse `json:"teams"`
}

type statPoint storage.StatPoint

// MarshalJSON encodes the point as a [timestamp, count] pair.
func (p statPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64{p.Timestamp, p.Count})
}

type projectResponse struct {
	ID           string         `json:"id"`
	Slug         string         `json:"slug"`
	Name         string         `json:"name"`
	IsBookmarked bool           `json:"isBookmarked"`
	Teams        []teamResponse `json:"teams"`
	// Stats is nil when no stats period was requested.
	Stats any `json:"stats,omitempty"`
}

type projectUpdateRequest struct {
	IsBookmarked *bool `json:"isBookmarked"`
}

type environmentResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsHidden bool   `json:"isHidden"`
}

func (h *handler) handleOrganization(w http.ResponseWriter, r *http.Request) {
	view, err := h.store.GetOrganization(r.Context(), chi.URLParam(r, "org"), actorFrom(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := organizationResponse{
		ID:     view.ID,
		Slug:   view.Slug,
		Name:   view.Name,
		Access: view.Role.Capabilities(),
		Teams:  make([]organizationTeamResponse, 0, len(view.Teams)),
	}
	if resp.Access == nil {
		resp.Access = []string{}
	}
	for _, team := range view.Teams {
		resp.Teams = append(resp.Teams, organizationTeamResponse{
			teamResponse: teamResponse{ID: team.ID, Slug: team.Slug, Name: team.Name},
			IsMember:     team.IsMember,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleProjects(w http.ResponseWriter, r *http.Request) {
	window, err := statsWindow(r.URL.Query().Get("statsPeriod"), h.now())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, invalidStatsPeriodDetail)
		return
	}
	projects, err := h.store.ListProjects(r.Context(), chi.URLParam(r, "org"), actorFrom(r), window)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]projectResponse, 0, len(projects))
	for _, project := range projects {
		item := projectResponse{
			ID:           project.ID,
			Slug:         project.Slug,
			Name:         project.Name,
			IsBookmarked: project.IsBookmarked,
			Teams:        make([]teamResponse, 0, len(project.Teams)),
		}
		for _, team := range project.Teams {
			item.Teams = append(item.Teams, teamResponse{ID: team.ID, Slug: team.Slug, Name: team.Name})
		}
		if project.Stats != nil {
			points := make([]statPoint, 0, len(project.Stats))
			for _, point := range project.Stats {
				points = append(points, statPoint(point))
			}
			item.Stats = points
		}
		resp = append(resp, item)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req projectUpdateRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	if err := decoder.Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.IsBookmarked == nil {
		writeDetail(w, http.StatusBadRequest, "isBookmarked is required")
		return
	}
	org := chi.URLParam(r, "org")
	project := chi.URLParam(r, "project")
	if err := h.store.SetProjectBookmark(r.Context(), org, project, actorFrom(r), *req.IsBookmarked); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slug": project, "isBookmarked": *req.IsBookmarked})
}

func (h *handler) handleLeaveTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.store.LeaveTeam(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "team"), actorFrom(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleEnvironments(w http.ResponseWriter, r *http.Request) {
	visibility, err := storage.ParseVisibility(r.URL.Query().Get("visibility"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, invalidVisibilityDetail)
		return
	}
	envs, err := h.store.ListEnvironments(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "project"), actorFrom(r), visibility)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]environmentResponse, 0, len(envs))
	for _, env := range envs {
		resp = append(resp, environmentResponse{ID: env.ID, Name: env.Name, IsHidden: env.IsHidden})
	}
	writeJSON(w, http.StatusOK, resp)
}

// statsWindow parses a stats period such as "24h" or "14d". Periods up to
// two days are bucketed hourly, longer ones daily.
func statsWindow(raw string, now time.Time) (storage.StatsWindow, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return storage.StatsWindow{}, nil
	}
	period, err := parsePeriod(raw)
	if err != nil || period <= 0 || period > maxStatsPeriod {
		return storage.StatsWindow{}, fmt.Errorf("%w %q", errInvalidStatsPeriod, raw)
	}
	bucket := time.Hour
	if period > 48*time.Hour {
		bucket = 24 * time.Hour
	}
	return storage.StatsWindow{Since: now.Add(-period), Until: now, Bucket: bucket}, nil
}

func parsePeriod(raw string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, err
		}
		if n <= 0 || n > int(maxStatsPeriod/(24*time.Hour)) {
			return 0, errInvalidStatsPeriod
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(raw)
}
