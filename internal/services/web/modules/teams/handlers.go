package teams

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/orgdash/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/orgdash/internal/services/web/platform/flash"
	"github.com/louisbranch/orgdash/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/orgdash/internal/services/web/platform/i18n"
	"github.com/louisbranch/orgdash/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/orgdash/internal/services/web/platform/notify"
	"github.com/louisbranch/orgdash/internal/services/web/platform/pagerender"
	"github.com/louisbranch/orgdash/internal/services/web/platform/tooltip"
	"github.com/louisbranch/orgdash/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/orgdash/internal/services/web/templates"
)

// teamService defines the service operations used by team handlers.
type teamService interface {
	loadTeamList(ctx context.Context, org string) (TeamListProps, error)
	toggleBookmark(ctx context.Context, org string, project Project, sink notify.Sink, loc webi18n.Localizer) error
	leaveTeam(ctx context.Context, org string, team Team, sink notify.Sink, loc webi18n.Localizer) error
}

type handlers struct {
	modulehandler.Base
	service teamService
	tips    tooltip.Registrar
}

func newHandlers(s teamService, base modulehandler.Base, tips tooltip.Registrar) handlers {
	return handlers{Base: base, service: s, tips: tooltip.OrDefault(tips)}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	org := strings.TrimSpace(r.PathValue("org"))
	loc, _ := h.PageLocalizer(w, r)
	props, err := h.service.loadTeamList(r.Context(), org)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WritePage(w, r, pagerender.ModulePage{
		Title:        webi18n.T(loc, "teams.title"),
		Organization: props.Organization.Slug,
		Fragment:     webtemplates.TeamsFragment(mapTeamsPageView(props, h.tips, loc), loc),
	})
}

func (h handlers) handleLeave(w http.ResponseWriter, r *http.Request) {
	org := strings.TrimSpace(r.PathValue("org"))
	team := strings.TrimSpace(r.PathValue("team"))
	if org == "" || team == "" {
		h.WriteNotFound(w, r)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	queue := notify.NewQueue()
	if err := h.service.leaveTeam(r.Context(), org, Team{Slug: team}, queue, loc); err != nil {
		h.Logger().Warnw("leave team failed", "org", org, "team", team, "request_id", httpx.RequestIDFrom(r), "error", err)
	}
	h.finishAction(w, r, org, queue)
}

func (h handlers) handleBookmark(w http.ResponseWriter, r *http.Request) {
	org := strings.TrimSpace(r.PathValue("org"))
	projectSlug := strings.TrimSpace(r.PathValue("project"))
	if org == "" || projectSlug == "" {
		h.WriteNotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form"))
		return
	}
	isBookmarked, err := strconv.ParseBool(strings.TrimSpace(r.PostForm.Get("is_bookmarked")))
	if err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "is_bookmarked must be a boolean"))
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	queue := notify.NewQueue()
	project := Project{Slug: projectSlug, IsBookmarked: isBookmarked}
	if err := h.service.toggleBookmark(r.Context(), org, project, queue, loc); err != nil {
		h.Logger().Warnw("toggle bookmark failed", "org", org, "project", projectSlug, "request_id", httpx.RequestIDFrom(r), "error", err)
	}
	h.finishAction(w, r, org, queue)
}

// finishAction persists pending notices and redirects back to the list.
func (h handlers) finishAction(w http.ResponseWriter, r *http.Request, org string, queue *notify.Queue) {
	flashnotice.WriteQueue(w, r, queue)
	httpx.WriteRedirect(w, r, routepath.Teams(org))
}
