package rest

import (
	"net/http"
	"strings"

	"github.com/louisbranch/orgdash/internal/platform/requestctx"
)

// requireActor resolves the acting user from a bearer token, falling back to
// the configured default user.
func (h *handler) requireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := bearerToken(r.Header.Get("Authorization"))
		if userID == "" {
			userID = h.defaultUser
		}
		if userID == "" {
			writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}
		next.ServeHTTP(w, r.WithContext(requestctx.WithUserID(r.Context(), userID)))
	})
}

func actorFrom(r *http.Request) string {
	return requestctx.UserIDFromContext(r.Context())
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
