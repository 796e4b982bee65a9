// Package flash provides one-time web notices persisted across redirects.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/louisbranch/orgdash/internal/services/web/platform/notify"
)

// CookieName is the canonical cookie used for one-time web notices.
const CookieName = "orgdash_flash"

// maxNotices bounds the cookie payload.
const maxNotices = 8

type notice struct {
	Level   notify.Level `json:"level"`
	Message string       `json:"message"`
}

// WriteQueue drains q into the flash cookie. An empty queue writes nothing.
func WriteQueue(w http.ResponseWriter, r *http.Request, q *notify.Queue) {
	Write(w, r, q.Drain())
}

// Write stores notices in the flash cookie for the next page render.
func Write(w http.ResponseWriter, r *http.Request, notices []notify.Notice) {
	if w == nil {
		return
	}
	normalized := normalize(notices)
	if len(normalized) == 0 {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear reads and clears the flash cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request) []notify.Notice {
	if r == nil {
		return nil
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return nil
	}
	Clear(w, r)
	return decode(cookie.Value)
}

// Clear expires any flash cookie.
func Clear(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func decode(raw string) []notify.Notice {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var stored []notice
	if err := json.Unmarshal(decoded, &stored); err != nil {
		return nil
	}
	out := make([]notify.Notice, 0, len(stored))
	for _, item := range normalizeStored(stored) {
		out = append(out, notify.Notice{Message: item.Message, Level: item.Level})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalize(notices []notify.Notice) []notice {
	stored := make([]notice, 0, len(notices))
	for _, item := range notices {
		stored = append(stored, notice{Level: item.Level, Message: item.Message})
	}
	return normalizeStored(stored)
}

func normalizeStored(stored []notice) []notice {
	out := make([]notice, 0, len(stored))
	for _, item := range stored {
		item.Message = strings.TrimSpace(item.Message)
		item.Level = notify.Level(strings.ToLower(strings.TrimSpace(string(item.Level))))
		if item.Message == "" || !item.Level.Valid() {
			continue
		}
		out = append(out, item)
		if len(out) == maxNotices {
			break
		}
	}
	return out
}

func isHTTPS(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https")
}
