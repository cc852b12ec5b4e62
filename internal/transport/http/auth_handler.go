package httptransport

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"job-funnel-service/internal/auth"
	"job-funnel-service/internal/entity"
)

const (
	stateCookie = "oauth_state"
	stateTTL    = 10 * time.Minute
)

// OAuthProvider is the external login (реализация: auth.GoogleProvider).
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (entity.Profile, error)
}

// GoogleLogin godoc
// @Summary Start Google sign-in
// @Tags auth
// @Success 302
// @Failure 500 {object} apiError
// @Router /auth/google/login [get]
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.oauth == nil {
		writeErr(w, http.StatusInternalServerError, "Google OAuth is not configured.")
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusFound)
}

// GoogleCallback godoc
// @Summary Finish Google sign-in
// @Description Exchanges the code, creates or links the account by email, sets the session cookie and redirects to the frontend.
// @Tags auth
// @Param code query string true "authorization code"
// @Param state query string true "state issued by /auth/google/login"
// @Success 302
// @Failure 400 {object} apiError
// @Failure 500 {object} apiError
// @Router /auth/google/callback [get]
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.oauth == nil {
		writeErr(w, http.StatusInternalServerError, "Google OAuth is not configured.")
		return
	}

	q := r.URL.Query()
	c, err := r.Cookie(stateCookie)
	if err != nil || c.Value == "" || subtle.ConstantTimeCompare([]byte(c.Value), []byte(q.Get("state"))) != 1 {
		writeErr(w, http.StatusBadRequest, "invalid oauth state")
		return
	}
	h.clearCookie(w, stateCookie, "/auth/google")

	code := q.Get("code")
	if code == "" {
		writeErr(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	profile, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		if errors.Is(err, auth.ErrMissingEmail) {
			writeErr(w, http.StatusBadRequest, "Google profile missing email.")
			return
		}
		h.log.Warn(r.Context(), "oauth exchange failed", "err", err)
		writeErr(w, http.StatusBadRequest, "oauth exchange failed")
		return
	}

	u, err := h.users.LoginWithProfile(r.Context(), profile)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	token, expires, err := h.boundary.StartSession(u.ID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	h.log.Info(r.Context(), "user signed in", "user_id", u.ID, "provider", profile.Provider)
	http.Redirect(w, r, h.frontendOrigin, http.StatusFound)
}

// Logout godoc
// @Summary End the current session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.boundary.EndSession(r.Context(), auth.SessionToken(r)); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	h.clearCookie(w, auth.SessionCookie, "/")

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) clearCookie(w http.ResponseWriter, name, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
