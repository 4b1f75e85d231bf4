package handler

import (
	"net/http"

	"github.com/itchan-dev/tgchan/shared/api"
	"github.com/itchan-dev/tgchan/shared/domain"
	"github.com/itchan-dev/tgchan/shared/logger"
	mw "github.com/itchan-dev/tgchan/shared/middleware"
	"github.com/itchan-dev/tgchan/shared/utils"
)

// CreateSession validates Telegram initData and issues a session token,
// both as a cookie and in the body for clients without cookie support.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body api.CreateSessionRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	app, err := h.host.Init(body.InitData, body.ColorScheme)
	if err != nil {
		logger.Log.Info("session rejected", "component", "handler", "error", err)
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	defer app.Close()

	session := domain.Session{User: app.User, Theme: app.Theme}
	token, err := h.jwt.NewToken(session)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.setSessionCookie(w, token)
	logger.Log.Info("session created", "component", "handler", "user_id", app.User.Id)
	utils.WriteJSON(w, http.StatusOK, api.SessionResponse{User: session.User, Theme: session.Theme, Token: token})
}

// GetSession returns the session decoded by the auth middleware.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session := mw.GetSessionFromContext(r)
	if session == nil {
		http.Error(w, "Open the app from Telegram", http.StatusUnauthorized)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.SessionResponse{User: session.User, Theme: session.Theme})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	secure := h.cfg.Public.Server.SecureCookies
	// the Mini-App runs in a cross-site iframe inside Telegram Web
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     mw.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.JwtTTL().Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})
}
