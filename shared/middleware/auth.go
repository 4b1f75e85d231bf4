package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/itchan-dev/tgchan/shared/domain"
	jwt_internal "github.com/itchan-dev/tgchan/shared/jwt"
	"github.com/itchan-dev/tgchan/shared/logger"
	"github.com/itchan-dev/tgchan/shared/utils"
)

// SessionCookie holds the session token issued after initData validation.
const SessionCookie = "tgSession"

// Key to store the session in the request context
type key int

const SessionKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	jwtService    jwt_internal.JwtService
	secureCookies bool
}

func NewAuth(jwtService jwt_internal.JwtService, secureCookies bool) *Auth {
	return &Auth{
		jwtService:    jwtService,
		secureCookies: secureCookies,
	}
}

// NeedAuth returns middleware that requires a session
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := a.extractSession(r)
			if err != nil {
				switch err {
				case errNoToken:
					http.Error(w, "Open the app from Telegram", http.StatusUnauthorized)
				case errInvalidClaims:
					logger.Log.Error("invalid jwt claims", "component", "auth")
					a.clearCookie(w)
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				default:
					// Token decode error
					a.clearCookie(w)
					utils.WriteErrorAndStatusCode(w, err)
				}
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that populates the session if token is valid, but doesn't require it
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, _ := a.extractSession(r)
			if session != nil {
				ctx := context.WithValue(r.Context(), SessionKey, session)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractSession reads the token from the session cookie, or from the
// Authorization header for clients that can't keep cookies inside the
// Telegram webview.
func (a *Auth) extractSession(r *http.Request) (*domain.Session, error) {
	var tokenString string
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		tokenString = cookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}

	if tokenString == "" {
		return nil, errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidClaims
	}
	session, ok := jwt_internal.SessionFromClaims(claims)
	if !ok {
		return nil, errInvalidClaims
	}
	return &session, nil
}

func (a *Auth) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     SessionCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteNoneMode,
	})
}

// Sentinel errors for extractSession
var (
	errNoToken       = errorString("no token")
	errInvalidClaims = errorString("invalid claims")
)

type errorString string

func (e errorString) Error() string { return string(e) }

func GetSessionFromContext(r *http.Request) *domain.Session {
	session, ok := r.Context().Value(SessionKey).(*domain.Session)
	if !ok {
		return nil
	}
	return session
}

func GetUserFromContext(r *http.Request) *domain.User {
	if session := GetSessionFromContext(r); session != nil {
		return &session.User
	}
	return nil
}
