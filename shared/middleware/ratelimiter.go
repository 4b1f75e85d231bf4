package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/itchan-dev/tgchan/shared/logger"
	"github.com/itchan-dev/tgchan/shared/middleware/ratelimiter"
	"github.com/itchan-dev/tgchan/shared/utils"
)

func RateLimit(rl *ratelimiter.Limiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				logger.Log.Debug("rate limited", "component", "ratelimit", "identity", identity, "path", r.URL.Path)
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetIP extracts the real client IP from RemoteAddr
// Does NOT trust X-Real-IP or X-Forwarded-For headers (no reverse proxy)
func GetIP(r *http.Request) (string, error) {
	// Only trust RemoteAddr - can't be spoofed (comes from TCP connection)
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// Fallback: if RemoteAddr doesn't have port, use it directly
		ip = r.RemoteAddr
	}

	// Validate it's a real IP
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}

	return ip, nil
}

// GetSessionOrIP keys signed-in Mini-App users by Telegram id so that users
// sharing a NAT don't share a bucket.
func GetSessionOrIP(r *http.Request) (string, error) {
	if user := GetUserFromContext(r); user != nil {
		return "tg_" + strconv.FormatInt(user.Id, 10), nil
	}
	return GetIP(r)
}
