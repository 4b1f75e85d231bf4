package middleware

import (
	"net/http"
)

// SecurityHeaders adds security headers suited to a JSON API embedded in
// the Telegram webview.
// isHTTPS: if true, adds Strict-Transport-Security header
// frameAncestors: origins allowed to embed responses (CSP frame-ancestors)
func SecurityHeaders(isHTTPS bool, frameAncestors []string) func(http.Handler) http.Handler {
	csp := "default-src 'none'"
	if len(frameAncestors) > 0 {
		csp += "; frame-ancestors"
		for _, o := range frameAncestors {
			csp += " " + o
		}
	} else {
		csp += "; frame-ancestors 'none'"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()

			// Prevent MIME type sniffing
			headers.Set("X-Content-Type-Options", "nosniff")

			// Referrer policy for privacy
			headers.Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// Disable unnecessary browser features
			headers.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")

			headers.Set("Content-Security-Policy", csp)

			// HSTS - only when using HTTPS
			if isHTTPS {
				headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
