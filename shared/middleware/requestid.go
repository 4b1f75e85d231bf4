package middleware

import (
	"net/http"

	"github.com/itchan-dev/tgchan/shared/trace"
)

// RequestID takes X-Request-Id from the caller or generates one, echoes it
// back and stores it in the context so outbound upstream calls carry it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(trace.HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = trace.GenerateID()
		}
		w.Header().Set(trace.HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(trace.WithRequestID(r.Context(), id)))
	})
}
