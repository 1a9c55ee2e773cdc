package middleware

import (
	"net/http"

	"github.com/Ordones18/Ponte-Once-Store/pkg/requestid"
)

// RequestIDMiddleware tags every request with an id, honoring one the
// caller already sent.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestid.Header)
		if id == "" {
			id = requestid.New()
		}

		w.Header().Set(requestid.Header, id)
		next.ServeHTTP(w, r.WithContext(requestid.WithRequestID(r.Context(), id)))
	})
}
