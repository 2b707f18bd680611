package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	// ContextKeyRequestID is the key for storing the request id in context.
	ContextKeyRequestID contextKey = "request_id"

	requestIDHeader = "X-Request-ID"
)

// RequestID attaches a correlation id to every request. An id supplied by the
// caller is reused so multi-step operations can be traced across services;
// otherwise a fresh one is generated. The id is echoed back in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, rid)

		ctx := context.WithValue(r.Context(), ContextKeyRequestID, rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext retrieves the correlation id, or "" if none was set.
func RequestIDFromContext(ctx context.Context) string {
	rid, _ := ctx.Value(ContextKeyRequestID).(string)
	return rid
}
