package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopadmin/internal/web"
)

const TraceHeader = "X-Trace-Id"

// TraceID tags every request with a trace id. A well-formed incoming
// X-Trace-Id is reused so calls can be followed across services.
func TraceID(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceHeader)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.NewString()
			}

			w.Header().Set(TraceHeader, traceID)
			next.ServeHTTP(w, r.WithContext(web.WithTrace(r.Context(), traceID, logger)))
		})
	}
}
