package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/naturalhealing/booking/internal/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// requestLogger tags every request with an X-Request-ID and logs one line
// once it completes.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		h.logger.Info("Request handled",
			logger.RequestID(id),
			logger.Method(r.Method),
			logger.Route(r.URL.Path),
			logger.StatusCode(rec.status),
			logger.Duration(time.Since(start)))
	})
}
