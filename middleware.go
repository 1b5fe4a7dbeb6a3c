package main

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// statusRecorder keeps the status code a handler wrote so the access log can
// report it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestLog tags every request with a short id and logs method, path,
// status and duration. The id comes back in the X-Request-ID header so a
// client report can be tied to a log line.
func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()[:8]
		w.Header().Set("X-Request-ID", reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %s %d %s", reqID, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
