package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"lyric-player-go/logcolors"
)

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LoggingMiddleware logs one line per request with method, path, status,
// and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Infof("%s %s %s -> %d (%v)",
			logcolors.LogSimServer, r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
