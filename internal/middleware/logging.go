package middleware

import (
	"net/http"
	"time"

	"github.com/2beens/cragjournal/pkg"

	log "github.com/sirupsen/logrus"
)

// LogRequest logs every served request with its route and status.
// Server errors are logged as warnings, everything else at trace level.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			resp := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(resp, r)

			clientIP, err := pkg.ReadUserIP(r)
			if err != nil {
				clientIP = "unknown"
			}
			entry := log.WithFields(log.Fields{
				"route":    routeName(r),
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   resp.statusCode,
				"ip":       clientIP,
				"ua":       r.Header.Get("User-Agent"),
				"duration": time.Since(start).String(),
			})
			if resp.statusCode >= http.StatusInternalServerError {
				entry.Warn("request failed")
				return
			}
			entry.Trace("request served")
		})
	}
}
