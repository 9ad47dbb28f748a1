package middleware

import (
	"io"
	"net/http"
)

// bodies bigger than this are closed without draining, the connection is then not reused
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest drains (up to maxDrainBytes) and closes the request body
// after the handler is done, so the keep-alive connection can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			_, _ = io.Copy(io.Discard, io.LimitReader(r.Body, maxDrainBytes))
			_ = r.Body.Close()
		})
	}
}
