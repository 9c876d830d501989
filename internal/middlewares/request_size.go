package middlewares

import "net/http"

// RequestSizeLimitMiddleware rejects request bodies larger than maxBytes.
// A declared Content-Length over the limit is refused up front with a 413;
// chunked or lying clients are cut off by http.MaxBytesReader while the
// handler reads the body. The largest accepted payload is the multipart
// registration request carrying an avatar image.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
