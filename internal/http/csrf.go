package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/robinjoseph08/golib/logger"
)

// CSRFMiddleware protects every form POST with gorilla/csrf. Views get the
// hidden token field through render. When cookies are not marked secure the
// request is treated as plaintext HTTP so the origin check does not demand TLS.
func CSRFMiddleware(secret []byte, secure bool) gin.HandlerFunc {
	protect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		req := c.Request
		if !secure {
			req = csrf.PlaintextHTTPRequest(req)
		}

		passed := false
		handler := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		}))
		handler.ServeHTTP(c.Writer, req)

		// the error handler already answered
		if !passed {
			c.Abort()
		}
	}
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	logger.FromContext(r.Context()).Warn("csrf check failed", logger.Data{
		"path":   r.URL.Path,
		"reason": reason,
	})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Forbidden</title></head>
<body>
<h1>Forbidden</h1>
<p>The form has expired or was not submitted from this site.</p>
<p><a href="javascript:history.back()">Go back and try again</a></p>
</body>
</html>`))
}
