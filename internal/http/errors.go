package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/errutils"
	"github.com/robinjoseph08/golib/logger"

	"github.com/mrlokans/locallibrary/internal/binder"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// HTTPError carries the status the error page should be rendered with.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NotFound returns a 404 error naming the missing resource.
func NotFound(resource string) error {
	return &HTTPError{Code: http.StatusNotFound, Message: resource + " not found"}
}

// lookupError turns a store miss into a 404 for resource and passes anything else through.
func lookupError(err error, resource string) error {
	if errors.Is(err, entities.ErrNotFound) {
		return NotFound(resource)
	}
	return err
}

func statusFor(err error) (int, string) {
	var he *HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code, he.Message
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, "Unsupported Media Type"
	case errors.Is(err, binder.ErrMalformedPayload):
		return http.StatusBadRequest, "Bad Request"
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// ErrorPages renders the error view for the last error a handler attached
// with c.Error. The status comes from *HTTPError and defaults to 500. The
// stack trace is only included when showStack is set.
func ErrorPages(showStack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		log := logger.FromContext(c.Request.Context())

		if errutils.IsIgnorableErr(err) {
			log.Err(err).Warn("broken pipe")
			return
		}

		status, message := statusFor(err)
		if status >= http.StatusInternalServerError {
			log.Err(err).Error("server error")
			if showStack {
				message = err.Error()
			}
		}

		data := gin.H{
			"title":   "Error",
			"message": message,
			"status":  status,
		}
		if showStack {
			data["stack"] = fmt.Sprintf("%+v", err)
		}
		render(c, status, "error", data)
	}
}

// Recovery converts panics into errors for ErrorPages to render.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("%v", recovered)
		}
		_ = c.Error(errors.Wrap(err, "panic recovered"))
		c.Abort()
	})
}

func notFoundPage(c *gin.Context) {
	_ = c.Error(&HTTPError{Code: http.StatusNotFound, Message: "Not Found"})
}
