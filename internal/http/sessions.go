package http

import (
	"bufio"
	"context"
	"database/sql"
	"net"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

const (
	sessionContextKey = "session_manager"
	flashKey          = "flash"
)

// SessionManager wraps scs.SessionManager to carry flash messages between a
// redirecting POST and the page it lands on.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a session manager. Sessions live in sqlDB when
// it is given and in memory otherwise.
func NewSessionManager(sqlDB *sql.DB, lifetime time.Duration, secure bool) (*SessionManager, error) {
	sm := scs.New()

	if sqlDB != nil {
		_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create sessions table")
		}
		sm.Store = sqlite3store.New(sqlDB)
	}

	sm.Lifetime = lifetime
	sm.Cookie.Name = "locallibrary_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secure
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// Flash stores a one-shot message shown on the next rendered page.
func (sm *SessionManager) Flash(ctx context.Context, message string) {
	sm.Put(ctx, flashKey, message)
}

// PopFlash returns the pending flash message and clears it.
func (sm *SessionManager) PopFlash(ctx context.Context) string {
	return sm.PopString(ctx, flashKey)
}

func sessionFrom(c *gin.Context) *SessionManager {
	if v, ok := c.Get(sessionContextKey); ok {
		if sm, ok := v.(*SessionManager); ok {
			return sm
		}
	}
	return nil
}

func setFlash(c *gin.Context, message string) {
	if sm := sessionFrom(c); sm != nil {
		sm.Flash(c.Request.Context(), message)
	}
}

// sessionResponseWriter commits the session and writes its cookie right
// before the response headers go out.
type sessionResponseWriter struct {
	gin.ResponseWriter
	sm            *SessionManager
	request       *http.Request
	wroteHeader   bool
	cookieWritten bool
}

func (w *sessionResponseWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.writeSessionCookie()
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionResponseWriter) WriteHeaderNow() {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.writeSessionCookie()
	}
	w.ResponseWriter.WriteHeaderNow()
}

func (w *sessionResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.writeSessionCookie()
	}
	return w.ResponseWriter.Write(b)
}

func (w *sessionResponseWriter) WriteString(s string) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.writeSessionCookie()
	}
	return w.ResponseWriter.WriteString(s)
}

func (w *sessionResponseWriter) writeSessionCookie() {
	if w.cookieWritten {
		return
	}
	w.cookieWritten = true

	ctx := w.request.Context()
	switch w.sm.Status(ctx) {
	case scs.Modified:
		token, expiry, err := w.sm.Commit(ctx)
		if err != nil {
			logger.FromContext(ctx).Err(err).Error("session commit failed")
			return
		}
		w.sm.WriteSessionCookie(ctx, w.ResponseWriter, token, expiry)
	case scs.Destroyed:
		w.sm.WriteSessionCookie(ctx, w.ResponseWriter, "", time.Time{})
	}
}

func (w *sessionResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.Hijack()
}

// Sessions loads the session into the request context and saves it when the
// response is written.
func (sm *SessionManager) Sessions() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if cookie, err := c.Request.Cookie(sm.Cookie.Name); err == nil {
			token = cookie.Value
		}

		ctx, err := sm.Load(c.Request.Context(), token)
		if err != nil {
			// error pages render inside this middleware, so carry on with a fresh session
			logger.FromContext(c.Request.Context()).Err(err).Warn("failed to load session")
			if ctx, err = sm.Load(c.Request.Context(), ""); err != nil {
				_ = c.AbortWithError(http.StatusInternalServerError, errors.Wrap(err, "failed to start session"))
				return
			}
		}
		c.Request = c.Request.WithContext(ctx)
		c.Set(sessionContextKey, sm)

		srw := &sessionResponseWriter{
			ResponseWriter: c.Writer,
			sm:             sm,
			request:        c.Request,
		}
		c.Writer = srw

		c.Next()

		if !srw.wroteHeader {
			srw.writeSessionCookie()
		}
	}
}
