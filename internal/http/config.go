package http

import (
	"io/fs"

	"github.com/robinjoseph08/golib/logger"

	"github.com/mrlokans/locallibrary/internal/binder"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Store backs every catalog page and the health check.
	Store  CatalogStore
	Binder *binder.Binder
	Logger logger.Logger

	// Views and assets, usually the embedded ones from the web package.
	Templates fs.FS
	Static    fs.FS

	// ShowErrorDetails adds the error text and stack trace to error pages.
	ShowErrorDetails bool

	// Sessions carries flash messages; nil disables them.
	Sessions *SessionManager

	// CSRF protection is enabled when a secret is set.
	CSRFSecret    []byte
	SecureCookies bool

	// Form submissions per second and burst, per client IP. Zero disables limiting.
	FormRateLimit float64
	FormRateBurst int

	Version string
}
