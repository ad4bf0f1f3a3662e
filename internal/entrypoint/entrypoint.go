package entrypoint

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"

	"github.com/mrlokans/locallibrary/internal/binder"
	"github.com/mrlokans/locallibrary/internal/config"
	http_controllers "github.com/mrlokans/locallibrary/internal/http"
	"github.com/mrlokans/locallibrary/web"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs router until SIGINT or SIGTERM, then drains in-flight requests.
func Serve(router http.Handler, cfg *config.Config, log logger.Logger, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	graceful := signals.Setup()

	go func() {
		log.Info("server started", logger.Data{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
	}()

	<-graceful
	log.Info("starting graceful shutdown", logger.Data{"timeout": timeout.String()})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Err(err).Error("server shutdown error")
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info("server exiting")
}

func Run(cfg *config.Config, version string) {
	ctx := context.Background()
	log := logger.New()

	log.Info("starting locallibrary", logger.Data{"version": version, "environment": cfg.Environment})

	if err := cfg.Validate(); err != nil {
		log.Err(err).Fatal("config error")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	catalog, sqlDB, err := OpenCatalog(ctx, cfg)
	if err != nil {
		log.Err(err).Fatal("store error")
	}
	log.Info("store opened", logger.Data{"driver": cfg.Database.Driver})

	b, err := binder.New()
	if err != nil {
		log.Err(err).Fatal("binder error")
	}

	// Flash sessions share the sqlite file; with mongo they stay in memory.
	sessions, err := http_controllers.NewSessionManager(sqlDB, cfg.SessionLifetime, cfg.SecureCookies)
	if err != nil {
		log.Err(err).Fatal("session manager error")
	}

	csrfKey, err := cfg.CSRFKey()
	if err != nil {
		log.Err(err).Fatal("config error")
	}
	if csrfKey == nil {
		log.Warn("CSRF_SECRET is not set, form submissions are not CSRF protected")
	}

	templates, static := assets(cfg.UI)

	router, err := http_controllers.NewRouter(http_controllers.RouterConfig{
		Store:            catalog,
		Binder:           b,
		Logger:           log,
		Templates:        templates,
		Static:           static,
		ShowErrorDetails: !cfg.IsProduction(),
		Sessions:         sessions,
		CSRFSecret:       csrfKey,
		SecureCookies:    cfg.SecureCookies,
		FormRateLimit:    cfg.FormRateLimit,
		FormRateBurst:    cfg.FormRateBurst,
		Version:          version,
	})
	if err != nil {
		log.Err(err).Fatal("router error")
	}

	Serve(router, cfg, log, func(ctx context.Context) {
		if err := catalog.Close(); err != nil {
			log.Err(err).Error("store close error")
		}
	})
}

// assets picks the views and static files, preferring configured directories
// over the embedded copies.
func assets(ui config.UI) (templates, static fs.FS) {
	templates, static = web.Templates(), web.Static()
	if ui.TemplatesPath != "" {
		templates = os.DirFS(ui.TemplatesPath)
	}
	if ui.StaticPath != "" {
		static = os.DirFS(ui.StaticPath)
	}
	return templates, static
}
