package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	tmpl, err := loadTemplates(cfg.Templates)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	router.Use(RequestLogger(cfg.Logger))
	router.Use(securityHeaders())

	// CSRF runs before sessions so the session context is added on top of
	// the request CSRF hands on. Both wrap ErrorPages: an error page pops the
	// flash and the session must still be saved afterwards.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.Sessions())
	}
	router.Use(ErrorPages(cfg.ShowErrorDetails))
	router.Use(Recovery())
	if cfg.FormRateLimit > 0 {
		router.Use(FormRateLimit(NewIPRateLimiter(rate.Limit(cfg.FormRateLimit), cfg.FormRateBurst)))
	}

	router.StaticFS("/static", http.FS(cfg.Static))
	router.NoRoute(notFoundPage)

	health := NewHealthController(cfg.Store, cfg.Version)
	catalog := NewCatalogController(cfg.Store)
	authors := NewAuthorsController(cfg.Store, cfg.Binder)
	genres := NewGenresController(cfg.Store, cfg.Binder)
	books := NewBooksController(cfg.Store, cfg.Binder)
	instances := NewBookInstancesController(cfg.Store, cfg.Binder)
	users := NewUsersController()

	router.GET("/health", health.Status)
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/catalog")
	})

	router.GET("/users", users.List)
	router.GET("/users/cool", users.Cool)

	cat := router.Group("/catalog")
	cat.GET("", catalog.Home)

	cat.GET("/author/create", authors.CreateForm)
	cat.POST("/author/create", authors.Create)
	cat.GET("/author/:id/delete", authors.DeleteForm)
	cat.POST("/author/:id/delete", authors.Delete)
	cat.GET("/author/:id/update", authors.UpdateForm)
	cat.POST("/author/:id/update", authors.Update)
	cat.GET("/author/:id", authors.Detail)
	cat.GET("/authors", authors.List)

	cat.GET("/genre/create", genres.CreateForm)
	cat.POST("/genre/create", genres.Create)
	cat.GET("/genre/:id/delete", genres.DeleteForm)
	cat.POST("/genre/:id/delete", genres.Delete)
	cat.GET("/genre/:id/update", genres.UpdateForm)
	cat.POST("/genre/:id/update", genres.Update)
	cat.GET("/genre/:id", genres.Detail)
	cat.GET("/genres", genres.List)

	cat.GET("/book/create", books.CreateForm)
	cat.POST("/book/create", books.Create)
	cat.GET("/book/:id/delete", books.DeleteForm)
	cat.POST("/book/:id/delete", books.Delete)
	cat.GET("/book/:id/update", books.UpdateForm)
	cat.POST("/book/:id/update", books.Update)
	cat.GET("/book/:id", books.Detail)
	cat.GET("/books", books.List)

	cat.GET("/bookinstance/create", instances.CreateForm)
	cat.POST("/bookinstance/create", instances.Create)
	cat.GET("/bookinstance/:id/delete", instances.DeleteForm)
	cat.POST("/bookinstance/:id/delete", instances.Delete)
	cat.GET("/bookinstance/:id/update", instances.UpdateForm)
	cat.POST("/bookinstance/:id/update", instances.Update)
	cat.GET("/bookinstance/:id", instances.Detail)
	cat.GET("/bookinstances", instances.List)

	return router, nil
}
