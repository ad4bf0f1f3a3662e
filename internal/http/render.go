package http

import (
	"context"
	"html"
	"html/template"
	"io/fs"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// templateFuncs are available in every view.
var templateFuncs = template.FuncMap{
	// Stored strings are escaped on the way in; html/template escapes again on output.
	"unescape": html.UnescapeString,
	"statuses": func() []entities.BookInstanceStatus { return entities.BookInstanceStatuses },
	"isAvailable": func(s entities.BookInstanceStatus) bool {
		return s == entities.StatusAvailable
	},
	"isMaintenance": func(s entities.BookInstanceStatus) bool {
		return s == entities.StatusMaintenance
	},
}

// loadTemplates parses every view under templates.
func loadTemplates(templates fs.FS) (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templates, "*.html")
	return tmpl, errors.Wrap(err, "failed to parse templates")
}

// render executes view with data, adding the CSRF field and any pending flash message.
func render(c *gin.Context, status int, view string, data gin.H) {
	data["csrf_field"] = csrf.TemplateField(c.Request)
	if sm := sessionFrom(c); sm != nil {
		data["flash"] = sm.PopFlash(c.Request.Context())
	}
	c.HTML(status, view, data)
}

// fetchAll runs the lookups concurrently. The first failure cancels the others
// and is returned once every lookup has finished.
func fetchAll(ctx context.Context, lookups ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, lookup := range lookups {
		lookup := lookup
		g.Go(func() error { return lookup(gctx) })
	}
	return g.Wait()
}

// formID returns the id submitted in field, falling back to the path id.
func formID(c *gin.Context, field string) string {
	if id := c.PostForm(field); id != "" {
		return id
	}
	return c.Param("id")
}
