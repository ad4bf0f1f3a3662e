package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/entities"
)

type CatalogController struct {
	store CountStore
}

func NewCatalogController(store CountStore) *CatalogController {
	return &CatalogController{store: store}
}

// Home renders the record counts of every collection.
// GET /catalog
func (cc *CatalogController) Home(c *gin.Context) {
	var books, copies, available, authors, genres int64
	err := fetchAll(c.Request.Context(),
		func(ctx context.Context) (err error) {
			books, err = cc.store.CountBooks(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			copies, err = cc.store.CountBookInstances(ctx, "")
			return err
		},
		func(ctx context.Context) (err error) {
			available, err = cc.store.CountBookInstances(ctx, entities.StatusAvailable)
			return err
		},
		func(ctx context.Context) (err error) {
			authors, err = cc.store.CountAuthors(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			genres, err = cc.store.CountGenres(ctx)
			return err
		},
	)
	if err != nil {
		_ = c.Error(err)
		return
	}
	render(c, http.StatusOK, "index", gin.H{
		"title":                         "Local Library Home",
		"book_count":                    books,
		"book_instance_count":           copies,
		"book_instance_available_count": available,
		"author_count":                  authors,
		"genre_count":                   genres,
	})
}
