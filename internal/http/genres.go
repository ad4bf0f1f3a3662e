package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"

	"github.com/mrlokans/locallibrary/internal/binder"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/forms"
)

const genreListURL = "/catalog/genres"

type GenresController struct {
	store  GenreStore
	binder *binder.Binder
}

func NewGenresController(store GenreStore, b *binder.Binder) *GenresController {
	return &GenresController{store: store, binder: b}
}

// List renders every genre sorted by name.
// GET /catalog/genres
func (gc *GenresController) List(c *gin.Context) {
	genres, err := gc.store.ListGenres(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	render(c, http.StatusOK, "genre_list", gin.H{
		"title":      "Genre List",
		"genre_list": genres,
	})
}

func (gc *GenresController) withBooks(ctx context.Context, id string) (*entities.Genre, []entities.Book, error) {
	var (
		genre *entities.Genre
		books []entities.Book
	)
	err := fetchAll(ctx,
		func(ctx context.Context) (err error) {
			genre, err = gc.store.GetGenreByID(ctx, id)
			return err
		},
		func(ctx context.Context) (err error) {
			books, err = gc.store.GetBooksByGenre(ctx, id)
			return err
		},
	)
	return genre, books, err
}

// Detail renders a genre and the books filed under it.
// GET /catalog/genre/:id
func (gc *GenresController) Detail(c *gin.Context) {
	genre, books, err := gc.withBooks(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(lookupError(err, "Genre"))
		return
	}
	render(c, http.StatusOK, "genre_detail", gin.H{
		"title":       "Genre Detail",
		"genre":       genre,
		"genre_books": books,
	})
}

// CreateForm renders an empty genre form.
// GET /catalog/genre/create
func (gc *GenresController) CreateForm(c *gin.Context) {
	render(c, http.StatusOK, "genre_form", gin.H{
		"title": "Create Genre",
		"genre": forms.GenreForm{},
	})
}

// Create persists a new genre, or redirects to the existing one with the same name.
// POST /catalog/genre/create
func (gc *GenresController) Create(c *gin.Context) {
	ctx := c.Request.Context()

	form, ok := gc.bind(c, "", "Create Genre")
	if !ok {
		return
	}

	existing, err := gc.store.FindGenreByName(ctx, form.Name)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, existing.URL())
		return
	case !errors.Is(err, entities.ErrNotFound):
		_ = c.Error(err)
		return
	}

	genre := form.Entity("")
	if err := gc.store.CreateGenre(ctx, genre); err != nil {
		_ = c.Error(err)
		return
	}

	logger.FromContext(ctx).Info("genre created", logger.Data{"genre_id": genre.ID})
	setFlash(c, "Genre created.")
	c.Redirect(http.StatusFound, genre.URL())
}

// UpdateForm renders the genre form pre-filled.
// GET /catalog/genre/:id/update
func (gc *GenresController) UpdateForm(c *gin.Context) {
	genre, err := gc.store.GetGenreByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(lookupError(err, "Genre"))
		return
	}
	render(c, http.StatusOK, "genre_form", gin.H{
		"title": "Update Genre",
		"genre": forms.GenreFormFrom(genre),
		"id":    genre.ID,
	})
}

// Update saves the genre under the path id unless another genre has the name.
// POST /catalog/genre/:id/update
func (gc *GenresController) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	form, ok := gc.bind(c, id, "Update Genre")
	if !ok {
		return
	}

	existing, err := gc.store.FindGenreByName(ctx, form.Name)
	switch {
	case err == nil && existing.ID != id:
		gc.renderForm(c, form, id, "Update Genre", binder.Errors{
			{Field: "name", Message: "Genre with this name already exists."},
		})
		return
	case err != nil && !errors.Is(err, entities.ErrNotFound):
		_ = c.Error(err)
		return
	}

	genre := form.Entity(id)
	if err := gc.store.UpdateGenre(ctx, genre); err != nil {
		_ = c.Error(err)
		return
	}

	logger.FromContext(ctx).Info("genre updated", logger.Data{"genre_id": genre.ID})
	setFlash(c, "Genre saved.")
	c.Redirect(http.StatusFound, genre.URL())
}

// bind decodes and validates the genre form. On failure the form has already
// been re-rendered or the error attached, and ok is false.
func (gc *GenresController) bind(c *gin.Context, id, title string) (form forms.GenreForm, ok bool) {
	if err := gc.binder.Bind(c, &form); err != nil {
		_ = c.Error(err)
		return form, false
	}
	if errs := form.Validate(gc.binder); len(errs) > 0 {
		gc.renderForm(c, form, id, title, errs)
		return form, false
	}
	return form, true
}

func (gc *GenresController) renderForm(c *gin.Context, form forms.GenreForm, id, title string, errs binder.Errors) {
	render(c, http.StatusOK, "genre_form", gin.H{
		"title":  title,
		"genre":  form,
		"id":     id,
		"errors": errs,
	})
}

// DeleteForm renders the delete confirmation. A missing genre redirects to the list.
// GET /catalog/genre/:id/delete
func (gc *GenresController) DeleteForm(c *gin.Context) {
	genre, books, err := gc.withBooks(c.Request.Context(), c.Param("id"))
	if errors.Is(err, entities.ErrNotFound) {
		c.Redirect(http.StatusFound, genreListURL)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	render(c, http.StatusOK, "genre_delete", gin.H{
		"title":       "Delete Genre",
		"genre":       genre,
		"genre_books": books,
	})
}

// Delete removes the genre unless books still reference it.
// POST /catalog/genre/:id/delete
func (gc *GenresController) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	genre, books, err := gc.withBooks(ctx, formID(c, "genreid"))
	if errors.Is(err, entities.ErrNotFound) {
		c.Redirect(http.StatusFound, genreListURL)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	if len(books) > 0 {
		render(c, http.StatusOK, "genre_delete", gin.H{
			"title":       "Delete Genre",
			"genre":       genre,
			"genre_books": books,
		})
		return
	}

	if err := gc.store.DeleteGenre(ctx, genre.ID); err != nil {
		_ = c.Error(err)
		return
	}

	logger.FromContext(ctx).Info("genre deleted", logger.Data{"genre_id": genre.ID})
	setFlash(c, "Genre deleted.")
	c.Redirect(http.StatusFound, genreListURL)
}
