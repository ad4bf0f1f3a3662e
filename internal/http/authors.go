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

const authorListURL = "/catalog/authors"

type AuthorsController struct {
	store  AuthorStore
	binder *binder.Binder
}

func NewAuthorsController(store AuthorStore, b *binder.Binder) *AuthorsController {
	return &AuthorsController{store: store, binder: b}
}

// List renders every author.
// GET /catalog/authors
func (ac *AuthorsController) List(c *gin.Context) {
	authors, err := ac.store.ListAuthors(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	render(c, http.StatusOK, "author_list", gin.H{
		"title":       "Author List",
		"author_list": authors,
	})
}

// withBooks loads an author and the books written by them concurrently.
func (ac *AuthorsController) withBooks(ctx context.Context, id string) (*entities.Author, []entities.Book, error) {
	var (
		author *entities.Author
		books  []entities.Book
	)
	err := fetchAll(ctx,
		func(ctx context.Context) (err error) {
			author, err = ac.store.GetAuthorByID(ctx, id)
			return err
		},
		func(ctx context.Context) (err error) {
			books, err = ac.store.GetBooksByAuthor(ctx, id)
			return err
		},
	)
	return author, books, err
}

// Detail renders an author and their books.
// GET /catalog/author/:id
func (ac *AuthorsController) Detail(c *gin.Context) {
	author, books, err := ac.withBooks(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(lookupError(err, "Author"))
		return
	}
	render(c, http.StatusOK, "author_detail", gin.H{
		"title":        "Author Detail",
		"author":       author,
		"author_books": books,
	})
}

// CreateForm renders an empty author form.
// GET /catalog/author/create
func (ac *AuthorsController) CreateForm(c *gin.Context) {
	render(c, http.StatusOK, "author_form", gin.H{
		"title":  "Create Author",
		"author": forms.AuthorForm{},
	})
}

// Create validates the submission and persists a new author.
// POST /catalog/author/create
func (ac *AuthorsController) Create(c *gin.Context) {
	ac.save(c, "", "Create Author")
}

// UpdateForm renders the author form pre-filled.
// GET /catalog/author/:id/update
func (ac *AuthorsController) UpdateForm(c *gin.Context) {
	author, err := ac.store.GetAuthorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(lookupError(err, "Author"))
		return
	}
	render(c, http.StatusOK, "author_form", gin.H{
		"title":  "Update Author",
		"author": forms.AuthorFormFrom(author),
		"id":     author.ID,
	})
}

// Update validates the submission and upserts the author under the path id.
// POST /catalog/author/:id/update
func (ac *AuthorsController) Update(c *gin.Context) {
	ac.save(c, c.Param("id"), "Update Author")
}

func (ac *AuthorsController) save(c *gin.Context, id, title string) {
	ctx := c.Request.Context()

	var form forms.AuthorForm
	if err := ac.binder.Bind(c, &form); err != nil {
		_ = c.Error(err)
		return
	}

	if errs := form.Validate(ac.binder); len(errs) > 0 {
		render(c, http.StatusOK, "author_form", gin.H{
			"title":  title,
			"author": form,
			"id":     id,
			"errors": errs,
		})
		return
	}

	author := form.Entity(id)
	var err error
	if id == "" {
		err = ac.store.CreateAuthor(ctx, author)
	} else {
		err = ac.store.UpdateAuthor(ctx, author)
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	logger.FromContext(ctx).Info("author saved", logger.Data{"author_id": author.ID})
	setFlash(c, "Author saved.")
	c.Redirect(http.StatusFound, author.URL())
}

// DeleteForm renders the delete confirmation. A missing author redirects to the list.
// GET /catalog/author/:id/delete
func (ac *AuthorsController) DeleteForm(c *gin.Context) {
	author, books, err := ac.withBooks(c.Request.Context(), c.Param("id"))
	if errors.Is(err, entities.ErrNotFound) {
		c.Redirect(http.StatusFound, authorListURL)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	render(c, http.StatusOK, "author_delete", gin.H{
		"title":        "Delete Author",
		"author":       author,
		"author_books": books,
	})
}

// Delete removes the author unless books still reference them.
// POST /catalog/author/:id/delete
func (ac *AuthorsController) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	author, books, err := ac.withBooks(ctx, formID(c, "authorid"))
	if errors.Is(err, entities.ErrNotFound) {
		c.Redirect(http.StatusFound, authorListURL)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	if len(books) > 0 {
		render(c, http.StatusOK, "author_delete", gin.H{
			"title":        "Delete Author",
			"author":       author,
			"author_books": books,
		})
		return
	}

	if err := ac.store.DeleteAuthor(ctx, author.ID); err != nil {
		_ = c.Error(err)
		return
	}

	logger.FromContext(ctx).Info("author deleted", logger.Data{"author_id": author.ID})
	setFlash(c, "Author deleted.")
	c.Redirect(http.StatusFound, authorListURL)
}
