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

const bookInstanceListURL = "/catalog/bookinstances"

type BookInstancesController struct {
	store  BookInstanceStore
	binder *binder.Binder
}

func NewBookInstancesController(store BookInstanceStore, b *binder.Binder) *BookInstancesController {
	return &BookInstancesController{store: store, binder: b}
}

// List renders every copy with its book and status.
// GET /catalog/bookinstances
func (ic *BookInstancesController) List(c *gin.Context) {
	instances, err := ic.store.ListBookInstances(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	render(c, http.StatusOK, "book_instance_list", gin.H{
		"title":             "Book Instance List",
		"bookinstance_list": instances,
	})
}

// Detail renders a copy and its book.
// GET /catalog/bookinstance/:id
func (ic *BookInstancesController) Detail(c *gin.Context) {
	instance, err := ic.store.GetBookInstanceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(lookupError(err, "Book copy"))
		return
	}
	render(c, http.StatusOK, "book_instance_detail", gin.H{
		"title":        "Copy: " + instance.BookTitle(),
		"bookinstance": instance,
	})
}

// CreateForm renders an empty copy form. A book query parameter preselects the book.
// GET /catalog/bookinstance/create
func (ic *BookInstancesController) CreateForm(c *gin.Context) {
	books, err := ic.store.ListBooks(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	render(c, http.StatusOK, "book_instance_form", gin.H{
		"title":        "Create BookInstance",
		"book_list":    books,
		"bookinstance": forms.BookInstanceForm{Book: c.Query("book")},
	})
}

// Create validates the submission and persists a new copy.
// POST /catalog/bookinstance/create
func (ic *BookInstancesController) Create(c *gin.Context) {
	ic.save(c, "", "Create BookInstance")
}

// UpdateForm renders the copy form pre-filled.
// GET /catalog/bookinstance/:id/update
func (ic *BookInstancesController) UpdateForm(c *gin.Context) {
	var (
		instance *entities.BookInstance
		books    []entities.Book
	)
	err := fetchAll(c.Request.Context(),
		func(ctx context.Context) (err error) {
			instance, err = ic.store.GetBookInstanceByID(ctx, c.Param("id"))
			return err
		},
		func(ctx context.Context) (err error) {
			books, err = ic.store.ListBooks(ctx)
			return err
		},
	)
	if err != nil {
		_ = c.Error(lookupError(err, "Book copy"))
		return
	}
	render(c, http.StatusOK, "book_instance_form", gin.H{
		"title":        "Update BookInstance",
		"book_list":    books,
		"bookinstance": forms.BookInstanceFormFrom(instance),
		"id":           instance.ID,
	})
}

// Update validates the submission and upserts the copy under the path id.
// POST /catalog/bookinstance/:id/update
func (ic *BookInstancesController) Update(c *gin.Context) {
	ic.save(c, c.Param("id"), "Update BookInstance")
}

func (ic *BookInstancesController) save(c *gin.Context, id, title string) {
	ctx := c.Request.Context()

	var form forms.BookInstanceForm
	if err := ic.binder.Bind(c, &form); err != nil {
		_ = c.Error(err)
		return
	}

	books, err := ic.store.ListBooks(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if errs := form.Validate(ic.binder, books); len(errs) > 0 {
		render(c, http.StatusOK, "book_instance_form", gin.H{
			"title":        title,
			"book_list":    books,
			"bookinstance": form,
			"id":           id,
			"errors":       errs,
		})
		return
	}

	instance := form.Entity(id)
	if id == "" {
		err = ic.store.CreateBookInstance(ctx, instance)
	} else {
		err = ic.store.UpdateBookInstance(ctx, instance)
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	logger.FromContext(ctx).Info("book instance saved", logger.Data{
		"bookinstance_id": instance.ID,
		"status":          instance.Status,
	})
	setFlash(c, "Copy saved.")
	c.Redirect(http.StatusFound, instance.URL())
}

// DeleteForm renders the delete confirmation. A missing copy redirects to the list.
// GET /catalog/bookinstance/:id/delete
func (ic *BookInstancesController) DeleteForm(c *gin.Context) {
	instance, err := ic.store.GetBookInstanceByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, entities.ErrNotFound) {
		c.Redirect(http.StatusFound, bookInstanceListURL)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	render(c, http.StatusOK, "book_instance_delete", gin.H{
		"title":        "Delete Book Instance",
		"bookinstance": instance,
	})
}

// Delete removes the copy. Nothing references copies, so there is no dependent check.
// POST /catalog/bookinstance/:id/delete
func (ic *BookInstancesController) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := formID(c, "bookinstanceid")

	if err := ic.store.DeleteBookInstance(ctx, id); err != nil {
		_ = c.Error(err)
		return
	}

	logger.FromContext(ctx).Info("book instance deleted", logger.Data{"bookinstance_id": id})
	setFlash(c, "Copy deleted.")
	c.Redirect(http.StatusFound, bookInstanceListURL)
}
