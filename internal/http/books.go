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

const bookListURL = "/catalog/books"

type BooksController struct {
	store  BookStore
	binder *binder.Binder
}

func NewBooksController(store BookStore, b *binder.Binder) *BooksController {
	return &BooksController{store: store, binder: b}
}

// List renders every book with its author.
// GET /catalog/books
func (bc *BooksController) List(c *gin.Context) {
	books, err := bc.store.ListBooks(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	render(c, http.StatusOK, "book_list", gin.H{
		"title":     "Book List",
		"book_list": books,
	})
}

func (bc *BooksController) withCopies(ctx context.Context, id string) (*entities.Book, []entities.BookInstance, error) {
	var (
		book   *entities.Book
		copies []entities.BookInstance
	)
	err := fetchAll(ctx,
		func(ctx context.Context) (err error) {
			book, err = bc.store.GetBookByID(ctx, id)
			return err
		},
		func(ctx context.Context) (err error) {
			copies, err = bc.store.GetInstancesByBook(ctx, id)
			return err
		},
	)
	return book, copies, err
}

// candidates loads the authors and genres offered by the book form.
func (bc *BooksController) candidates(ctx context.Context) ([]entities.Author, []entities.Genre, error) {
	var (
		authors []entities.Author
		genres  []entities.Genre
	)
	err := fetchAll(ctx,
		func(ctx context.Context) (err error) {
			authors, err = bc.store.ListAuthors(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			genres, err = bc.store.ListGenres(ctx)
			return err
		},
	)
	return authors, genres, err
}

// Detail renders a book with its author, genres and copies.
// GET /catalog/book/:id
func (bc *BooksController) Detail(c *gin.Context) {
	book, copies, err := bc.withCopies(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(lookupError(err, "Book"))
		return
	}
	render(c, http.StatusOK, "book_detail", gin.H{
		"title":          book.Title,
		"book":           book,
		"book_instances": copies,
	})
}

// CreateForm renders an empty book form with the author and genre candidates.
// GET /catalog/book/create
func (bc *BooksController) CreateForm(c *gin.Context) {
	authors, genres, err := bc.candidates(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	render(c, http.StatusOK, "book_form", gin.H{
		"title":   "Create Book",
		"authors": authors,
		"genres":  genres,
		"book":    forms.BookForm{},
	})
}

// Create validates the submission and persists a new book.
// POST /catalog/book/create
func (bc *BooksController) Create(c *gin.Context) {
	bc.save(c, "", "Create Book")
}

// UpdateForm renders the book form pre-filled, with its genres checked.
// GET /catalog/book/:id/update
func (bc *BooksController) UpdateForm(c *gin.Context) {
	var (
		book    *entities.Book
		authors []entities.Author
		genres  []entities.Genre
	)
	err := fetchAll(c.Request.Context(),
		func(ctx context.Context) (err error) {
			book, err = bc.store.GetBookByID(ctx, c.Param("id"))
			return err
		},
		func(ctx context.Context) (err error) {
			authors, genres, err = bc.candidates(ctx)
			return err
		},
	)
	if err != nil {
		_ = c.Error(lookupError(err, "Book"))
		return
	}
	render(c, http.StatusOK, "book_form", gin.H{
		"title":   "Update Book",
		"authors": authors,
		"genres":  genres,
		"book":    forms.BookFormFrom(book),
		"id":      book.ID,
	})
}

// Update validates the submission and upserts the book under the path id.
// POST /catalog/book/:id/update
func (bc *BooksController) Update(c *gin.Context) {
	bc.save(c, c.Param("id"), "Update Book")
}

func (bc *BooksController) save(c *gin.Context, id, title string) {
	ctx := c.Request.Context()

	var form forms.BookForm
	if err := bc.binder.Bind(c, &form); err != nil {
		_ = c.Error(err)
		return
	}

	authors, genres, err := bc.candidates(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if errs := form.Validate(bc.binder, authors); len(errs) > 0 {
		render(c, http.StatusOK, "book_form", gin.H{
			"title":   title,
			"authors": authors,
			"genres":  genres,
			"book":    form,
			"id":      id,
			"errors":  errs,
		})
		return
	}

	book := form.Entity(id)
	if id == "" {
		err = bc.store.CreateBook(ctx, book)
	} else {
		err = bc.store.UpdateBook(ctx, book)
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	logger.FromContext(ctx).Info("book saved", logger.Data{"book_id": book.ID, "genres": len(book.GenreIDs)})
	setFlash(c, "Book saved.")
	c.Redirect(http.StatusFound, book.URL())
}

// DeleteForm renders the delete confirmation. A missing book redirects to the list.
// GET /catalog/book/:id/delete
func (bc *BooksController) DeleteForm(c *gin.Context) {
	book, copies, err := bc.withCopies(c.Request.Context(), c.Param("id"))
	if errors.Is(err, entities.ErrNotFound) {
		c.Redirect(http.StatusFound, bookListURL)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	render(c, http.StatusOK, "book_delete", gin.H{
		"title":          "Delete Book",
		"book":           book,
		"book_instances": copies,
	})
}

// Delete removes the book unless copies of it still exist.
// POST /catalog/book/:id/delete
func (bc *BooksController) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	book, copies, err := bc.withCopies(ctx, formID(c, "bookid"))
	if errors.Is(err, entities.ErrNotFound) {
		c.Redirect(http.StatusFound, bookListURL)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	if len(copies) > 0 {
		render(c, http.StatusOK, "book_delete", gin.H{
			"title":          "Delete Book",
			"book":           book,
			"book_instances": copies,
		})
		return
	}

	if err := bc.store.DeleteBook(ctx, book.ID); err != nil {
		_ = c.Error(err)
		return
	}

	logger.FromContext(ctx).Info("book deleted", logger.Data{"book_id": book.ID})
	setFlash(c, "Book deleted.")
	c.Redirect(http.StatusFound, bookListURL)
}
