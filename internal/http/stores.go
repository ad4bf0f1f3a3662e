package http

import (
	"context"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// AuthorStore defines the operations the author pages need.
type AuthorStore interface {
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	GetAuthorByID(ctx context.Context, id string) (*entities.Author, error)
	GetBooksByAuthor(ctx context.Context, authorID string) ([]entities.Book, error)
	CreateAuthor(ctx context.Context, author *entities.Author) error
	UpdateAuthor(ctx context.Context, author *entities.Author) error
	DeleteAuthor(ctx context.Context, id string) error
}

// GenreStore defines the operations the genre pages need.
type GenreStore interface {
	ListGenres(ctx context.Context) ([]entities.Genre, error)
	GetGenreByID(ctx context.Context, id string) (*entities.Genre, error)
	FindGenreByName(ctx context.Context, name string) (*entities.Genre, error)
	GetBooksByGenre(ctx context.Context, genreID string) ([]entities.Book, error)
	CreateGenre(ctx context.Context, genre *entities.Genre) error
	UpdateGenre(ctx context.Context, genre *entities.Genre) error
	DeleteGenre(ctx context.Context, id string) error
}

// BookStore defines the operations the book pages need, including the
// author and genre candidates for the book form.
type BookStore interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
	GetBookByID(ctx context.Context, id string) (*entities.Book, error)
	GetInstancesByBook(ctx context.Context, bookID string) ([]entities.BookInstance, error)
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	ListGenres(ctx context.Context) ([]entities.Genre, error)
	CreateBook(ctx context.Context, book *entities.Book) error
	UpdateBook(ctx context.Context, book *entities.Book) error
	DeleteBook(ctx context.Context, id string) error
}

// BookInstanceStore defines the operations the copy pages need.
type BookInstanceStore interface {
	ListBookInstances(ctx context.Context) ([]entities.BookInstance, error)
	GetBookInstanceByID(ctx context.Context, id string) (*entities.BookInstance, error)
	ListBooks(ctx context.Context) ([]entities.Book, error)
	CreateBookInstance(ctx context.Context, instance *entities.BookInstance) error
	UpdateBookInstance(ctx context.Context, instance *entities.BookInstance) error
	DeleteBookInstance(ctx context.Context, id string) error
}

// CountStore feeds the catalog home page.
type CountStore interface {
	CountBooks(ctx context.Context) (int64, error)
	CountBookInstances(ctx context.Context, status entities.BookInstanceStatus) (int64, error)
	CountAuthors(ctx context.Context) (int64, error)
	CountGenres(ctx context.Context) (int64, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CatalogStore is satisfied by both *database.Database and *docstore.Store.
type CatalogStore interface {
	AuthorStore
	GenreStore
	BookStore
	BookInstanceStore
	CountStore
	Pinger
}
