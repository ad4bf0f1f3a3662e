// Package books provides database operations for book management.
//
// Books reference one author and any number of genres. The genre set is
// persisted through the book_genres join table; GenreIDs is filled on every
// read so callers never need to look at Genres to know the references.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(ctx, id)
package books

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func orderedGenres(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}

func fillGenreIDs(book *entities.Book) {
	book.GenreIDs = make([]string, 0, len(book.Genres))
	for _, g := range book.Genres {
		book.GenreIDs = append(book.GenreIDs, g.ID)
	}
}

// ListBooks returns every book ordered by title, with its author resolved.
func (r *Repository) ListBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Genres", orderedGenres).
		Order("title ASC").
		Find(&books).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}
	for i := range books {
		fillGenreIDs(&books[i])
	}
	return books, nil
}

// GetBookByID retrieves a book with its author and genres resolved.
func (r *Repository) GetBookByID(ctx context.Context, id string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Genres", orderedGenres).
		Where("id = ?", id).
		First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	fillGenreIDs(&book)
	return &book, nil
}

// GetBooksByAuthor returns the books written by the given author.
func (r *Repository) GetBooksByAuthor(ctx context.Context, authorID string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Order("title ASC").Find(&books).Error
	return books, errors.WithStack(err)
}

// GetBooksByGenre returns the books tagged with the given genre.
func (r *Repository) GetBooksByGenre(ctx context.Context, genreID string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Joins("JOIN book_genres ON book_genres.book_id = books.id").
		Where("book_genres.genre_id = ?", genreID).
		Order("books.title ASC").
		Find(&books).Error
	return books, errors.WithStack(err)
}

// resolveGenres loads the genres behind the given ids. Unknown ids are dropped.
func resolveGenres(tx *gorm.DB, ids []string) ([]entities.Genre, error) {
	genres := []entities.Genre{}
	if len(ids) == 0 {
		return genres, nil
	}
	err := tx.Where("id IN ?", ids).Order("name ASC").Find(&genres).Error
	return genres, err
}

// CreateBook inserts a new book with its genre references and assigns its ID.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	if book.ID == "" {
		book.ID = entities.NewID()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genres, err := resolveGenres(tx, book.GenreIDs)
		if err != nil {
			return err
		}
		book.Genres = genres
		if err := tx.Omit("Author", "Genres.*").Create(book).Error; err != nil {
			return err
		}
		fillGenreIDs(book)
		return nil
	})
	return errors.WithStack(err)
}

// UpdateBook upserts the book by ID and replaces its genre references.
func (r *Repository) UpdateBook(ctx context.Context, book *entities.Book) error {
	if book.ID == "" {
		return errors.New("update book: missing id")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genres, err := resolveGenres(tx, book.GenreIDs)
		if err != nil {
			return err
		}
		res := tx.Model(book).
			Select("title", "author_id", "summary", "isbn", "updated_at").
			Updates(book)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Omit("Author", "Genres").Create(book).Error; err != nil {
				return err
			}
		}
		assoc := tx.Model(book).Association("Genres")
		if len(genres) == 0 {
			err = assoc.Clear()
		} else {
			err = assoc.Replace(genres)
		}
		if err != nil {
			return err
		}
		book.Genres = genres
		fillGenreIDs(book)
		return nil
	})
	return errors.WithStack(err)
}

// DeleteBook removes a book and its genre references. Callers check for copies first.
func (r *Repository) DeleteBook(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		book := &entities.Book{ID: id}
		if err := tx.Model(book).Association("Genres").Clear(); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Book{}).Error
	})
	return errors.WithStack(err)
}

// CountBooks returns the number of books.
func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error
	return count, errors.WithStack(err)
}
