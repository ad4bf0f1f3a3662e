// Package authors provides database operations for author management.
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	author, err := repo.GetAuthorByID(ctx, id)
package authors

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAuthors returns every author ordered by family name.
func (r *Repository) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.WithContext(ctx).Order("family_name ASC, first_name ASC").Find(&authors).Error
	return authors, errors.WithStack(err)
}

// GetAuthorByID retrieves an author, returning entities.ErrNotFound when absent.
func (r *Repository) GetAuthorByID(ctx context.Context, id string) (*entities.Author, error) {
	var author entities.Author
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&author).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &author, nil
}

// CreateAuthor inserts a new author and assigns its ID.
func (r *Repository) CreateAuthor(ctx context.Context, author *entities.Author) error {
	if author.ID == "" {
		author.ID = entities.NewID()
	}
	return errors.WithStack(r.db.WithContext(ctx).Create(author).Error)
}

// UpdateAuthor upserts the author by ID.
func (r *Repository) UpdateAuthor(ctx context.Context, author *entities.Author) error {
	if author.ID == "" {
		return errors.New("update author: missing id")
	}
	db := r.db.WithContext(ctx)
	res := db.Model(author).
		Select("first_name", "family_name", "date_of_birth", "date_of_death", "updated_at").
		Updates(author)
	if res.Error != nil {
		return errors.WithStack(res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.WithStack(db.Create(author).Error)
	}
	return nil
}

// DeleteAuthor removes an author. Callers check for dependent books first.
func (r *Repository) DeleteAuthor(ctx context.Context, id string) error {
	return errors.WithStack(r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Author{}).Error)
}

// CountAuthors returns the number of authors.
func (r *Repository) CountAuthors(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Author{}).Count(&count).Error
	return count, errors.WithStack(err)
}
