// Package genres provides database operations for genre management.
package genres

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListGenres returns every genre ordered by name.
func (r *Repository) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, errors.WithStack(err)
}

// GetGenreByID retrieves a genre, returning entities.ErrNotFound when absent.
func (r *Repository) GetGenreByID(ctx context.Context, id string) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&genre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &genre, nil
}

// FindGenreByName looks up a genre by exact, case-sensitive name.
func (r *Repository) FindGenreByName(ctx context.Context, name string) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&genre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &genre, nil
}

// CreateGenre inserts a new genre and assigns its ID.
func (r *Repository) CreateGenre(ctx context.Context, genre *entities.Genre) error {
	if genre.ID == "" {
		genre.ID = entities.NewID()
	}
	return errors.WithStack(r.db.WithContext(ctx).Create(genre).Error)
}

// UpdateGenre upserts the genre by ID.
func (r *Repository) UpdateGenre(ctx context.Context, genre *entities.Genre) error {
	if genre.ID == "" {
		return errors.New("update genre: missing id")
	}
	db := r.db.WithContext(ctx)
	res := db.Model(genre).Select("name", "updated_at").Updates(genre)
	if res.Error != nil {
		return errors.WithStack(res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.WithStack(db.Create(genre).Error)
	}
	return nil
}

// DeleteGenre removes a genre. Callers check for dependent books first.
func (r *Repository) DeleteGenre(ctx context.Context, id string) error {
	return errors.WithStack(r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Genre{}).Error)
}

// CountGenres returns the number of genres.
func (r *Repository) CountGenres(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Genre{}).Count(&count).Error
	return count, errors.WithStack(err)
}
