// Package bookinstances provides database operations for physical book copies.
package bookinstances

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all book instance database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new book instances repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBookInstances returns every copy with its book resolved.
func (r *Repository) ListBookInstances(ctx context.Context) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.WithContext(ctx).Preload("Book").Order("created_at ASC").Find(&instances).Error
	return instances, errors.WithStack(err)
}

// GetBookInstanceByID retrieves a copy with its book resolved.
func (r *Repository) GetBookInstanceByID(ctx context.Context, id string) (*entities.BookInstance, error) {
	var instance entities.BookInstance
	err := r.db.WithContext(ctx).Preload("Book").Where("id = ?", id).First(&instance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &instance, nil
}

// GetInstancesByBook returns the copies of the given book.
func (r *Repository) GetInstancesByBook(ctx context.Context, bookID string) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.WithContext(ctx).Where("book_id = ?", bookID).Order("created_at ASC").Find(&instances).Error
	return instances, errors.WithStack(err)
}

// CreateBookInstance inserts a new copy and assigns its ID.
func (r *Repository) CreateBookInstance(ctx context.Context, instance *entities.BookInstance) error {
	if instance.ID == "" {
		instance.ID = entities.NewID()
	}
	if instance.Status == "" {
		instance.Status = entities.StatusMaintenance
	}
	return errors.WithStack(r.db.WithContext(ctx).Omit("Book").Create(instance).Error)
}

// UpdateBookInstance upserts the copy by ID.
func (r *Repository) UpdateBookInstance(ctx context.Context, instance *entities.BookInstance) error {
	if instance.ID == "" {
		return errors.New("update book instance: missing id")
	}
	if instance.Status == "" {
		instance.Status = entities.StatusMaintenance
	}
	db := r.db.WithContext(ctx)
	res := db.Model(instance).
		Select("book_id", "imprint", "status", "due_back", "updated_at").
		Updates(instance)
	if res.Error != nil {
		return errors.WithStack(res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.WithStack(db.Omit("Book").Create(instance).Error)
	}
	return nil
}

// DeleteBookInstance removes a copy.
func (r *Repository) DeleteBookInstance(ctx context.Context, id string) error {
	return errors.WithStack(r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.BookInstance{}).Error)
}

// CountBookInstances returns the number of copies, optionally filtered by status.
func (r *Repository) CountBookInstances(ctx context.Context, status entities.BookInstanceStatus) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entities.BookInstance{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, errors.WithStack(err)
}
