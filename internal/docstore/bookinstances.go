package docstore

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mrlokans/locallibrary/internal/entities"
)

var byCreated = bson.D{{Key: "created_at", Value: 1}}

func (s *Store) ListBookInstances(ctx context.Context) ([]entities.BookInstance, error) {
	instances := []entities.BookInstance{}
	if err := findAll(ctx, s.bookInstances, bson.M{}, byCreated, &instances); err != nil {
		return nil, err
	}
	if err := s.populateInstances(ctx, instances); err != nil {
		return nil, err
	}
	return instances, nil
}

func (s *Store) GetBookInstanceByID(ctx context.Context, id string) (*entities.BookInstance, error) {
	var instance entities.BookInstance
	if err := findOne(ctx, s.bookInstances, id, &instance); err != nil {
		return nil, err
	}
	instances := []entities.BookInstance{instance}
	if err := s.populateInstances(ctx, instances); err != nil {
		return nil, err
	}
	return &instances[0], nil
}

func (s *Store) GetInstancesByBook(ctx context.Context, bookID string) ([]entities.BookInstance, error) {
	instances := []entities.BookInstance{}
	err := findAll(ctx, s.bookInstances, bson.M{"book": bookID}, byCreated, &instances)
	return instances, err
}

func (s *Store) CreateBookInstance(ctx context.Context, instance *entities.BookInstance) error {
	if instance.ID == "" {
		instance.ID = entities.NewID()
	}
	if instance.Status == "" {
		instance.Status = entities.StatusMaintenance
	}
	instance.CreatedAt = now()
	instance.UpdatedAt = instance.CreatedAt
	_, err := s.bookInstances.InsertOne(ctx, instance)
	return errors.WithStack(err)
}

func (s *Store) UpdateBookInstance(ctx context.Context, instance *entities.BookInstance) error {
	if instance.ID == "" {
		return errMissingID("book instance")
	}
	if instance.Status == "" {
		instance.Status = entities.StatusMaintenance
	}
	instance.UpdatedAt = now()
	return upsert(ctx, s.bookInstances, instance.ID, bson.M{
		"book":       instance.BookID,
		"imprint":    instance.Imprint,
		"status":     instance.Status,
		"due_back":   instance.DueBack,
		"updated_at": instance.UpdatedAt,
	}, instance.UpdatedAt)
}

func (s *Store) DeleteBookInstance(ctx context.Context, id string) error {
	return deleteByID(ctx, s.bookInstances, id)
}

func (s *Store) CountBookInstances(ctx context.Context, status entities.BookInstanceStatus) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return count(ctx, s.bookInstances, filter)
}

func (s *Store) populateInstances(ctx context.Context, instances []entities.BookInstance) error {
	ids := make([]string, 0, len(instances))
	for _, bi := range instances {
		ids = append(ids, bi.BookID)
	}
	books, err := s.booksByID(ctx, ids)
	if err != nil {
		return err
	}
	for i := range instances {
		instances[i].Book = books[instances[i].BookID]
	}
	return nil
}
