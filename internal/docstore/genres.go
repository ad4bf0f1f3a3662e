package docstore

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mrlokans/locallibrary/internal/entities"
)

var byName = bson.D{{Key: "name", Value: 1}}

func (s *Store) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	genres := []entities.Genre{}
	err := findAll(ctx, s.genres, bson.M{}, byName, &genres)
	return genres, err
}

func (s *Store) GetGenreByID(ctx context.Context, id string) (*entities.Genre, error) {
	var genre entities.Genre
	if err := findOne(ctx, s.genres, id, &genre); err != nil {
		return nil, err
	}
	return &genre, nil
}

func (s *Store) FindGenreByName(ctx context.Context, name string) (*entities.Genre, error) {
	var genre entities.Genre
	err := s.genres.FindOne(ctx, bson.M{"name": name}).Decode(&genre)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &genre, nil
}

func (s *Store) CreateGenre(ctx context.Context, genre *entities.Genre) error {
	if genre.ID == "" {
		genre.ID = entities.NewID()
	}
	genre.CreatedAt = now()
	genre.UpdatedAt = genre.CreatedAt
	_, err := s.genres.InsertOne(ctx, genre)
	return errors.WithStack(err)
}

func (s *Store) UpdateGenre(ctx context.Context, genre *entities.Genre) error {
	if genre.ID == "" {
		return errMissingID("genre")
	}
	genre.UpdatedAt = now()
	return upsert(ctx, s.genres, genre.ID, bson.M{
		"name":       genre.Name,
		"updated_at": genre.UpdatedAt,
	}, genre.UpdatedAt)
}

func (s *Store) DeleteGenre(ctx context.Context, id string) error {
	return deleteByID(ctx, s.genres, id)
}

func (s *Store) CountGenres(ctx context.Context) (int64, error) {
	return count(ctx, s.genres, bson.M{})
}

// genresByIDs loads the referenced genres ordered by name. Unknown ids are skipped.
func (s *Store) genresByIDs(ctx context.Context, ids []string) ([]entities.Genre, error) {
	genres := []entities.Genre{}
	if len(ids) == 0 {
		return genres, nil
	}
	err := findAll(ctx, s.genres, bson.M{"_id": bson.M{"$in": ids}}, byName, &genres)
	return genres, err
}
