package docstore

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mrlokans/locallibrary/internal/entities"
)

func (s *Store) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	authors := []entities.Author{}
	sort := bson.D{{Key: "family_name", Value: 1}, {Key: "first_name", Value: 1}}
	err := findAll(ctx, s.authors, bson.M{}, sort, &authors)
	return authors, err
}

func (s *Store) GetAuthorByID(ctx context.Context, id string) (*entities.Author, error) {
	var author entities.Author
	if err := findOne(ctx, s.authors, id, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

func (s *Store) CreateAuthor(ctx context.Context, author *entities.Author) error {
	if author.ID == "" {
		author.ID = entities.NewID()
	}
	author.CreatedAt = now()
	author.UpdatedAt = author.CreatedAt
	_, err := s.authors.InsertOne(ctx, author)
	return errors.WithStack(err)
}

func (s *Store) UpdateAuthor(ctx context.Context, author *entities.Author) error {
	if author.ID == "" {
		return errMissingID("author")
	}
	author.UpdatedAt = now()
	return upsert(ctx, s.authors, author.ID, bson.M{
		"first_name":    author.FirstName,
		"family_name":   author.FamilyName,
		"date_of_birth": author.DateOfBirth,
		"date_of_death": author.DateOfDeath,
		"updated_at":    author.UpdatedAt,
	}, author.UpdatedAt)
}

func (s *Store) DeleteAuthor(ctx context.Context, id string) error {
	return deleteByID(ctx, s.authors, id)
}

func (s *Store) CountAuthors(ctx context.Context) (int64, error) {
	return count(ctx, s.authors, bson.M{})
}

// authorsByID loads the referenced authors keyed by id.
func (s *Store) authorsByID(ctx context.Context, ids []string) (map[string]*entities.Author, error) {
	out := make(map[string]*entities.Author, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var authors []entities.Author
	if err := findAll(ctx, s.authors, bson.M{"_id": bson.M{"$in": ids}}, nil, &authors); err != nil {
		return nil, err
	}
	for i := range authors {
		out[authors[i].ID] = &authors[i]
	}
	return out, nil
}
