// Package docstore is the MongoDB implementation of the catalog stores.
//
// Documents keep references the way the relational layer does: a book holds
// its author id and a list of genre ids, a copy holds its book id. Lookups
// resolve those references with follow-up $in queries rather than $lookup so
// the decoded entities match what the gorm repositories return.
package docstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mrlokans/locallibrary/internal/entities"
)

const (
	authorsCollection       = "authors"
	genresCollection        = "genres"
	booksCollection         = "books"
	bookInstancesCollection = "bookinstances"
)

type Store struct {
	client        *mongo.Client
	authors       *mongo.Collection
	genres        *mongo.Collection
	books         *mongo.Collection
	bookInstances *mongo.Collection
}

// Connect dials uri, verifies the connection and ensures the indexes exist.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "failed to ping mongo")
	}

	db := client.Database(database)
	s := &Store{
		client:        client,
		authors:       db.Collection(authorsCollection),
		genres:        db.Collection(genresCollection),
		books:         db.Collection(booksCollection),
		bookInstances: db.Collection(bookInstancesCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.New().Info("mongo store initialized", logger.Data{"database": database})
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := map[*mongo.Collection][]mongo.IndexModel{
		s.authors:       {{Keys: bson.D{{Key: "family_name", Value: 1}, {Key: "first_name", Value: 1}}}},
		s.genres:        {{Keys: bson.D{{Key: "name", Value: 1}}}},
		s.books:         {{Keys: bson.D{{Key: "title", Value: 1}}}, {Keys: bson.D{{Key: "author", Value: 1}}}, {Keys: bson.D{{Key: "genre", Value: 1}}}},
		s.bookInstances: {{Keys: bson.D{{Key: "book", Value: 1}}}, {Keys: bson.D{{Key: "status", Value: 1}}}},
	}
	for coll, models := range indexes {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "failed to create indexes on %s", coll.Name())
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return errors.WithStack(s.client.Ping(ctx, readpref.Primary()))
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Drop removes every catalog collection. Used by the seed command and tests.
func (s *Store) Drop(ctx context.Context) error {
	for _, coll := range []*mongo.Collection{s.authors, s.genres, s.books, s.bookInstances} {
		if err := coll.Drop(ctx); err != nil {
			return errors.WithStack(err)
		}
	}
	return s.ensureIndexes(ctx)
}

func findOne(ctx context.Context, coll *mongo.Collection, id string, out interface{}) error {
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entities.ErrNotFound
	}
	return errors.WithStack(err)
}

func findAll(ctx context.Context, coll *mongo.Collection, filter interface{}, sort bson.D, out interface{}) error {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(cur.All(ctx, out))
}

// upsert writes fields onto the document with the given id, inserting it with
// createdAt when it does not exist yet.
func upsert(ctx context.Context, coll *mongo.Collection, id string, fields bson.M, createdAt time.Time) error {
	update := bson.M{
		"$set":         fields,
		"$setOnInsert": bson.M{"created_at": createdAt},
	}
	_, err := coll.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	return errors.WithStack(err)
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) error {
	_, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	return errors.WithStack(err)
}

func count(ctx context.Context, coll *mongo.Collection, filter bson.M) (int64, error) {
	n, err := coll.CountDocuments(ctx, filter)
	return n, errors.WithStack(err)
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
