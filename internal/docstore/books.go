package docstore

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mrlokans/locallibrary/internal/entities"
)

var byTitle = bson.D{{Key: "title", Value: 1}}

func (s *Store) ListBooks(ctx context.Context) ([]entities.Book, error) {
	books := []entities.Book{}
	if err := findAll(ctx, s.books, bson.M{}, byTitle, &books); err != nil {
		return nil, err
	}
	if err := s.populateBooks(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *Store) GetBookByID(ctx context.Context, id string) (*entities.Book, error) {
	var book entities.Book
	if err := findOne(ctx, s.books, id, &book); err != nil {
		return nil, err
	}
	books := []entities.Book{book}
	if err := s.populateBooks(ctx, books); err != nil {
		return nil, err
	}
	return &books[0], nil
}

func (s *Store) GetBooksByAuthor(ctx context.Context, authorID string) ([]entities.Book, error) {
	books := []entities.Book{}
	err := findAll(ctx, s.books, bson.M{"author": authorID}, byTitle, &books)
	return books, err
}

func (s *Store) GetBooksByGenre(ctx context.Context, genreID string) ([]entities.Book, error) {
	books := []entities.Book{}
	err := findAll(ctx, s.books, bson.M{"genre": genreID}, byTitle, &books)
	return books, err
}

func (s *Store) CreateBook(ctx context.Context, book *entities.Book) error {
	if book.ID == "" {
		book.ID = entities.NewID()
	}
	genres, err := s.genresByIDs(ctx, book.GenreIDs)
	if err != nil {
		return err
	}
	setGenres(book, genres)
	book.CreatedAt = now()
	book.UpdatedAt = book.CreatedAt
	_, err = s.books.InsertOne(ctx, book)
	return errors.WithStack(err)
}

func (s *Store) UpdateBook(ctx context.Context, book *entities.Book) error {
	if book.ID == "" {
		return errMissingID("book")
	}
	genres, err := s.genresByIDs(ctx, book.GenreIDs)
	if err != nil {
		return err
	}
	setGenres(book, genres)
	book.UpdatedAt = now()
	return upsert(ctx, s.books, book.ID, bson.M{
		"title":      book.Title,
		"author":     book.AuthorID,
		"summary":    book.Summary,
		"isbn":       book.ISBN,
		"genre":      book.GenreIDs,
		"updated_at": book.UpdatedAt,
	}, book.UpdatedAt)
}

func (s *Store) DeleteBook(ctx context.Context, id string) error {
	return deleteByID(ctx, s.books, id)
}

func (s *Store) CountBooks(ctx context.Context) (int64, error) {
	return count(ctx, s.books, bson.M{})
}

func setGenres(book *entities.Book, genres []entities.Genre) {
	book.Genres = genres
	book.GenreIDs = make([]string, 0, len(genres))
	for _, g := range genres {
		book.GenreIDs = append(book.GenreIDs, g.ID)
	}
}

// populateBooks resolves the author and genre references of every book in place.
func (s *Store) populateBooks(ctx context.Context, books []entities.Book) error {
	authorIDs := make([]string, 0, len(books))
	genreIDs := []string{}
	for _, b := range books {
		authorIDs = append(authorIDs, b.AuthorID)
		genreIDs = append(genreIDs, b.GenreIDs...)
	}

	authors, err := s.authorsByID(ctx, authorIDs)
	if err != nil {
		return err
	}
	genres, err := s.genresByIDs(ctx, genreIDs)
	if err != nil {
		return err
	}

	for i := range books {
		books[i].Author = authors[books[i].AuthorID]
		resolved := []entities.Genre{}
		for _, g := range genres {
			if books[i].HasGenre(g.ID) {
				resolved = append(resolved, g)
			}
		}
		setGenres(&books[i], resolved)
	}
	return nil
}

// booksByID loads the referenced books keyed by id, without resolving their references.
func (s *Store) booksByID(ctx context.Context, ids []string) (map[string]*entities.Book, error) {
	out := make(map[string]*entities.Book, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var books []entities.Book
	if err := findAll(ctx, s.books, bson.M{"_id": bson.M{"$in": ids}}, nil, &books); err != nil {
		return nil, err
	}
	for i := range books {
		out[books[i].ID] = &books[i]
	}
	return out, nil
}
