package books

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/locallibrary/internal/entities"
)

type fixture struct {
	repo    *Repository
	db      *gorm.DB
	author  entities.Author
	fantasy entities.Genre
	poetry  entities.Genre
}

func setupTestDB(t *testing.T) (*fixture, func()) {
	dbPath := filepath.Join(t.TempDir(), "books.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Author{}, &entities.Genre{}, &entities.Book{})
	require.NoError(t, err)

	f := &fixture{
		repo:    NewRepository(db),
		db:      db,
		author:  entities.Author{ID: entities.NewID(), FirstName: "Patrick", FamilyName: "Rothfuss"},
		fantasy: entities.Genre{ID: entities.NewID(), Name: "Fantasy"},
		poetry:  entities.Genre{ID: entities.NewID(), Name: "Poetry"},
	}
	require.NoError(t, db.Create(&f.author).Error)
	require.NoError(t, db.Create(&f.fantasy).Error)
	require.NoError(t, db.Create(&f.poetry).Error)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}

	return f, cleanup
}

func (f *fixture) book(title string, genreIDs ...string) *entities.Book {
	return &entities.Book{
		Title:    title,
		AuthorID: f.author.ID,
		Summary:  "summary of " + title,
		ISBN:     "9781473211896",
		GenreIDs: genreIDs,
	}
}

func TestRepository_CreateBook(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book := f.book("The Name of the Wind", f.fantasy.ID, "unknown-genre")
	require.NoError(t, f.repo.CreateBook(ctx, book))
	assert.NotEmpty(t, book.ID)
	assert.Equal(t, []string{f.fantasy.ID}, book.GenreIDs)

	got, err := f.repo.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Name of the Wind", got.Title)
	require.NotNil(t, got.Author)
	assert.Equal(t, "Rothfuss, Patrick", got.Author.Name())
	require.Len(t, got.Genres, 1)
	assert.Equal(t, "Fantasy", got.Genres[0].Name)
	assert.True(t, got.HasGenre(f.fantasy.ID))
}

func TestRepository_CreateBook_DoesNotTouchGenres(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, f.repo.CreateBook(ctx, f.book("Book", f.poetry.ID)))

	var genre entities.Genre
	require.NoError(t, f.db.Where("id = ?", f.poetry.ID).First(&genre).Error)
	assert.Equal(t, "Poetry", genre.Name)
}

func TestRepository_GetBookByID_NotFound(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := f.repo.GetBookByID(context.Background(), entities.NewID())
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_ListBooks_OrderedByTitle(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, f.repo.CreateBook(ctx, f.book("The Wise Man's Fear")))
	require.NoError(t, f.repo.CreateBook(ctx, f.book("Apes and Angels")))

	list, err := f.repo.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Apes and Angels", list[0].Title)
	assert.Equal(t, "The Wise Man's Fear", list[1].Title)
	require.NotNil(t, list[0].Author)
	assert.Equal(t, "Rothfuss", list[0].Author.FamilyName)
}

func TestRepository_GetBooksByAuthorAndGenre(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, f.repo.CreateBook(ctx, f.book("B", f.fantasy.ID)))
	require.NoError(t, f.repo.CreateBook(ctx, f.book("A", f.fantasy.ID, f.poetry.ID)))

	byAuthor, err := f.repo.GetBooksByAuthor(ctx, f.author.ID)
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	byFantasy, err := f.repo.GetBooksByGenre(ctx, f.fantasy.ID)
	require.NoError(t, err)
	require.Len(t, byFantasy, 2)
	assert.Equal(t, "A", byFantasy[0].Title)

	byPoetry, err := f.repo.GetBooksByGenre(ctx, f.poetry.ID)
	require.NoError(t, err)
	require.Len(t, byPoetry, 1)
	assert.Equal(t, "A", byPoetry[0].Title)
}

func TestRepository_UpdateBook(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book := f.book("Draft", f.fantasy.ID)
	require.NoError(t, f.repo.CreateBook(ctx, book))

	t.Run("replaces fields and genres", func(t *testing.T) {
		update := f.book("Final", f.poetry.ID)
		update.ID = book.ID
		require.NoError(t, f.repo.UpdateBook(ctx, update))

		got, err := f.repo.GetBookByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Final", got.Title)
		assert.Equal(t, []string{f.poetry.ID}, got.GenreIDs)
	})

	t.Run("clears genres", func(t *testing.T) {
		update := f.book("Final")
		update.ID = book.ID
		require.NoError(t, f.repo.UpdateBook(ctx, update))

		got, err := f.repo.GetBookByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Empty(t, got.GenreIDs)
	})

	t.Run("creates the row when the id is unknown", func(t *testing.T) {
		update := f.book("Fresh", f.fantasy.ID)
		update.ID = entities.NewID()
		require.NoError(t, f.repo.UpdateBook(ctx, update))

		got, err := f.repo.GetBookByID(ctx, update.ID)
		require.NoError(t, err)
		assert.Equal(t, "Fresh", got.Title)
		assert.Equal(t, []string{f.fantasy.ID}, got.GenreIDs)
	})
}

func TestRepository_DeleteBook(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book := f.book("Gone", f.fantasy.ID)
	require.NoError(t, f.repo.CreateBook(ctx, book))
	require.NoError(t, f.repo.DeleteBook(ctx, book.ID))

	_, err := f.repo.GetBookByID(ctx, book.ID)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	byFantasy, err := f.repo.GetBooksByGenre(ctx, f.fantasy.ID)
	require.NoError(t, err)
	assert.Empty(t, byFantasy)

	count, err := f.repo.CountBooks(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
