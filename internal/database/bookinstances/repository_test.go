package bookinstances

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/locallibrary/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *entities.Book, func()) {
	dbPath := filepath.Join(t.TempDir(), "bookinstances.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Author{}, &entities.Genre{}, &entities.Book{}, &entities.BookInstance{})
	require.NoError(t, err)

	author := &entities.Author{ID: entities.NewID(), FirstName: "Isaac", FamilyName: "Asimov"}
	require.NoError(t, db.Create(author).Error)
	book := &entities.Book{
		ID:       entities.NewID(),
		Title:    "Foundation",
		AuthorID: author.ID,
		Summary:  "Psychohistory.",
		ISBN:     "9780553293357",
	}
	require.NoError(t, db.Omit("Author", "Genres").Create(book).Error)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}

	return NewRepository(db), book, cleanup
}

func TestRepository_CreateBookInstance(t *testing.T) {
	repo, book, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("defaults status to Maintenance", func(t *testing.T) {
		instance := &entities.BookInstance{BookID: book.ID, Imprint: "Gnome Press, 1951"}
		require.NoError(t, repo.CreateBookInstance(ctx, instance))

		got, err := repo.GetBookInstanceByID(ctx, instance.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusMaintenance, got.Status)
		assert.Equal(t, "Foundation", got.BookTitle())
	})

	t.Run("keeps due back date", func(t *testing.T) {
		due := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
		instance := &entities.BookInstance{
			BookID:  book.ID,
			Imprint: "Bantam, 1991",
			Status:  entities.StatusLoaned,
			DueBack: &due,
		}
		require.NoError(t, repo.CreateBookInstance(ctx, instance))

		got, err := repo.GetBookInstanceByID(ctx, instance.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jun 1, 2020", got.DueBackFormatted())
	})
}

func TestRepository_GetBookInstanceByID_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetBookInstanceByID(context.Background(), entities.NewID())
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_ListAndCount(t *testing.T) {
	repo, book, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	statuses := []entities.BookInstanceStatus{
		entities.StatusAvailable,
		entities.StatusAvailable,
		entities.StatusLoaned,
	}
	for _, s := range statuses {
		require.NoError(t, repo.CreateBookInstance(ctx, &entities.BookInstance{BookID: book.ID, Imprint: "imprint", Status: s}))
	}

	list, err := repo.ListBookInstances(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Foundation", list[0].BookTitle())

	byBook, err := repo.GetInstancesByBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Len(t, byBook, 3)

	all, err := repo.CountBookInstances(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), all)

	available, err := repo.CountBookInstances(ctx, entities.StatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, int64(2), available)
}

func TestRepository_UpdateBookInstance(t *testing.T) {
	repo, book, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	due := time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)
	instance := &entities.BookInstance{BookID: book.ID, Imprint: "first", Status: entities.StatusLoaned, DueBack: &due}
	require.NoError(t, repo.CreateBookInstance(ctx, instance))

	update := &entities.BookInstance{ID: instance.ID, BookID: book.ID, Imprint: "second", Status: entities.StatusAvailable}
	require.NoError(t, repo.UpdateBookInstance(ctx, update))

	got, err := repo.GetBookInstanceByID(ctx, instance.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Imprint)
	assert.Equal(t, entities.StatusAvailable, got.Status)
	assert.Nil(t, got.DueBack)
}

func TestRepository_DeleteBookInstance(t *testing.T) {
	repo, book, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	instance := &entities.BookInstance{BookID: book.ID, Imprint: "x"}
	require.NoError(t, repo.CreateBookInstance(ctx, instance))
	require.NoError(t, repo.DeleteBookInstance(ctx, instance.ID))

	_, err := repo.GetBookInstanceByID(ctx, instance.ID)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}
