package database

import (
	"context"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mrlokans/locallibrary/internal/database/authors"
	"github.com/mrlokans/locallibrary/internal/database/bookinstances"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/database/genres"
	"github.com/mrlokans/locallibrary/internal/entities"
)

type (
	AuthorRepository       = authors.Repository
	GenreRepository        = genres.Repository
	BookRepository         = books.Repository
	BookInstanceRepository = bookinstances.Repository
)

// Database owns the gorm connection and exposes every catalog repository
// through method promotion, so a single value satisfies all controller stores.
type Database struct {
	DB *gorm.DB

	*AuthorRepository
	*GenreRepository
	*BookRepository
	*BookInstanceRepository
}

// NewDatabase opens (or creates) the sqlite file at dbPath and migrates the schema.
func NewDatabase(dbPath string, debug bool) (*Database, error) {
	level := gormlogger.Silent
	if debug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Genre{},
		&entities.Book{},
		&entities.BookInstance{},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	logger.New().Info("database initialized", logger.Data{"path": dbPath})

	return New(db), nil
}

// New wraps an already opened and migrated gorm connection.
func New(db *gorm.DB) *Database {
	return &Database{
		DB:                     db,
		AuthorRepository:       authors.NewRepository(db),
		GenreRepository:        genres.NewRepository(db),
		BookRepository:         books.NewRepository(db),
		BookInstanceRepository: bookinstances.NewRepository(db),
	}
}

// Ping checks the underlying connection.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(sqlDB.PingContext(ctx))
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
