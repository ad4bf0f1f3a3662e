package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/mrlokans/locallibrary/internal/binder"
	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/entrypoint"
	"github.com/mrlokans/locallibrary/internal/forms"
)

// SeedCommand fills an empty catalog with sample authors, genres, books and copies.
type SeedCommand struct {
	Driver        string
	DatabasePath  string
	MongoURI      string
	MongoDatabase string
	Force         bool
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.Driver, "driver", config.DriverSQLite, "Store to seed: sqlite or mongo")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the sqlite database file")
	fs.StringVar(&cmd.MongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
	fs.StringVar(&cmd.MongoDatabase, "mongo-db", "locallibrary", "MongoDB database name")
	fs.BoolVar(&cmd.Force, "force", false, "Seed even when the catalog already has authors")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Populate the catalog with sample data.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed -db ./locallibrary.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -driver mongo -mongo-uri mongodb://localhost:27017\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Driver != config.DriverSQLite && cmd.Driver != config.DriverMongo {
		return fmt.Errorf("unknown driver %q", cmd.Driver)
	}
	return nil
}

// SeedStore is the subset of a catalog store seeding writes through.
type SeedStore interface {
	CountAuthors(ctx context.Context) (int64, error)
	CreateAuthor(ctx context.Context, author *entities.Author) error
	CreateGenre(ctx context.Context, genre *entities.Genre) error
	CreateBook(ctx context.Context, book *entities.Book) error
	CreateBookInstance(ctx context.Context, instance *entities.BookInstance) error
}

func (cmd *SeedCommand) Run() error {
	ctx := context.Background()

	cfg := config.NewConfig()
	cfg.Database.Driver = cmd.Driver
	cfg.Database.Path = cmd.DatabasePath
	cfg.Mongo.URI = cmd.MongoURI
	cfg.Mongo.Database = cmd.MongoDatabase

	catalog, _, err := entrypoint.OpenCatalog(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer catalog.Close()

	fmt.Println("Seeding catalog")
	fmt.Println("===============")

	if !cmd.Force {
		count, err := catalog.CountAuthors(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			fmt.Printf("Catalog already has %d authors, nothing to do (use -force to seed anyway)\n", count)
			return nil
		}
	}

	b, err := binder.New()
	if err != nil {
		return err
	}

	stats, err := Seed(ctx, catalog, b)
	if err != nil {
		return err
	}

	fmt.Printf("Created %d authors, %d genres, %d books and %d copies\n",
		stats.Authors, stats.Genres, stats.Books, stats.BookInstances)
	return nil
}

type SeedStats struct {
	Authors       int
	Genres        int
	Books         int
	BookInstances int
}

// Seed writes the sample catalog. Every record goes through its form, so
// values are sanitized and validated exactly as a submitted form would be.
func Seed(ctx context.Context, store SeedStore, b *binder.Binder) (SeedStats, error) {
	var stats SeedStats

	authors := make([]entities.Author, 0, len(sampleAuthors))
	for _, form := range sampleAuthors {
		if err := b.Conform(ctx, &form); err != nil {
			return stats, err
		}
		if errs := form.Validate(b); len(errs) > 0 {
			return stats, errors.Errorf("author %s: %s", form.FamilyName, errs[0].Message)
		}
		author := form.Entity("")
		if err := store.CreateAuthor(ctx, author); err != nil {
			return stats, err
		}
		authors = append(authors, *author)
		stats.Authors++
	}

	genres := make([]entities.Genre, 0, len(sampleGenres))
	for _, form := range sampleGenres {
		if err := b.Conform(ctx, &form); err != nil {
			return stats, err
		}
		if errs := form.Validate(b); len(errs) > 0 {
			return stats, errors.Errorf("genre %s: %s", form.Name, errs[0].Message)
		}
		genre := form.Entity("")
		if err := store.CreateGenre(ctx, genre); err != nil {
			return stats, err
		}
		genres = append(genres, *genre)
		stats.Genres++
	}

	books := make([]entities.Book, 0, len(sampleBooks))
	for _, sample := range sampleBooks {
		form := forms.BookForm{
			Title:   sample.title,
			Author:  authors[sample.author].ID,
			Summary: sample.summary,
			ISBN:    sample.isbn,
		}
		for _, g := range sample.genres {
			form.Genre = append(form.Genre, genres[g].ID)
		}
		if err := b.Conform(ctx, &form); err != nil {
			return stats, err
		}
		if errs := form.Validate(b, authors); len(errs) > 0 {
			return stats, errors.Errorf("book %s: %s", form.Title, errs[0].Message)
		}
		book := form.Entity("")
		if err := store.CreateBook(ctx, book); err != nil {
			return stats, err
		}
		books = append(books, *book)
		stats.Books++
	}

	for _, sample := range sampleCopies {
		form := forms.BookInstanceForm{
			Book:    books[sample.book].ID,
			Imprint: sample.imprint,
			Status:  string(sample.status),
			DueBack: sample.dueBack,
		}
		if err := b.Conform(ctx, &form); err != nil {
			return stats, err
		}
		if errs := form.Validate(b, books); len(errs) > 0 {
			return stats, errors.Errorf("copy of %s: %s", books[sample.book].Title, errs[0].Message)
		}
		if err := store.CreateBookInstance(ctx, form.Entity("")); err != nil {
			return stats, err
		}
		stats.BookInstances++
	}

	return stats, nil
}
