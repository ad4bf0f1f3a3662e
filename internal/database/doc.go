// Package database provides the relational data access layer for the catalog.
//
// # Architecture
//
// The layer is organized into one sub-package per collection:
//
//	database/
//	├── database.go      # Connection setup, migrations, composite store
//	├── authors/         # Author CRUD
//	├── genres/          # Genre CRUD and name lookup
//	├── books/           # Book CRUD and the book_genres join table
//	└── bookinstances/   # Copy CRUD and status counts
//
// # Using the Database
//
// Database embeds every repository, so one value satisfies each store
// interface the HTTP controllers declare:
//
//	db, err := database.NewDatabase("./locallibrary.db", false)
//	authors, err := db.ListAuthors(ctx)
//	copies, err := db.GetInstancesByBook(ctx, bookID)
//
// Repositories can also be used on their own:
//
//	repo := genres.NewRepository(db.DB)
//
// Lookups by id return entities.ErrNotFound when the row does not exist.
// All other errors carry a stack trace from github.com/pkg/errors.
package database
