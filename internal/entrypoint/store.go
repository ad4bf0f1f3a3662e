package entrypoint

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/docstore"
	http_controllers "github.com/mrlokans/locallibrary/internal/http"
)

// Catalog is a store the server can run against and close on shutdown.
type Catalog interface {
	http_controllers.CatalogStore
	Close() error
}

var (
	_ Catalog = (*database.Database)(nil)
	_ Catalog = (*docstore.Store)(nil)
)

// OpenCatalog connects to the store selected by DATABASE_DRIVER. The returned
// *sql.DB is set only for sqlite, so sessions can live in the same file.
func OpenCatalog(ctx context.Context, cfg *config.Config) (Catalog, *sql.DB, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		store, err := docstore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case config.DriverSQLite:
		db, err := database.NewDatabase(cfg.Database.Path, cfg.Database.Debug)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB.DB()
		if err != nil {
			_ = db.Close()
			return nil, nil, errors.WithStack(err)
		}
		return db, sqlDB, nil
	}
	return nil, nil, errors.Errorf("unknown database driver %q", cfg.Database.Driver)
}
