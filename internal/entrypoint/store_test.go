package entrypoint

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/config"
)

func TestOpenCatalog(t *testing.T) {
	t.Run("opens sqlite with a shared sql handle", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Database.Driver = config.DriverSQLite
		cfg.Database.Path = filepath.Join(t.TempDir(), "catalog.db")

		catalog, sqlDB, err := OpenCatalog(context.Background(), cfg)
		require.NoError(t, err)
		defer catalog.Close()

		assert.NotNil(t, sqlDB)
		assert.NoError(t, catalog.Ping(context.Background()))
	})

	t.Run("rejects unknown drivers", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Database.Driver = "postgres"

		_, _, err := OpenCatalog(context.Background(), cfg)
		assert.Error(t, err)
	})
}

func TestAssets(t *testing.T) {
	t.Run("embedded by default", func(t *testing.T) {
		templates, static := assets(config.UI{})

		require.NoError(t, fstest.TestFS(templates, "layout.html", "index.html"))
		require.NoError(t, fstest.TestFS(static, "css/style.css"))
	})

	t.Run("directories override", func(t *testing.T) {
		dir := t.TempDir()
		templates, _ := assets(config.UI{TemplatesPath: dir})

		_, err := templates.Open("layout.html")
		assert.Error(t, err)
	})
}
