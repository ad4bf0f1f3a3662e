package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenresController_Create(t *testing.T) {
	t.Run("same name twice resolves to one genre", func(t *testing.T) {
		router, db := setupTestRouter(t)

		first := postForm(router, "/catalog/genre/create", url.Values{"name": {"Fantasy"}})
		second := postForm(router, "/catalog/genre/create", url.Values{"name": {"Fantasy"}})

		require.Equal(t, http.StatusFound, first.Code)
		require.Equal(t, http.StatusFound, second.Code)
		location := first.Header().Get("Location")
		assert.True(t, strings.HasPrefix(location, "/catalog/genre/"))
		assert.Equal(t, location, second.Header().Get("Location"))

		count, err := db.CountGenres(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("name match is case sensitive", func(t *testing.T) {
		router, db := setupTestRouter(t)

		postForm(router, "/catalog/genre/create", url.Values{"name": {"Fantasy"}})
		postForm(router, "/catalog/genre/create", url.Values{"name": {"fantasy"}})

		count, err := db.CountGenres(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("empty name re-renders the form", func(t *testing.T) {
		router, db := setupTestRouter(t)

		w := postForm(router, "/catalog/genre/create", url.Values{"name": {"   "}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, strings.Count(w.Body.String(), "Genre name required"))

		count, err := db.CountGenres(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("markup is stored escaped and shown once-escaped", func(t *testing.T) {
		router, db := setupTestRouter(t)

		w := postForm(router, "/catalog/genre/create", url.Values{"name": {"Sci-Fi & <Fantasy>"}})
		require.Equal(t, http.StatusFound, w.Code)

		genres, err := db.ListGenres(context.Background())
		require.NoError(t, err)
		require.Len(t, genres, 1)
		assert.Equal(t, "Sci-Fi &amp; &lt;Fantasy&gt;", genres[0].Name)

		detail := get(router, w.Header().Get("Location"))
		body := detail.Body.String()
		assert.Contains(t, body, "Genre: Sci-Fi &amp; &lt;Fantasy&gt;")
		assert.NotContains(t, body, "&amp;amp;")
		assert.NotContains(t, body, "<Fantasy>")
	})
}

func TestGenresController_Detail(t *testing.T) {
	router, db := setupTestRouter(t)
	_, genre, book, _ := seedCatalog(t, db)

	w := get(router, genre.URL())

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Genre: Fantasy")
	assert.Contains(t, body, book.URL())
}

func TestGenresController_Update(t *testing.T) {
	router, db := setupTestRouter(t)
	_, genre, _, _ := seedCatalog(t, db)

	form := get(router, genre.URL()+"/update")
	assert.Equal(t, http.StatusOK, form.Code)
	assert.Contains(t, form.Body.String(), `value="Fantasy"`)

	w := postForm(router, genre.URL()+"/update", url.Values{"name": {"High Fantasy"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, genre.URL(), w.Header().Get("Location"))

	updated, err := db.GetGenreByID(context.Background(), genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "High Fantasy", updated.Name)

	t.Run("keeping the same name is allowed", func(t *testing.T) {
		w := postForm(router, genre.URL()+"/update", url.Values{"name": {"High Fantasy"}})
		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("renaming onto another genre is rejected", func(t *testing.T) {
		created := postForm(router, "/catalog/genre/create", url.Values{"name": {"Poetry"}})
		require.Equal(t, http.StatusFound, created.Code)

		w := postForm(router, genre.URL()+"/update", url.Values{"name": {"Poetry"}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Genre with this name already exists.")

		unchanged, err := db.GetGenreByID(context.Background(), genre.ID)
		require.NoError(t, err)
		assert.Equal(t, "High Fantasy", unchanged.Name)

		count, err := db.CountGenres(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestGenresController_Delete(t *testing.T) {
	t.Run("genre with books is kept", func(t *testing.T) {
		router, db := setupTestRouter(t)
		_, genre, _, _ := seedCatalog(t, db)

		w := postForm(router, genre.URL()+"/delete", url.Values{"genreid": {genre.ID}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Delete the following books before attempting to delete this genre.")

		_, err := db.GetGenreByID(context.Background(), genre.ID)
		assert.NoError(t, err)
	})

	t.Run("genre without books is deleted", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		created := postForm(router, "/catalog/genre/create", url.Values{"name": {"Poetry"}})
		require.Equal(t, http.StatusFound, created.Code)
		location := created.Header().Get("Location")
		id := strings.TrimPrefix(location, "/catalog/genre/")

		w := postForm(router, location+"/delete", url.Values{"genreid": {id}})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/catalog/genres", w.Header().Get("Location"))
		assert.NotContains(t, get(router, "/catalog/genres").Body.String(), "Poetry")
	})
}
