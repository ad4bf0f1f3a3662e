package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/entities"
)

func TestBookInstancesController_List(t *testing.T) {
	t.Run("renders empty state", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := get(router, "/catalog/bookinstances")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "There are no book copies in this library.")
	})

	t.Run("shows title, imprint and status", func(t *testing.T) {
		router, db := setupTestRouter(t)
		_, _, _, instance := seedCatalog(t, db)

		w := get(router, "/catalog/bookinstances")

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `<a href="`+instance.URL()+`">The Name of the Wind : Gollancz, 2011.</a>`)
		assert.Contains(t, body, "Available")
		assert.NotContains(t, body, "Due:")
	})
}

func TestBookInstancesController_Detail(t *testing.T) {
	router, db := setupTestRouter(t)
	_, _, book, instance := seedCatalog(t, db)

	w := get(router, instance.URL())

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<title>Copy: The Name of the Wind</title>")
	assert.Contains(t, body, book.URL())
}

func TestBookInstancesController_CreateForm(t *testing.T) {
	router, db := setupTestRouter(t)
	_, _, book, _ := seedCatalog(t, db)

	w := get(router, "/catalog/bookinstance/create?book="+book.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<option value="`+book.ID+`" selected>`)
}

func TestBookInstancesController_Create(t *testing.T) {
	t.Run("status defaults to maintenance", func(t *testing.T) {
		router, db := setupTestRouter(t)
		_, _, book, _ := seedCatalog(t, db)

		w := postForm(router, "/catalog/bookinstance/create", url.Values{
			"book":     {book.ID},
			"imprint":  {"Gollancz, 2017."},
			"due_back": {"2026-11-01"},
		})

		require.Equal(t, http.StatusFound, w.Code)
		id := strings.TrimPrefix(w.Header().Get("Location"), "/catalog/bookinstance/")

		instance, err := db.GetBookInstanceByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusMaintenance, instance.Status)
		assert.Equal(t, "Nov 1, 2026", instance.DueBackFormatted())
	})

	t.Run("invalid values re-render the form", func(t *testing.T) {
		router, db := setupTestRouter(t)
		_, _, book, _ := seedCatalog(t, db)

		w := postForm(router, "/catalog/bookinstance/create", url.Values{
			"book":     {book.ID},
			"imprint":  {""},
			"status":   {"Lost"},
			"due_back": {"someday"},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Imprint must be specified")
		assert.Contains(t, body, "Invalid status")
		assert.Contains(t, body, "Invalid date")
		assert.NotContains(t, body, "Book must be specified")

		count, err := db.CountBookInstances(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unknown book is rejected", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := postForm(router, "/catalog/bookinstance/create", url.Values{
			"book":    {"nothing"},
			"imprint": {"Nowhere, 1900."},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Book does not exist.")
	})
}

func TestBookInstancesController_Update(t *testing.T) {
	router, db := setupTestRouter(t)
	_, _, book, instance := seedCatalog(t, db)

	form := get(router, instance.URL()+"/update")
	require.Equal(t, http.StatusOK, form.Code)
	assert.Contains(t, form.Body.String(), `<option value="Available" selected>`)

	w := postForm(router, instance.URL()+"/update", url.Values{
		"book":     {book.ID},
		"imprint":  {"Gollancz, 2011."},
		"status":   {"Loaned"},
		"due_back": {"2026-12-24"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, instance.URL(), w.Header().Get("Location"))

	updated, err := db.GetBookInstanceByID(context.Background(), instance.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusLoaned, updated.Status)
	assert.Equal(t, "Dec 24, 2026", updated.DueBackFormatted())
}

func TestBookInstancesController_Delete(t *testing.T) {
	router, db := setupTestRouter(t)
	_, _, _, instance := seedCatalog(t, db)

	confirm := get(router, instance.URL()+"/delete")
	require.Equal(t, http.StatusOK, confirm.Code)
	assert.Contains(t, confirm.Body.String(), `name="bookinstanceid" value="`+instance.ID+`"`)

	w := postForm(router, instance.URL()+"/delete", url.Values{"bookinstanceid": {instance.ID}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/catalog/bookinstances", w.Header().Get("Location"))

	_, err := db.GetBookInstanceByID(context.Background(), instance.ID)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}
