package binder

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type params struct {
	Name   string   `form:"name" mod:"trim,escape"`
	Date   string   `form:"date" mod:"trim"`
	Genres []string `form:"genre"`
}

func TestBind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	b, err := New()
	require.NoError(t, err)

	t.Run("trims and escapes string fields", func(t *testing.T) {
		c := newContext(url.Values{"name": {"  <b>Tom & Jerry</b> "}}.Encode(), gin.MIMEPOSTForm)
		p := params{}
		require.NoError(t, b.Bind(c, &p))
		assert.Equal(t, "&lt;b&gt;Tom &amp; Jerry&lt;/b&gt;", p.Name)
	})

	t.Run("decodes repeated keys into slices", func(t *testing.T) {
		c := newContext(url.Values{"genre": {"a", "b"}}.Encode(), gin.MIMEPOSTForm)
		p := params{}
		require.NoError(t, b.Bind(c, &p))
		assert.Equal(t, []string{"a", "b"}, p.Genres)
	})

	t.Run("ignores unknown keys", func(t *testing.T) {
		c := newContext(url.Values{"name": {"x"}, "gorilla.csrf.Token": {"abc"}}.Encode(), gin.MIMEPOSTForm)
		p := params{}
		require.NoError(t, b.Bind(c, &p))
		assert.Equal(t, "x", p.Name)
	})

	t.Run("accepts an empty body", func(t *testing.T) {
		c := newContext("", gin.MIMEPOSTForm)
		p := params{}
		require.NoError(t, b.Bind(c, &p))
		assert.Empty(t, p.Name)
	})

	t.Run("rejects json bodies", func(t *testing.T) {
		c := newContext(`{"name":"x"}`, gin.MIMEJSON)
		p := params{}
		err := b.Bind(c, &p)
		assert.ErrorIs(t, err, ErrUnsupportedMediaType)
	})
}

func TestCheck(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	tests := []struct {
		value string
		tag   string
		want  bool
	}{
		{"Patrick", "alphanum", true},
		{"O&#39;Brien", "alphanum", false},
		{"", "required", false},
		{"1973-06-06", "iso8601", true},
		{"", "iso8601", true},
		{"2020-02-30", "iso8601", false},
		{"yesterday", "iso8601", false},
		{"2020-06-01T10:00:00Z", "iso8601", true},
		{"Loaned", "oneof=Available Maintenance Loaned Reserved", true},
		{"Lost", "oneof=Available Maintenance Loaned Reserved", false},
	}
	for _, tt := range tests {
		t.Run(tt.tag+"/"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Check(tt.value, tt.tag))
		})
	}
}

func TestRun(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	t.Run("keeps the first failure per field and runs every field", func(t *testing.T) {
		errs := Run(
			b.Rule("first_name", "", "required", "First name must be specified."),
			b.Rule("first_name", "", "alphanum", "First name has non-alphanumeric characters."),
			b.Rule("family_name", "Smith", "required", "Family name must be specified."),
			b.Rule("date_of_birth", "nope", "iso8601", "Invalid date of birth"),
		)

		require.Len(t, errs, 2)
		assert.Equal(t, FieldError{Field: "first_name", Message: "First name must be specified."}, errs[0])
		assert.Equal(t, "Invalid date of birth", errs.Get("date_of_birth"))
		assert.False(t, errs.Has("family_name"))
	})

	t.Run("no failures yields no errors", func(t *testing.T) {
		errs := Run(Custom("book", "Book does not exist.", func() bool { return true }))
		assert.Empty(t, errs)
	})
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1973-06-06")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 1973, d.Year())

	d, err = ParseDate("")
	assert.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDate("06/06/1973")
	assert.Error(t, err)
}

func newContext(payload, mime string) *gin.Context {
	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	req.Header.Set("Content-Type", mime)
	c.Request = req
	return c
}
