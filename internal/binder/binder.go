// Package binder turns submitted HTML forms into sanitized structs and runs
// ordered validation rules over them.
//
// Binding happens in two steps: gorilla/schema decodes the request's form
// values using the `form` struct tag, then mold applies the `mod` tag
// (trim, escape, ...). Validation is separate: callers build a list of Rules
// and Run keeps the first failing message per field.
package binder

import (
	"context"
	"html"
	"mime"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/pkg/errors"
)

const maxMultipartMemory = 8 << 20

// ErrMalformedPayload is returned when the request body cannot be parsed as a form.
var ErrMalformedPayload = errors.New("malformed form payload")

// ErrUnsupportedMediaType is returned for bodies that are not form encoded.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// Binder decodes form submissions, uses mold to clean up the values, and
// exposes validator checks for building rules.
type Binder struct {
	formDecoder *schema.Decoder
	conform     *mold.Transformer
	validate    *validator.Validate
}

// New initializes a new Binder instance with the custom modifiers and
// validation functions registered.
func New() (*Binder, error) {
	formDecoder := schema.NewDecoder()
	formDecoder.SetAliasTag("form")
	formDecoder.IgnoreUnknownKeys(true)

	conform := modifiers.New()
	conform.Register("escape", escapeModifier)

	validate := validator.New()
	if err := validate.RegisterValidation("iso8601", iso8601Validator); err != nil {
		return nil, errors.WithStack(err)
	}

	return &Binder{formDecoder, conform, validate}, nil
}

// Bind decodes the request form into i and applies its mod tags.
func (b *Binder) Bind(c *gin.Context, i interface{}) error {
	req := c.Request

	if req.ContentLength != 0 {
		ctype, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
		if err != nil {
			return errors.Wrap(ErrUnsupportedMediaType, err.Error())
		}
		switch ctype {
		case gin.MIMEPOSTForm:
			if err := req.ParseForm(); err != nil {
				return errors.Wrap(ErrMalformedPayload, err.Error())
			}
		case gin.MIMEMultipartPOSTForm:
			if err := req.ParseMultipartForm(maxMultipartMemory); err != nil {
				return errors.Wrap(ErrMalformedPayload, err.Error())
			}
		default:
			return errors.Wrap(ErrUnsupportedMediaType, ctype)
		}
	} else if err := req.ParseForm(); err != nil {
		return errors.Wrap(ErrMalformedPayload, err.Error())
	}

	values := req.PostForm
	if req.Method == http.MethodGet {
		values = req.Form
	}
	if err := b.formDecoder.Decode(i, values); err != nil {
		return errors.Wrap(ErrMalformedPayload, err.Error())
	}

	return b.Conform(req.Context(), i)
}

// Conform applies the mod tags of i without decoding anything.
func (b *Binder) Conform(ctx context.Context, i interface{}) error {
	return errors.WithStack(b.conform.Struct(ctx, i))
}

// Check reports whether value passes the given validator tag.
func (b *Binder) Check(value interface{}, tag string) bool {
	return b.validate.Var(value, tag) == nil
}

// Rule builds a rule that fails with message when value does not pass tag.
func (b *Binder) Rule(field string, value interface{}, tag, message string) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Check:   func() bool { return b.Check(value, tag) },
	}
}

func escapeModifier(_ context.Context, fl mold.FieldLevel) error {
	if fl.Field().Kind() == reflect.String {
		fl.Field().SetString(html.EscapeString(fl.Field().String()))
	}
	return nil
}
