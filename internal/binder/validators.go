package binder

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// dateLayouts are the ISO-8601 shapes accepted from date inputs, most common first.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// iso8601Validator ensures the value is an ISO-8601 date or date-time naming
// a real calendar day. The empty string is allowed so optional dates can be
// left blank; add `required` in front of it otherwise.
func iso8601Validator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := ParseDate(value)
	return err == nil
}

// ParseDate converts an ISO-8601 value to a time. The empty string yields nil.
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errors.Errorf("%q is not an ISO-8601 date", value)
}
