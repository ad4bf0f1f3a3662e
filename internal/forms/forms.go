// Package forms holds the submitted shape of every catalog form, the rules
// each one is validated with, and the conversion to and from entities.
//
// String fields are trimmed and HTML-escaped by the binder before any rule
// runs, so the values stored in entities are already escaped. Templates
// unescape them once before html/template re-escapes on output. Length limits
// count the characters the user typed, not the escaped form.
package forms

import (
	"html"
	"time"

	"github.com/mrlokans/locallibrary/internal/binder"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func inputDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(entities.InputDateLayout)
}

// parseDate is only called after the iso8601 rule passed; anything unparsable is treated as unknown.
func parseDate(value string) *time.Time {
	t, err := binder.ParseDate(value)
	if err != nil {
		return nil
	}
	return t
}

// typed undoes the binder's escaping so length rules see the submitted text.
func typed(value string) string {
	return html.UnescapeString(value)
}
