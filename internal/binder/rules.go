package binder

// FieldError is a single failed rule, as shown next to a form.
type FieldError struct {
	Field   string
	Message string
}

// Errors is the ordered list of failures for one submission.
type Errors []FieldError

// Has reports whether field failed a rule.
func (e Errors) Has(field string) bool {
	return e.Get(field) != ""
}

// Get returns the message for field, or "" when it passed.
func (e Errors) Get(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Rule is one check over a field's already sanitized value.
type Rule struct {
	Field   string
	Message string
	Check   func() bool
}

// Run evaluates every rule in order. A field keeps only its first failure, so
// later rules on a field that already failed are skipped.
func Run(rules ...Rule) Errors {
	var errs Errors
	for _, r := range rules {
		if errs.Has(r.Field) {
			continue
		}
		if !r.Check() {
			errs = append(errs, FieldError{Field: r.Field, Message: r.Message})
		}
	}
	return errs
}

// Custom builds a rule from an arbitrary check, for conditions that depend on
// data outside the form such as referenced documents.
func Custom(field, message string, check func() bool) Rule {
	return Rule{Field: field, Message: message, Check: check}
}
