package forms

import (
	"strings"

	"github.com/mrlokans/locallibrary/internal/binder"
	"github.com/mrlokans/locallibrary/internal/entities"
)

var statusTag = "oneof=" + strings.Join(statusNames(), " ")

func statusNames() []string {
	names := make([]string, 0, len(entities.BookInstanceStatuses))
	for _, s := range entities.BookInstanceStatuses {
		names = append(names, string(s))
	}
	return names
}

type BookInstanceForm struct {
	Book    string `form:"book" mod:"trim,escape"`
	Imprint string `form:"imprint" mod:"trim,escape"`
	Status  string `form:"status" mod:"trim,escape"`
	DueBack string `form:"due_back" mod:"trim"`
}

// Validate checks the fields and that the chosen book is one of books.
func (f *BookInstanceForm) Validate(b *binder.Binder, books []entities.Book) binder.Errors {
	return binder.Run(
		b.Rule("book", f.Book, "required", "Book must be specified"),
		binder.Custom("book", "Book does not exist.", func() bool {
			for _, book := range books {
				if book.ID == f.Book {
					return true
				}
			}
			return false
		}),
		b.Rule("imprint", f.Imprint, "required", "Imprint must be specified"),
		b.Rule("status", f.Status, "omitempty,"+statusTag, "Invalid status"),
		b.Rule("due_back", f.DueBack, "iso8601", "Invalid date"),
	)
}

// Entity builds the copy to persist. A blank status means Maintenance.
func (f *BookInstanceForm) Entity(id string) *entities.BookInstance {
	status := entities.BookInstanceStatus(f.Status)
	if status == "" {
		status = entities.StatusMaintenance
	}
	return &entities.BookInstance{
		ID:      id,
		BookID:  f.Book,
		Imprint: f.Imprint,
		Status:  status,
		DueBack: parseDate(f.DueBack),
	}
}

func BookInstanceFormFrom(bi *entities.BookInstance) BookInstanceForm {
	return BookInstanceForm{
		Book:    bi.BookID,
		Imprint: bi.Imprint,
		Status:  string(bi.Status),
		DueBack: inputDate(bi.DueBack),
	}
}
