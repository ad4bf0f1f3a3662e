package forms

import (
	"github.com/mrlokans/locallibrary/internal/binder"
	"github.com/mrlokans/locallibrary/internal/entities"
)

type BookForm struct {
	Title   string   `form:"title" mod:"trim,escape"`
	Author  string   `form:"author" mod:"trim,escape"`
	Summary string   `form:"summary" mod:"trim,escape"`
	ISBN    string   `form:"isbn" mod:"trim,escape"`
	Genre   []string `form:"genre" mod:"dive,trim,escape"`
}

// Validate checks the fields and that the chosen author is one of authors.
func (f *BookForm) Validate(b *binder.Binder, authors []entities.Author) binder.Errors {
	return binder.Run(
		b.Rule("title", f.Title, "required", "Title must not be empty."),
		b.Rule("author", f.Author, "required", "Author must not be empty."),
		binder.Custom("author", "Author does not exist.", func() bool {
			for _, a := range authors {
				if a.ID == f.Author {
					return true
				}
			}
			return false
		}),
		b.Rule("summary", f.Summary, "required", "Summary must not be empty."),
		b.Rule("isbn", f.ISBN, "required", "ISBN must not be empty"),
	)
}

// Entity builds the book to persist. Genre ids that do not exist are dropped by the store.
func (f *BookForm) Entity(id string) *entities.Book {
	return &entities.Book{
		ID:       id,
		Title:    f.Title,
		AuthorID: f.Author,
		Summary:  f.Summary,
		ISBN:     f.ISBN,
		GenreIDs: nonEmpty(f.Genre),
	}
}

// HasGenre reports whether the genre checkbox should be ticked.
func (f BookForm) HasGenre(id string) bool {
	for _, g := range f.Genre {
		if g == id {
			return true
		}
	}
	return false
}

func BookFormFrom(book *entities.Book) BookForm {
	return BookForm{
		Title:   book.Title,
		Author:  book.AuthorID,
		Summary: book.Summary,
		ISBN:    book.ISBN,
		Genre:   append([]string(nil), book.GenreIDs...),
	}
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
