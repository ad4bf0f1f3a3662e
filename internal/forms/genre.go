package forms

import (
	"github.com/mrlokans/locallibrary/internal/binder"
	"github.com/mrlokans/locallibrary/internal/entities"
)

type GenreForm struct {
	Name string `form:"name" mod:"trim,escape"`
}

func (f *GenreForm) Validate(b *binder.Binder) binder.Errors {
	return binder.Run(
		b.Rule("name", f.Name, "required", "Genre name required"),
		b.Rule("name", typed(f.Name), "max=100", "Genre name must not exceed 100 characters."),
	)
}

func (f *GenreForm) Entity(id string) *entities.Genre {
	return &entities.Genre{ID: id, Name: f.Name}
}

func GenreFormFrom(g *entities.Genre) GenreForm {
	return GenreForm{Name: g.Name}
}
