package forms

import (
	"github.com/mrlokans/locallibrary/internal/binder"
	"github.com/mrlokans/locallibrary/internal/entities"
)

type AuthorForm struct {
	FirstName   string `form:"first_name" mod:"trim,escape"`
	FamilyName  string `form:"family_name" mod:"trim,escape"`
	DateOfBirth string `form:"date_of_birth" mod:"trim"`
	DateOfDeath string `form:"date_of_death" mod:"trim"`
}

func (f *AuthorForm) Validate(b *binder.Binder) binder.Errors {
	return binder.Run(
		b.Rule("first_name", f.FirstName, "required", "First name must be specified."),
		b.Rule("first_name", typed(f.FirstName), "max=100", "First name must not exceed 100 characters."),
		b.Rule("first_name", f.FirstName, "alphanum", "First name has non-alphanumeric characters."),
		b.Rule("family_name", f.FamilyName, "required", "Family name must be specified."),
		b.Rule("family_name", typed(f.FamilyName), "max=100", "Family name must not exceed 100 characters."),
		b.Rule("family_name", f.FamilyName, "alphanum", "Family name has non-alphanumeric characters."),
		b.Rule("date_of_birth", f.DateOfBirth, "iso8601", "Invalid date of birth"),
		b.Rule("date_of_death", f.DateOfDeath, "iso8601", "Invalid date of death"),
	)
}

// Entity builds the author to persist. id is empty on create.
func (f *AuthorForm) Entity(id string) *entities.Author {
	return &entities.Author{
		ID:          id,
		FirstName:   f.FirstName,
		FamilyName:  f.FamilyName,
		DateOfBirth: parseDate(f.DateOfBirth),
		DateOfDeath: parseDate(f.DateOfDeath),
	}
}

func AuthorFormFrom(a *entities.Author) AuthorForm {
	return AuthorForm{
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		DateOfBirth: inputDate(a.DateOfBirth),
		DateOfDeath: inputDate(a.DateOfDeath),
	}
}
