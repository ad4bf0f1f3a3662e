package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by every store when the requested document does not exist.
var ErrNotFound = errors.New("record not found")

// DisplayDateLayout matches the medium date format used on every page.
const DisplayDateLayout = "Jan 2, 2006"

// InputDateLayout is the value format of <input type="date">.
const InputDateLayout = "2006-01-02"

type BookInstanceStatus string

const (
	StatusAvailable   BookInstanceStatus = "Available"
	StatusMaintenance BookInstanceStatus = "Maintenance"
	StatusLoaned      BookInstanceStatus = "Loaned"
	StatusReserved    BookInstanceStatus = "Reserved"
)

// BookInstanceStatuses lists the allowed statuses in display order.
var BookInstanceStatuses = []BookInstanceStatus{
	StatusMaintenance,
	StatusAvailable,
	StatusLoaned,
	StatusReserved,
}

// NewID generates the identifier shared by the SQL primary key and the Mongo _id.
func NewID() string {
	return uuid.NewString()
}

type Author struct {
	ID          string     `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	FirstName   string     `gorm:"size:100;not null" bson:"first_name" json:"first_name"`
	FamilyName  string     `gorm:"size:100;not null;index" bson:"family_name" json:"family_name"`
	DateOfBirth *time.Time `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `bson:"date_of_death,omitempty" json:"date_of_death,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// Name is "family_name, first_name"; empty when either part is missing.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan renders "<birth> - <death>" leaving unknown sides blank.
func (a Author) Lifespan() string {
	return formatDate(a.DateOfBirth) + " - " + formatDate(a.DateOfDeath)
}

func (a Author) URL() string {
	return "/catalog/author/" + a.ID
}

type Genre struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Name      string    `gorm:"size:100;not null;index" bson:"name" json:"name"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (g Genre) URL() string {
	return "/catalog/genre/" + g.ID
}

type Book struct {
	ID       string  `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Title    string  `gorm:"size:512;not null;index" bson:"title" json:"title"`
	AuthorID string  `gorm:"size:36;not null;index" bson:"author" json:"author_id"`
	Author   *Author `gorm:"foreignKey:AuthorID" bson:"-" json:"author,omitempty"`
	Summary  string  `gorm:"type:text;not null" bson:"summary" json:"summary"`
	ISBN     string  `gorm:"size:32;not null" bson:"isbn" json:"isbn"`

	// GenreIDs is the stored reference set; Genres is its resolved form.
	GenreIDs []string `gorm:"-" bson:"genre" json:"genre_ids"`
	Genres   []Genre  `gorm:"many2many:book_genres" bson:"-" json:"genres,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (b Book) URL() string {
	return "/catalog/book/" + b.ID
}

// HasGenre reports whether the book references the given genre id.
func (b Book) HasGenre(id string) bool {
	for _, gid := range b.GenreIDs {
		if gid == id {
			return true
		}
	}
	return false
}

type BookInstance struct {
	ID        string             `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	BookID    string             `gorm:"size:36;not null;index" bson:"book" json:"book_id"`
	Book      *Book              `gorm:"foreignKey:BookID" bson:"-" json:"book,omitempty"`
	Imprint   string             `gorm:"size:255;not null" bson:"imprint" json:"imprint"`
	Status    BookInstanceStatus `gorm:"size:20;not null;default:Maintenance;index" bson:"status" json:"status"`
	DueBack   *time.Time         `bson:"due_back,omitempty" json:"due_back,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

func (bi BookInstance) URL() string {
	return "/catalog/bookinstance/" + bi.ID
}

func (bi BookInstance) DueBackFormatted() string {
	return formatDate(bi.DueBack)
}

// BookTitle returns the resolved book's title, or "" when the reference was not populated.
func (bi BookInstance) BookTitle() string {
	if bi.Book == nil {
		return ""
	}
	return bi.Book.Title
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DisplayDateLayout)
}
