package cli

import (
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/forms"
)

var sampleAuthors = []forms.AuthorForm{
	{FirstName: "Patrick", FamilyName: "Rothfuss", DateOfBirth: "1973-06-06"},
	{FirstName: "Ben", FamilyName: "Bova", DateOfBirth: "1932-11-08"},
	{FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: "1920-01-02", DateOfDeath: "1992-04-06"},
	{FirstName: "Bob", FamilyName: "Billings"},
	{FirstName: "Jim", FamilyName: "Jones", DateOfBirth: "1971-12-16"},
}

var sampleGenres = []forms.GenreForm{
	{Name: "Fantasy"},
	{Name: "Science Fiction"},
	{Name: "French Poetry"},
}

// Indexes point into sampleAuthors and sampleGenres.
var sampleBooks = []struct {
	title   string
	summary string
	isbn    string
	author  int
	genres  []int
}{
	{
		title:   "The Name of the Wind (The Kingkiller Chronicle, #1)",
		summary: "I have stolen princesses back from sleeping barrow kings. I burned down the town of Trebon. I have spent the night with Felurian and left with both my sanity and my life. I was expelled from the University at a younger age than most people are allowed in. I tread paths by moonlight that others fear to speak of during day. I have talked to Gods, loved women, and written songs that make the minstrels weep.",
		isbn:    "9781473211896",
		author:  0,
		genres:  []int{0},
	},
	{
		title:   "The Wise Man's Fear (The Kingkiller Chronicle, #2)",
		summary: "Picking up the tale of Kvothe Kingkiller once again, we follow him into exile, into political intrigue, courtship, adventure, love and magic... and further along the path that has turned Kvothe, the mightiest magician of his age, a legend in his own time, into Kote, the unassuming pub landlord.",
		isbn:    "9788401352836",
		author:  0,
		genres:  []int{0},
	},
	{
		title:   "The Slow Regard of Silent Things (Kingkiller Chronicle)",
		summary: "Deep below the University, there is a dark place. Few people know of it: a broken web of ancient passageways and abandoned rooms. A young woman lives there, tucked among the sprawling tunnels of the Underthing, snug in the heart of this forgotten place.",
		isbn:    "9780756411336",
		author:  0,
		genres:  []int{0},
	},
	{
		title:   "Apes and Angels",
		summary: "Humankind headed out to the stars not for conquest, nor exploration, nor even for curiosity. Humans went to the stars in a desperate crusade to save intelligent life wherever they found it. A wave of death is spreading through the Milky Way galaxy, an expanding sphere of lethal gamma radiation.",
		isbn:    "9780765379528",
		author:  1,
		genres:  []int{1},
	},
	{
		title:   "Death Wave",
		summary: "In Ben Bova's previous novel New Earth, Jordan Kell led the first human mission beyond the solar system. They discovered the ruins of an ancient alien civilization. But one alien AI survived, and it revealed to Jordan Kell that an explosion in the black hole at the heart of the Milky Way galaxy has created a wave of deadly radiation, expanding out from the core toward Earth.",
		isbn:    "9780765379504",
		author:  1,
		genres:  []int{1},
	},
	{
		title:   "Test Book 1",
		summary: "Summary of test book 1",
		isbn:    "ISBN111111",
		author:  4,
		genres:  []int{0, 1},
	},
	{
		title:   "Test Book 2",
		summary: "Summary of test book 2",
		isbn:    "ISBN222222",
		author:  4,
	},
}

// Indexes point into sampleBooks.
var sampleCopies = []struct {
	book    int
	imprint string
	status  entities.BookInstanceStatus
	dueBack string
}{
	{book: 0, imprint: "London Gollancz, 2014.", status: entities.StatusAvailable},
	{book: 1, imprint: " Gollancz, 2011.", status: entities.StatusLoaned},
	{book: 2, imprint: " Gollancz, 2015."},
	{book: 3, imprint: "New York Tom Doherty Associates, 2016.", status: entities.StatusAvailable},
	{book: 3, imprint: "New York Tom Doherty Associates, 2016.", status: entities.StatusAvailable},
	{book: 3, imprint: "New York Tom Doherty Associates, 2016.", status: entities.StatusAvailable},
	{book: 4, imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", status: entities.StatusAvailable},
	{book: 4, imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", status: entities.StatusMaintenance},
	{book: 4, imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", status: entities.StatusLoaned},
	{book: 0, imprint: "Imprint XXX2", dueBack: "2026-11-30"},
	{book: 1, imprint: "Imprint XXX3", dueBack: "2026-12-15"},
}
