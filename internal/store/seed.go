package store

import (
	"github.com/alexandriaapp/alexandria-server/internal/domain"
)

func int32ptr(v int32) *int32 { return &v }

// seedAuthors is the demo dataset the server starts with when seeding is
// enabled. IDs are fixed so restarts produce an identical catalog.
var seedAuthors = []*domain.Author{
	{ID: "afa51ab0-344d-11e9-a414-719c6709cf3e", Name: "Robert Martin", Born: int32ptr(1952)},
	{ID: "afa5b6f0-344d-11e9-a414-719c6709cf3e", Name: "Martin Fowler", Born: int32ptr(1963)},
	{ID: "afa5b6f1-344d-11e9-a414-719c6709cf3e", Name: "Fyodor Dostoevsky", Born: int32ptr(1821)},
	// birth year not known
	{ID: "afa5b6f2-344d-11e9-a414-719c6709cf3e", Name: "Joshua Kerievsky"},
	{ID: "afa5b6f3-344d-11e9-a414-719c6709cf3e", Name: "Sandi Metz"},
}

var seedBooks = []*domain.Book{
	{
		ID:        "afa5b6f4-344d-11e9-a414-719c6709cf3e",
		Title:     "Clean Code",
		Published: 2008,
		Author:    "Robert Martin",
		Genres:    []string{"refactoring"},
	},
	{
		ID:        "afa5b6f5-344d-11e9-a414-719c6709cf3e",
		Title:     "Agile software development",
		Published: 2002,
		Author:    "Robert Martin",
		Genres:    []string{"agile", "patterns", "design"},
	},
	{
		ID:        "afa5de00-344d-11e9-a414-719c6709cf3e",
		Title:     "Refactoring, edition 2",
		Published: 2018,
		Author:    "Martin Fowler",
		Genres:    []string{"refactoring"},
	},
	{
		ID:        "afa5de01-344d-11e9-a414-719c6709cf3e",
		Title:     "Refactoring to patterns",
		Published: 2008,
		Author:    "Joshua Kerievsky",
		Genres:    []string{"refactoring", "patterns"},
	},
	{
		ID:        "afa5de02-344d-11e9-a414-719c6709cf3e",
		Title:     "Practical Object-Oriented Design, An Agile Primer Using Ruby",
		Published: 2012,
		Author:    "Sandi Metz",
		Genres:    []string{"refactoring", "design"},
	},
	{
		ID:        "afa5de03-344d-11e9-a414-719c6709cf3e",
		Title:     "Crime and punishment",
		Published: 1866,
		Author:    "Fyodor Dostoevsky",
		Genres:    []string{"classic", "crime"},
	},
	{
		ID:        "afa5de04-344d-11e9-a414-719c6709cf3e",
		Title:     "Demons",
		Published: 1872,
		Author:    "Fyodor Dostoevsky",
		Genres:    []string{"classic", "revolution"},
	},
}

// Seed populates the store with the demo catalog. It is a no-op when the
// store already holds any books or authors, so it is safe to call once at
// every startup.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.books) > 0 || len(s.authors) > 0 {
		return
	}

	for _, a := range seedAuthors {
		author := *a
		s.authors = append(s.authors, &author)
		s.authorsByName[author.Name] = &author
	}
	for _, b := range seedBooks {
		book := *b
		s.books = append(s.books, &book)
	}

	s.logger.Info("seeded demo catalog",
		"authors", len(s.authors),
		"books", len(s.books))
}
