// Package store holds the authoritative in-memory catalog collections.
//
// The store owns the Users, Authors, and Books collections for the lifetime
// of the process. There is no persistence. All reads return copies or
// freshly derived views, never internal state, and every check-then-act
// sequence (find-or-create author, username uniqueness) runs under a single
// store-wide lock so the uniqueness invariants hold under concurrent access.
package store

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/alexandriaapp/alexandria-server/internal/domain"
	"github.com/alexandriaapp/alexandria-server/internal/errors"
	"github.com/alexandriaapp/alexandria-server/internal/id"
)

// Store is the in-memory catalog. The zero value is not usable; call New.
type Store struct {
	mu sync.RWMutex

	// Insertion-order collections. Query results preserve this order.
	authors []*domain.Author
	books   []*domain.Book
	users   []*domain.User

	// Indexes. Author names and usernames are unique.
	authorsByName map[string]*domain.Author
	usersByName   map[string]*domain.User
	usersByID     map[string]*domain.User

	logger *slog.Logger
}

// New creates an empty store.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		authorsByName: make(map[string]*domain.Author),
		usersByName:   make(map[string]*domain.User),
		usersByID:     make(map[string]*domain.User),
		logger:        logger,
	}
}

// BookCount returns the total number of books.
func (s *Store) BookCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

// AuthorCount returns the total number of authors.
func (s *Store) AuthorCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.authors)
}

// UserCount returns the total number of users.
func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Books returns books in insertion order, filtered by exact author name and
// genre membership. Both filters are conjunctive; an empty string disables
// that filter.
func (s *Store) Books(author, genre string) []domain.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]domain.Book, 0, len(s.books))
	for _, b := range s.books {
		if author != "" && b.Author != author {
			continue
		}
		if genre != "" && !slices.Contains(b.Genres, genre) {
			continue
		}
		books = append(books, *b)
	}
	return books
}

// Authors returns all authors in insertion order, each enriched with its
// book count. Counts are built in a single pass over the books collection
// to avoid one scan per author.
func (s *Store) Authors() []domain.Author {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int32, len(s.authors))
	for _, b := range s.books {
		counts[b.Author]++
	}

	authors := make([]domain.Author, 0, len(s.authors))
	for _, a := range s.authors {
		author := *a
		author.BookCount = counts[a.Name]
		authors = append(authors, author)
	}
	return authors
}

// AuthorByName returns the author with the given name, with a fresh book
// count, or false if no author matches.
func (s *Store) AuthorByName(name string) (domain.Author, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.authorsByName[name]
	if !ok {
		return domain.Author{}, false
	}
	author := *a
	author.BookCount = s.countBooksLocked(name)
	return author, true
}

// AddBook appends a new book, creating the author on demand. The author
// lookup and both appends happen under one lock so two concurrent calls for
// the same new author name produce exactly one author.
// Returns the created book, its author (fresh book count included), and
// whether the author was newly created.
func (s *Store) AddBook(title string, published int32, authorName string, genres []string) (domain.Book, domain.Author, bool, error) {
	// Generate ids before taking the lock; the author id is discarded if
	// the author already exists.
	bookID, err := id.Generate("book")
	if err != nil {
		return domain.Book{}, domain.Author{}, false, errors.Wrap(err, errors.CodeInternal, "generate book id")
	}
	authorID, err := id.Generate("author")
	if err != nil {
		return domain.Book{}, domain.Author{}, false, errors.Wrap(err, errors.CodeInternal, "generate author id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	author, created := s.authorsByName[authorName], false
	if author == nil {
		author = &domain.Author{ID: authorID, Name: authorName}
		s.authors = append(s.authors, author)
		s.authorsByName[authorName] = author
		created = true
	}

	book := &domain.Book{
		ID:        bookID,
		Title:     title,
		Published: published,
		Author:    author.Name,
		Genres:    slices.Clone(genres),
	}
	s.books = append(s.books, book)

	authorCopy := *author
	authorCopy.BookCount = s.countBooksLocked(author.Name)
	return *book, authorCopy, created, nil
}

// SetAuthorBorn overwrites the birth year of the named author and returns
// the author with a fresh book count. Returns false if no author matches;
// an unknown name never creates an author.
func (s *Store) SetAuthorBorn(name string, born int32) (domain.Author, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.authorsByName[name]
	if !ok {
		return domain.Author{}, false
	}

	// Replace rather than mutate through the pointer so copies handed out
	// by earlier reads stay race-free.
	year := born
	a.Born = &year

	author := *a
	author.BookCount = s.countBooksLocked(name)
	return author, true
}

// CreateUser registers a new user. The uniqueness check and the insert run
// under one lock. Username comparison is case-sensitive.
func (s *Store) CreateUser(username, favoriteGenre string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usersByName[username]; taken {
		return domain.User{}, errors.Validation("username already exists")
	}

	user := &domain.User{
		ID:            uuid.NewString(),
		Username:      username,
		FavoriteGenre: favoriteGenre,
	}
	s.users = append(s.users, user)
	s.usersByName[user.Username] = user
	s.usersByID[user.ID] = user

	return *user, nil
}

// UserByUsername returns the user with the given username.
func (s *Store) UserByUsername(username string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.usersByName[username]
	if !ok {
		return domain.User{}, false
	}
	return *u, true
}

// UserByID returns the user with the given id.
func (s *Store) UserByID(userID string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.usersByID[userID]
	if !ok {
		return domain.User{}, false
	}
	return *u, true
}

// countBooksLocked recounts books for one author name. Callers must hold mu.
func (s *Store) countBooksLocked(name string) int32 {
	var n int32
	for _, b := range s.books {
		if b.Author == name {
			n++
		}
	}
	return n
}
