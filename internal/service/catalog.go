// Package service contains the business services orchestrating the store,
// the event broker, and authentication.
package service

import (
	"context"
	"log/slog"

	"github.com/alexandriaapp/alexandria-server/internal/auth"
	"github.com/alexandriaapp/alexandria-server/internal/domain"
	"github.com/alexandriaapp/alexandria-server/internal/errors"
	"github.com/alexandriaapp/alexandria-server/internal/metrics"
	"github.com/alexandriaapp/alexandria-server/internal/pubsub"
	"github.com/alexandriaapp/alexandria-server/internal/store"
	"github.com/alexandriaapp/alexandria-server/internal/validation"
)

// CatalogService orchestrates book and author operations.
type CatalogService struct {
	store     *store.Store
	broker    *pubsub.Broker
	metrics   metrics.Recorder
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *store.Store, broker *pubsub.Broker, recorder metrics.Recorder, logger *slog.Logger) *CatalogService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		store:     store,
		broker:    broker,
		metrics:   recorder,
		validator: validation.New(),
		logger:    logger,
	}
}

// BookCount returns the total number of books.
func (s *CatalogService) BookCount(ctx context.Context) int {
	return s.store.BookCount()
}

// AuthorCount returns the total number of authors.
func (s *CatalogService) AuthorCount(ctx context.Context) int {
	return s.store.AuthorCount()
}

// AllBooks returns books filtered by exact author name and genre membership.
// Nil filters pass everything through. Results keep insertion order.
func (s *CatalogService) AllBooks(ctx context.Context, author, genre *string) []domain.Book {
	var authorFilter, genreFilter string
	if author != nil {
		authorFilter = *author
	}
	if genre != nil {
		genreFilter = *genre
	}
	return s.store.Books(authorFilter, genreFilter)
}

// AllAuthors returns all authors with fresh book counts, in insertion order.
func (s *CatalogService) AllAuthors(ctx context.Context) []domain.Author {
	return s.store.Authors()
}

// AuthorByName returns the named author, or false if absent.
func (s *CatalogService) AuthorByName(ctx context.Context, name string) (domain.Author, bool) {
	return s.store.AuthorByName(name)
}

// AddBookInput contains fields for adding a book.
type AddBookInput struct {
	Title     string   `json:"title" validate:"required,min=2"`
	Author    string   `json:"author" validate:"required,min=2"`
	Published int32    `json:"published"`
	Genres    []string `json:"genres"`
}

// AddBook adds a new book to the catalog, creating its author on demand,
// and publishes the book on the event broker. The caller must be
// authenticated. Calling twice with identical input creates two distinct
// books but never a second author.
func (s *CatalogService) AddBook(ctx context.Context, input AddBookInput) (domain.Book, error) {
	user := auth.UserFromContext(ctx)
	if user == nil {
		return domain.Book{}, errors.Unauthenticated("not authenticated")
	}

	if err := s.validator.Validate(input); err != nil {
		return domain.Book{}, err
	}

	book, author, created, err := s.store.AddBook(input.Title, input.Published, input.Author, input.Genres)
	if err != nil {
		return domain.Book{}, err
	}

	s.broker.Publish(book)
	s.metrics.RecordBookAdded()

	s.logger.Info("book added",
		"book_id", book.ID,
		"title", book.Title,
		"author", author.Name,
		"author_created", created,
		"by", user.Username)

	return book, nil
}

// EditAuthorInput contains fields for editing an author's birth year.
type EditAuthorInput struct {
	Name      string `json:"name" validate:"required,min=2"`
	SetBornTo int32  `json:"setBornTo"`
}

// EditAuthor overwrites the birth year of the named author. The caller must
// be authenticated. Returns nil (not an error) when no author matches, so
// callers can distinguish "no match" from failure. The year is stored as
// given; chronologically absurd values are accepted.
func (s *CatalogService) EditAuthor(ctx context.Context, input EditAuthorInput) (*domain.Author, error) {
	user := auth.UserFromContext(ctx)
	if user == nil {
		return nil, errors.Unauthenticated("not authenticated")
	}

	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	author, ok := s.store.SetAuthorBorn(input.Name, input.SetBornTo)
	if !ok {
		return nil, nil
	}

	s.logger.Info("author edited",
		"author_id", author.ID,
		"name", author.Name,
		"born", input.SetBornTo,
		"by", user.Username)

	return &author, nil
}
