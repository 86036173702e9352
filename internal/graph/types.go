package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/alexandriaapp/alexandria-server/internal/domain"
	"github.com/alexandriaapp/alexandria-server/internal/service"
)

// BookResolver resolves the Book type.
type BookResolver struct {
	book    domain.Book
	catalog *service.CatalogService
}

// ID resolves Book.id.
func (r *BookResolver) ID() graphql.ID {
	return graphql.ID(r.book.ID)
}

// Title resolves Book.title.
func (r *BookResolver) Title() string {
	return r.book.Title
}

// Published resolves Book.published.
func (r *BookResolver) Published() int32 {
	return r.book.Published
}

// Genres resolves Book.genres.
func (r *BookResolver) Genres() []string {
	return r.book.Genres
}

// Author resolves Book.author by exact name lookup. A miss yields null;
// it never errors.
func (r *BookResolver) Author(ctx context.Context) *AuthorResolver {
	author, ok := r.catalog.AuthorByName(ctx, r.book.Author)
	if !ok {
		return nil
	}
	return &AuthorResolver{author: author}
}

// AuthorResolver resolves the Author type.
type AuthorResolver struct {
	author domain.Author
}

// ID resolves Author.id.
func (r *AuthorResolver) ID() graphql.ID {
	return graphql.ID(r.author.ID)
}

// Name resolves Author.name.
func (r *AuthorResolver) Name() string {
	return r.author.Name
}

// Born resolves Author.born.
func (r *AuthorResolver) Born() *int32 {
	return r.author.Born
}

// BookCount resolves Author.bookCount. The count was recomputed by the
// store when this author was read, so it never drifts within a query.
func (r *AuthorResolver) BookCount() int32 {
	return r.author.BookCount
}

// UserResolver resolves the User type.
type UserResolver struct {
	user domain.User
}

// ID resolves User.id.
func (r *UserResolver) ID() graphql.ID {
	return graphql.ID(r.user.ID)
}

// Username resolves User.username.
func (r *UserResolver) Username() string {
	return r.user.Username
}

// FavoriteGenre resolves User.favoriteGenre.
func (r *UserResolver) FavoriteGenre() string {
	return r.user.FavoriteGenre
}

// TokenResolver resolves the Token type.
type TokenResolver struct {
	token domain.Token
}

// Value resolves Token.value.
func (r *TokenResolver) Value() string {
	return r.token.Value
}
