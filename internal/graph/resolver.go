// Package graph binds the GraphQL schema to the catalog services.
package graph

import (
	"context"
	"log/slog"

	"github.com/alexandriaapp/alexandria-server/internal/auth"
	"github.com/alexandriaapp/alexandria-server/internal/metrics"
	"github.com/alexandriaapp/alexandria-server/internal/pubsub"
	"github.com/alexandriaapp/alexandria-server/internal/service"
)

// Resolver is the root resolver. It holds the injected services every
// operation dispatches to.
type Resolver struct {
	catalog *service.CatalogService
	users   *service.UserService
	auth    *service.AuthService
	broker  *pubsub.Broker
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewResolver creates the root resolver.
func NewResolver(catalog *service.CatalogService, users *service.UserService, authSvc *service.AuthService, broker *pubsub.Broker, recorder metrics.Recorder, logger *slog.Logger) *Resolver {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		catalog: catalog,
		users:   users,
		auth:    authSvc,
		broker:  broker,
		metrics: recorder,
		logger:  logger,
	}
}

// BookCount resolves Query.bookCount.
func (r *Resolver) BookCount(ctx context.Context) int32 {
	return int32(r.catalog.BookCount(ctx))
}

// AuthorCount resolves Query.authorCount.
func (r *Resolver) AuthorCount(ctx context.Context) int32 {
	return int32(r.catalog.AuthorCount(ctx))
}

// AllBooks resolves Query.allBooks.
func (r *Resolver) AllBooks(ctx context.Context, args struct {
	Author *string
	Genre  *string
}) []*BookResolver {
	books := r.catalog.AllBooks(ctx, args.Author, args.Genre)
	resolvers := make([]*BookResolver, 0, len(books))
	for _, b := range books {
		resolvers = append(resolvers, &BookResolver{book: b, catalog: r.catalog})
	}
	return resolvers
}

// AllAuthors resolves Query.allAuthors.
func (r *Resolver) AllAuthors(ctx context.Context) []*AuthorResolver {
	authors := r.catalog.AllAuthors(ctx)
	resolvers := make([]*AuthorResolver, 0, len(authors))
	for _, a := range authors {
		resolvers = append(resolvers, &AuthorResolver{author: a})
	}
	return resolvers
}

// Me resolves Query.me: the identity attached to the request, or null.
func (r *Resolver) Me(ctx context.Context) *UserResolver {
	user := auth.UserFromContext(ctx)
	if user == nil {
		return nil
	}
	return &UserResolver{user: *user}
}

// AddBook resolves Mutation.addBook.
func (r *Resolver) AddBook(ctx context.Context, args struct {
	Title     string
	Author    string
	Published int32
	Genres    []string
}) (*BookResolver, error) {
	book, err := r.catalog.AddBook(ctx, service.AddBookInput{
		Title:     args.Title,
		Author:    args.Author,
		Published: args.Published,
		Genres:    args.Genres,
	})
	if err != nil {
		return nil, err
	}
	return &BookResolver{book: book, catalog: r.catalog}, nil
}

// EditAuthor resolves Mutation.editAuthor. An unknown name yields null,
// not an error.
func (r *Resolver) EditAuthor(ctx context.Context, args struct {
	Name      string
	SetBornTo int32
}) (*AuthorResolver, error) {
	author, err := r.catalog.EditAuthor(ctx, service.EditAuthorInput{
		Name:      args.Name,
		SetBornTo: args.SetBornTo,
	})
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, nil
	}
	return &AuthorResolver{author: *author}, nil
}

// CreateUser resolves Mutation.createUser.
func (r *Resolver) CreateUser(ctx context.Context, args struct {
	Username      string
	FavoriteGenre string
}) (*UserResolver, error) {
	user, err := r.users.CreateUser(ctx, service.CreateUserInput{
		Username:      args.Username,
		FavoriteGenre: args.FavoriteGenre,
	})
	if err != nil {
		return nil, err
	}
	return &UserResolver{user: user}, nil
}

// Login resolves Mutation.login.
func (r *Resolver) Login(ctx context.Context, args struct {
	Username string
	Password string
}) (*TokenResolver, error) {
	token, err := r.auth.Login(ctx, args.Username, args.Password)
	if err != nil {
		return nil, err
	}
	return &TokenResolver{token: token}, nil
}

// BookAdded resolves Subscription.bookAdded. Each subscription gets every
// published book independently, in publish order, until the client
// disconnects.
func (r *Resolver) BookAdded(ctx context.Context) <-chan *BookResolver {
	events := r.broker.Subscribe(ctx)
	out := make(chan *BookResolver)

	r.metrics.SubscriberConnected()
	go func() {
		defer close(out)
		defer r.metrics.SubscriberDisconnected()
		for book := range events {
			select {
			case out <- &BookResolver{book: book, catalog: r.catalog}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
