package service

import (
	"context"
	"log/slog"

	"github.com/alexandriaapp/alexandria-server/internal/domain"
	"github.com/alexandriaapp/alexandria-server/internal/metrics"
	"github.com/alexandriaapp/alexandria-server/internal/store"
	"github.com/alexandriaapp/alexandria-server/internal/validation"
)

// UserService orchestrates user registration and lookups.
type UserService struct {
	store     *store.Store
	metrics   metrics.Recorder
	validator *validation.Validator
	logger    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store *store.Store, recorder metrics.Recorder, logger *slog.Logger) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		store:     store,
		metrics:   recorder,
		validator: validation.New(),
		logger:    logger,
	}
}

// CreateUserInput contains fields for registering a user.
type CreateUserInput struct {
	Username string `json:"username" validate:"required"`
	// FavoriteGenre is stored verbatim; it is not checked against any
	// enum of known genres.
	FavoriteGenre string `json:"favoriteGenre"`
}

// CreateUser registers a new user. No authentication required.
// Fails with a validation error when the username is already taken
// (case-sensitive exact match).
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (domain.User, error) {
	if err := s.validator.Validate(input); err != nil {
		return domain.User{}, err
	}

	user, err := s.store.CreateUser(input.Username, input.FavoriteGenre)
	if err != nil {
		return domain.User{}, err
	}

	s.metrics.RecordUserCreated()
	s.logger.Info("user created", "user_id", user.ID, "username", user.Username)

	return user, nil
}

// UserByUsername returns the user with the given username.
func (s *UserService) UserByUsername(ctx context.Context, username string) (domain.User, bool) {
	return s.store.UserByUsername(username)
}
