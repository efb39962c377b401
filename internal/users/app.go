package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mfallon/exertrack/internal/apperr"
	"github.com/mfallon/exertrack/internal/models"
	"github.com/rs/zerolog/log"
)

// UsersRepository defines what the app layer needs from the repository
type UsersRepository interface {
	CreateUser(ctx context.Context, username string) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// App handles users business logic
type App struct {
	repo UsersRepository
}

// NewApp creates a new users App
func NewApp(repo UsersRepository) *App {
	return &App{
		repo: repo,
	}
}

// CreateUser creates a new user with validation. Duplicate usernames
// are rejected by the store's unique constraint and reported as a
// conflict.
func (a *App) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if req.Username == "" {
		return nil, apperr.Validation("Path `username` is required.")
	}

	user, err := a.repo.CreateUser(ctx, req.Username)
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return nil, apperr.Conflict("Username %s already exists.", req.Username)
		}
		return nil, apperr.Internal(fmt.Errorf("failed to create user: %w", err))
	}

	log.Info().Str("user_id", user.ID.String()).Str("username", user.Username).Msg("created user")
	return user, nil
}

// GetUser retrieves a user by ID
func (a *App) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := a.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(fmt.Errorf("failed to get user: %w", err))
	}
	return user, nil
}

// ListUsers returns all users
func (a *App) ListUsers(ctx context.Context) ([]models.User, error) {
	result, err := a.repo.ListUsers(ctx)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to list users: %w", err))
	}
	return result, nil
}
