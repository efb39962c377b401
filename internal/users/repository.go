package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mfallon/exertrack/internal/models"
)

const uniqueViolation = "23505"

// Repository implements user data access over the pgx pool.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new users repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{
		pool: pool,
	}
}

// CreateUser inserts a new user. The unique index on username makes the
// insert itself the uniqueness check; a violation surfaces as
// ErrDuplicateUsername.
func (r *Repository) CreateUser(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, username)
		VALUES ($1, $2)
		RETURNING id, username, created_at
	`, uuid.New(), username).Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetUser retrieves a user by ID.
func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, created_at FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ListUsers returns every user ordered by creation time.
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, username, created_at FROM users ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return result, nil
}
