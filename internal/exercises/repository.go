package exercises

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mfallon/exertrack/internal/models"
)

// Repository implements exercise data access over the pgx pool.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new exercises repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{
		pool: pool,
	}
}

// CreateExercise inserts the exercise and returns the stored row.
func (r *Repository) CreateExercise(ctx context.Context, ex models.Exercise) (*models.Exercise, error) {
	var stored models.Exercise
	err := r.pool.QueryRow(ctx, `
		INSERT INTO exercises (id, user_id, username, description, duration, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, username, description, duration, date, created_at
	`, ex.ID, ex.UserID, ex.Username, ex.Description, ex.Duration, ex.Date).Scan(
		&stored.ID, &stored.UserID, &stored.Username, &stored.Description,
		&stored.Duration, &stored.Date, &stored.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create exercise: %w", err)
	}
	return &stored, nil
}

// ListExercises returns every exercise unfiltered.
func (r *Repository) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, username, description, duration, date, created_at
		FROM exercises ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer rows.Close()
	return scanExercises(rows)
}

// FindLogs returns the exercises matching filter in insertion order.
func (r *Repository) FindLogs(ctx context.Context, filter LogFilter) ([]models.Exercise, error) {
	query, args := buildLogQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()
	return scanExercises(rows)
}

// buildLogQuery composes the log SQL: username equality, then the
// half-open date range (from inclusive, to exclusive), then the limit.
func buildLogQuery(filter LogFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, user_id, username, description, duration, date, created_at
		FROM exercises WHERE username = $1`)
	args := []any{filter.Username}

	if filter.From != nil {
		args = append(args, *filter.From)
		fmt.Fprintf(&sb, " AND date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		fmt.Fprintf(&sb, " AND date < $%d", len(args))
	}
	sb.WriteString(" ORDER BY created_at")
	if filter.Limit != nil {
		args = append(args, *filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	return sb.String(), args
}

func scanExercises(rows pgx.Rows) ([]models.Exercise, error) {
	var result []models.Exercise
	for rows.Next() {
		var ex models.Exercise
		if err := rows.Scan(&ex.ID, &ex.UserID, &ex.Username, &ex.Description,
			&ex.Duration, &ex.Date, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		result = append(result, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read exercises: %w", err)
	}
	return result, nil
}
