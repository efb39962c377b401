package exercises

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mfallon/exertrack/internal/apperr"
	"github.com/mfallon/exertrack/internal/dates"
	"github.com/mfallon/exertrack/internal/events"
	"github.com/mfallon/exertrack/internal/models"
	"github.com/rs/zerolog/log"
)

// ExercisesRepository defines what the app layer needs from the repository
type ExercisesRepository interface {
	CreateExercise(ctx context.Context, ex models.Exercise) (*models.Exercise, error)
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	FindLogs(ctx context.Context, filter LogFilter) ([]models.Exercise, error)
}

// UserDirectory resolves user ids; the users App satisfies it.
type UserDirectory interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// App handles exercise business logic. The clock is injected so date
// defaulting is deterministic under test.
type App struct {
	repo      ExercisesRepository
	users     UserDirectory
	publisher events.Publisher
	clock     clockwork.Clock
}

// NewApp creates a new exercises App
func NewApp(repo ExercisesRepository, users UserDirectory, publisher events.Publisher, clock clockwork.Clock) *App {
	return &App{
		repo:      repo,
		users:     users,
		publisher: publisher,
		clock:     clock,
	}
}

// Logs pairs a resolved user with their matching exercises.
type Logs struct {
	User    *models.User
	Entries []models.Exercise
}

// CreateExercise validates the request, resolves the owner and persists
// the exercise. Validation runs before any store access so a bad
// request never writes.
func (a *App) CreateExercise(ctx context.Context, userID uuid.UUID, req CreateExerciseRequest) (*models.Exercise, error) {
	if req.Description == "" {
		return nil, apperr.Validation("Path `description` is required.")
	}
	if req.Duration == "" {
		return nil, apperr.Validation("Path `duration` is required.")
	}
	duration, err := strconv.ParseInt(req.Duration, 10, 32)
	if err != nil {
		return nil, apperr.Validation("Duration %q is not an integer.", req.Duration)
	}
	if duration < 0 {
		return nil, apperr.Validation("Duration must not be negative.")
	}

	date := dates.Day(a.clock.Now())
	if req.Date != "" {
		date, err = dates.Parse(req.Date)
		if err != nil {
			return nil, apperr.Validation("Date %q is not a valid date.", req.Date)
		}
	}

	user, err := a.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ex := models.Exercise{
		ID:          uuid.New(),
		UserID:      user.ID,
		Username:    user.Username,
		Description: req.Description,
		Duration:    int32(duration),
		Date:        date,
	}
	created, err := a.repo.CreateExercise(ctx, ex)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to create exercise: %w", err))
	}

	a.publish(ctx, created)

	log.Info().
		Str("exercise_id", created.ID.String()).
		Str("user_id", user.ID.String()).
		Int32("duration", created.Duration).
		Msg("created exercise")
	return created, nil
}

// GetLogs resolves the user, builds the date/limit filter and fetches
// the matching exercises.
func (a *App) GetLogs(ctx context.Context, userID uuid.UUID, query LogQuery) (*Logs, error) {
	filter := LogFilter{}
	if query.From != "" {
		from, err := dates.Parse(query.From)
		if err != nil {
			return nil, apperr.Validation("From %q is not a valid date.", query.From)
		}
		filter.From = &from
	}
	if query.To != "" {
		to, err := dates.Parse(query.To)
		if err != nil {
			return nil, apperr.Validation("To %q is not a valid date.", query.To)
		}
		filter.To = &to
	}
	if query.Limit != "" {
		limit, err := strconv.ParseInt(query.Limit, 10, 32)
		if err != nil || limit < 0 {
			return nil, apperr.Validation("Limit %q is not a valid count.", query.Limit)
		}
		// A limit of 0 means unlimited, not zero rows.
		if limit > 0 {
			n := int32(limit)
			filter.Limit = &n
		}
	}

	user, err := a.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	filter.Username = user.Username

	entries, err := a.repo.FindLogs(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to get logs: %w", err))
	}
	return &Logs{User: user, Entries: entries}, nil
}

// ListExercises returns every stored exercise.
func (a *App) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	result, err := a.repo.ListExercises(ctx)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to list exercises: %w", err))
	}
	return result, nil
}

// publish emits the activity event. Failures are logged only; the write
// has already committed.
func (a *App) publish(ctx context.Context, ex *models.Exercise) {
	event := events.Event{
		ID:         uuid.New(),
		Type:       events.EventTypeExerciseLogged,
		UserID:     ex.UserID,
		ExerciseID: ex.ID,
		Duration:   ex.Duration,
		Date:       ex.Date,
		CreatedAt:  a.clock.Now(),
	}
	if err := a.publisher.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("exercise_id", ex.ID.String()).Msg("failed to publish activity event")
	}
}
