package exercises

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mfallon/exertrack/internal/apperr"
	"github.com/mfallon/exertrack/internal/events"
	"github.com/mfallon/exertrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExerciseRepo struct {
	created   []models.Exercise
	logs      []models.Exercise
	gotFilter LogFilter
	createErr error
	findErr   error
}

func (f *fakeExerciseRepo) CreateExercise(ctx context.Context, ex models.Exercise) (*models.Exercise, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	ex.CreatedAt = time.Now()
	f.created = append(f.created, ex)
	return &ex, nil
}

func (f *fakeExerciseRepo) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	return f.created, nil
}

func (f *fakeExerciseRepo) FindLogs(ctx context.Context, filter LogFilter) ([]models.Exercise, error) {
	f.gotFilter = filter
	if f.findErr != nil {
		return nil, f.findErr
	}
	result := f.logs
	if filter.Limit != nil && int(*filter.Limit) < len(result) {
		result = result[:*filter.Limit]
	}
	return result, nil
}

type fakeUserDirectory struct {
	user  *models.User
	calls int
}

func (f *fakeUserDirectory) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	f.calls++
	if f.user == nil || f.user.ID != id {
		return nil, apperr.NotFound("User not found")
	}
	return f.user, nil
}

type capturePublisher struct {
	published []events.Event
	err       error
}

func (c *capturePublisher) Publish(ctx context.Context, event events.Event) error {
	if c.err != nil {
		return c.err
	}
	c.published = append(c.published, event)
	return nil
}

type fixture struct {
	app       *App
	repo      *fakeExerciseRepo
	users     *fakeUserDirectory
	publisher *capturePublisher
	owner     *models.User
}

func newFixture(now time.Time) *fixture {
	owner := &models.User{ID: uuid.New(), Username: "alice"}
	repo := &fakeExerciseRepo{}
	users := &fakeUserDirectory{user: owner}
	publisher := &capturePublisher{}
	return &fixture{
		app:       NewApp(repo, users, publisher, clockwork.NewFakeClockAt(now)),
		repo:      repo,
		users:     users,
		publisher: publisher,
		owner:     owner,
	}
}

var testNow = time.Date(2023, 6, 15, 22, 30, 0, 0, time.UTC)

func TestCreateExerciseDefaultsDateToToday(t *testing.T) {
	f := newFixture(testNow)

	created, err := f.app.CreateExercise(context.Background(), f.owner.ID, CreateExerciseRequest{
		Description: "swim",
		Duration:    "45",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), created.Date)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, f.owner.ID, created.UserID)
	assert.Equal(t, int32(45), created.Duration)
}

func TestCreateExerciseExplicitDate(t *testing.T) {
	f := newFixture(testNow)

	created, err := f.app.CreateExercise(context.Background(), f.owner.ID, CreateExerciseRequest{
		Description: "run",
		Duration:    "20",
		Date:        "2023-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), created.Date)
}

func TestCreateExerciseValidation(t *testing.T) {
	cases := []struct {
		name string
		req  CreateExerciseRequest
	}{
		{"missing description", CreateExerciseRequest{Duration: "20"}},
		{"missing duration", CreateExerciseRequest{Description: "run"}},
		{"non-integer duration", CreateExerciseRequest{Description: "run", Duration: "soon"}},
		{"negative duration", CreateExerciseRequest{Description: "run", Duration: "-5"}},
		{"duration above int32 range", CreateExerciseRequest{Description: "run", Duration: "2147483648"}},
		{"duration wrapping to zero", CreateExerciseRequest{Description: "run", Duration: "4294967296"}},
		{"bad date", CreateExerciseRequest{Description: "run", Duration: "20", Date: "someday"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(testNow)

			_, err := f.app.CreateExercise(context.Background(), f.owner.ID, tc.req)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			// Validation rejects before any store or lookup work.
			assert.Empty(t, f.repo.created)
			assert.Zero(t, f.users.calls)
		})
	}
}

func TestCreateExerciseDurationNeverWraps(t *testing.T) {
	f := newFixture(testNow)

	// Values past int32 range must be rejected, not truncated into a
	// wrapped (or zero) stored duration.
	for _, duration := range []string{"2147483648", "4294967296"} {
		_, err := f.app.CreateExercise(context.Background(), f.owner.ID, CreateExerciseRequest{
			Description: "run",
			Duration:    duration,
		})
		require.Error(t, err, "duration %s", duration)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
	assert.Empty(t, f.repo.created)

	created, err := f.app.CreateExercise(context.Background(), f.owner.ID, CreateExerciseRequest{
		Description: "run",
		Duration:    "2147483647",
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2147483647), created.Duration)
}

func TestCreateExerciseUnknownUser(t *testing.T) {
	f := newFixture(testNow)

	_, err := f.app.CreateExercise(context.Background(), uuid.New(), CreateExerciseRequest{
		Description: "run",
		Duration:    "20",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Empty(t, f.repo.created)
}

func TestCreateExercisePublishesEvent(t *testing.T) {
	f := newFixture(testNow)

	created, err := f.app.CreateExercise(context.Background(), f.owner.ID, CreateExerciseRequest{
		Description: "row",
		Duration:    "30",
	})
	require.NoError(t, err)
	require.Len(t, f.publisher.published, 1)
	event := f.publisher.published[0]
	assert.Equal(t, events.EventTypeExerciseLogged, event.Type)
	assert.Equal(t, created.ID, event.ExerciseID)
	assert.Equal(t, f.owner.ID, event.UserID)
}

func TestCreateExerciseSurvivesPublishFailure(t *testing.T) {
	f := newFixture(testNow)
	f.publisher.err = errors.New("broker down")

	_, err := f.app.CreateExercise(context.Background(), f.owner.ID, CreateExerciseRequest{
		Description: "row",
		Duration:    "30",
	})
	require.NoError(t, err)
	assert.Len(t, f.repo.created, 1)
}

func TestGetLogsBuildsHalfOpenFilter(t *testing.T) {
	f := newFixture(testNow)

	_, err := f.app.GetLogs(context.Background(), f.owner.ID, LogQuery{
		From:  "2023-01-01",
		To:    "2023-02-01",
		Limit: "2",
	})
	require.NoError(t, err)

	filter := f.repo.gotFilter
	assert.Equal(t, "alice", filter.Username)
	require.NotNil(t, filter.From)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), *filter.From)
	require.NotNil(t, filter.To)
	assert.Equal(t, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), *filter.To)
	require.NotNil(t, filter.Limit)
	assert.Equal(t, int32(2), *filter.Limit)
}

func TestGetLogsNoRangeLeavesFilterOpen(t *testing.T) {
	f := newFixture(testNow)

	_, err := f.app.GetLogs(context.Background(), f.owner.ID, LogQuery{})
	require.NoError(t, err)
	assert.Nil(t, f.repo.gotFilter.From)
	assert.Nil(t, f.repo.gotFilter.To)
	assert.Nil(t, f.repo.gotFilter.Limit)
}

func TestGetLogsLimitCapsEntries(t *testing.T) {
	f := newFixture(testNow)
	for i := 0; i < 5; i++ {
		f.repo.logs = append(f.repo.logs, models.Exercise{
			ID:          uuid.New(),
			UserID:      f.owner.ID,
			Username:    "alice",
			Description: "run",
			Duration:    10,
			Date:        testNow,
		})
	}

	logs, err := f.app.GetLogs(context.Background(), f.owner.ID, LogQuery{Limit: "2"})
	require.NoError(t, err)
	assert.Len(t, logs.Entries, 2)
}

func TestGetLogsZeroLimitMeansUnlimited(t *testing.T) {
	f := newFixture(testNow)
	for i := 0; i < 3; i++ {
		f.repo.logs = append(f.repo.logs, models.Exercise{
			ID:       uuid.New(),
			UserID:   f.owner.ID,
			Username: "alice",
			Duration: 10,
			Date:     testNow,
		})
	}

	logs, err := f.app.GetLogs(context.Background(), f.owner.ID, LogQuery{Limit: "0"})
	require.NoError(t, err)
	assert.Nil(t, f.repo.gotFilter.Limit)
	assert.Len(t, logs.Entries, 3)
}

func TestGetLogsRejectsBadParams(t *testing.T) {
	cases := []struct {
		name  string
		query LogQuery
	}{
		{"bad from", LogQuery{From: "lately"}},
		{"bad to", LogQuery{To: "soon"}},
		{"bad limit", LogQuery{Limit: "few"}},
		{"negative limit", LogQuery{Limit: "-1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(testNow)

			_, err := f.app.GetLogs(context.Background(), f.owner.ID, tc.query)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Zero(t, f.users.calls)
		})
	}
}

func TestGetLogsUnknownUser(t *testing.T) {
	f := newFixture(testNow)

	_, err := f.app.GetLogs(context.Background(), uuid.New(), LogQuery{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
