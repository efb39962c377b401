package exercises

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/mfallon/exertrack/internal/apperr"
	"github.com/mfallon/exertrack/internal/dates"
	"github.com/mfallon/exertrack/internal/httpx"
	"github.com/mfallon/exertrack/internal/models"
)

// ExercisesApp defines what the handler needs from the exercises application
type ExercisesApp interface {
	CreateExercise(ctx context.Context, userID uuid.UUID, req CreateExerciseRequest) (*models.Exercise, error)
	GetLogs(ctx context.Context, userID uuid.UUID, query LogQuery) (*Logs, error)
	ListExercises(ctx context.Context) ([]models.Exercise, error)
}

// Handler serves the exercise and log HTTP endpoints
type Handler struct {
	app ExercisesApp
}

// NewHandler creates a new exercises handler
func NewHandler(app ExercisesApp) *Handler {
	return &Handler{
		app: app,
	}
}

// HandleCreateExercise handles POST /api/users/{id}/exercises
func (h *Handler) HandleCreateExercise(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.Error(w, apperr.Validation("Invalid user id."))
		return
	}

	params, err := httpx.ParseParams(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	ex, err := h.app.CreateExercise(r.Context(), userID, CreateExerciseRequest{
		Description: params.Get("description"),
		Duration:    params.Get("duration"),
		Date:        params.Get("date"),
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	// The _id here is the owner's id, not the exercise row id.
	httpx.JSON(w, http.StatusOK, ExerciseResponse{
		ID:          ex.UserID.String(),
		Username:    ex.Username,
		Date:        dates.Format(ex.Date),
		Duration:    ex.Duration,
		Description: ex.Description,
	})
}

// HandleGetLogs handles GET /api/users/{id}/logs?from&to&limit
func (h *Handler) HandleGetLogs(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.Error(w, apperr.Validation("Invalid user id."))
		return
	}

	q := r.URL.Query()
	logs, err := h.app.GetLogs(r.Context(), userID, LogQuery{
		From:  q.Get("from"),
		To:    q.Get("to"),
		Limit: q.Get("limit"),
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	entries := make([]LogEntry, 0, len(logs.Entries))
	for _, ex := range logs.Entries {
		entries = append(entries, LogEntry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        dates.Format(ex.Date),
		})
	}
	httpx.JSON(w, http.StatusOK, LogResponse{
		ID:       logs.User.ID.String(),
		Username: logs.User.Username,
		Count:    len(entries),
		Log:      entries,
	})
}

// HandleListExercises handles GET /api/exercises
func (h *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.ListExercises(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	records := make([]ExerciseRecord, 0, len(result))
	for _, ex := range result {
		records = append(records, ExerciseRecord{
			ID:          ex.ID.String(),
			UserID:      ex.UserID.String(),
			Username:    ex.Username,
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        ex.Date.Format(dates.ISOFormat),
		})
	}
	httpx.JSON(w, http.StatusOK, records)
}

// RegisterRoutes registers the exercise routes on mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/users/{id}/exercises", h.HandleCreateExercise)
	mux.HandleFunc("GET /api/users/{id}/logs", h.HandleGetLogs)
	mux.HandleFunc("GET /api/exercises", h.HandleListExercises)
}
