package users

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/mfallon/exertrack/internal/httpx"
	"github.com/mfallon/exertrack/internal/models"
)

// UsersApp defines what the handler needs from the users application
type UsersApp interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Handler serves the user HTTP endpoints
type Handler struct {
	app UsersApp
}

// NewHandler creates a new users handler
func NewHandler(app UsersApp) *Handler {
	return &Handler{
		app: app,
	}
}

// HandleCreateUser handles POST /api/users
func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	params, err := httpx.ParseParams(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	user, err := h.app.CreateUser(r.Context(), CreateUserRequest{Username: params.Get("username")})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, UserResponse{
		Username: user.Username,
		ID:       user.ID.String(),
	})
}

// HandleListUsers handles GET /api/users
func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.ListUsers(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	// Internal fields like created_at stay server-side.
	responses := make([]UserResponse, 0, len(result))
	for _, user := range result {
		responses = append(responses, UserResponse{
			Username: user.Username,
			ID:       user.ID.String(),
		})
	}
	httpx.JSON(w, http.StatusOK, responses)
}

// RegisterRoutes registers the user routes on mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/users", h.HandleListUsers)
	mux.HandleFunc("POST /api/users", h.HandleCreateUser)
}
