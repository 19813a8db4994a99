package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rollcall/rollcall/internal/handler/dto"
	"github.com/rollcall/rollcall/internal/metrics"
	"github.com/rollcall/rollcall/internal/model"
	"github.com/rollcall/rollcall/internal/repository"
)

// Pagination defaults for the list endpoint.
const (
	defaultListLimit  = 10
	defaultListOffset = 0
)

// UserStore defines the persistence operations the user handlers need.
type UserStore interface {
	CreateUser(ctx context.Context, firstName, lastName string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*model.User, error)
}

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	store   UserStore
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(store UserStore, recorder metrics.Recorder, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		store:   store,
		metrics: recorder,
		logger:  logger,
	}
}

// Create handles POST /user.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil || req.FirstName == nil || req.LastName == nil {
		h.logger.Warn("invalid create user request", "error", "missing or malformed body")
		h.writeError(w, http.StatusBadRequest, "first_name and last_name are required")
		return
	}

	firstName := strings.TrimSpace(*req.FirstName)
	lastName := strings.TrimSpace(*req.LastName)
	if firstName == "" || lastName == "" {
		h.logger.Warn("invalid create user request", "error", "empty name after trimming")
		h.writeError(w, http.StatusBadRequest, "first_name and last_name cannot be empty")
		return
	}

	user, err := h.store.CreateUser(r.Context(), firstName, lastName)
	if err != nil {
		h.handleStoreError(w, err)
		return
	}

	h.metrics.IncUserCreated()
	h.logger.Info("user_created", "user_id", user.ID)

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// Get handles GET /user/{id}.
// The route constrains {id} to digits, so parsing only fails on overflow.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.metrics.IncUserNotFound()
		h.writeError(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, err)
		return
	}

	h.metrics.IncUserFetched()
	h.logger.Info("user_fetched", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := defaultListLimit
	offset := defaultListOffset

	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("invalid list query", "param", "limit", "value", raw)
			h.writeError(w, http.StatusBadRequest, "limit and offset must be integers")
			return
		}
		limit = parsed
	}
	if raw := query.Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("invalid list query", "param", "offset", "value", raw)
			h.writeError(w, http.StatusBadRequest, "limit and offset must be integers")
			return
		}
		offset = parsed
	}
	if limit < 0 || offset < 0 {
		h.logger.Warn("invalid list query", "limit", limit, "offset", offset)
		h.writeError(w, http.StatusBadRequest, "limit and offset must be non-negative")
		return
	}

	users, err := h.store.ListUsers(r.Context(), limit, offset)
	if err != nil {
		h.handleStoreError(w, err)
		return
	}

	h.metrics.IncUsersListed()
	h.logger.Info("users_listed", "count", len(users), "limit", limit, "offset", offset)

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(users, limit, offset))
}

// handleStoreError maps repository errors to HTTP responses.
func (h *UserHandler) handleStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		h.metrics.IncUserNotFound()
		h.logger.Info("user_not_found")
		h.writeError(w, http.StatusNotFound, "User not found")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// writeError writes an error response.
func (h *UserHandler) writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message})
}
