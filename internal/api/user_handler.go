package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/juicebox-api/internal/api/shared"
	"github.com/phrazzld/juicebox-api/internal/domain"
	"github.com/phrazzld/juicebox-api/internal/platform/logger"
	"github.com/phrazzld/juicebox-api/internal/service"
	"github.com/phrazzld/juicebox-api/internal/service/auth"
	"github.com/phrazzld/juicebox-api/internal/store"
)

// UserHandler handles the /api/users endpoints.
type UserHandler struct {
	users      service.UserService
	jwtService auth.JWTService
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(users service.UserService, jwtService auth.JWTService) *UserHandler {
	return &UserHandler{
		users:      users,
		jwtService: jwtService,
	}
}

// ListUsers handles GET /api/users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load users")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{"users": users})
}

// Register handles POST /api/users/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.users.Register(r.Context(), domain.NewUser{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}
	if result.Outcome == store.OutcomeAlreadyExists {
		shared.RespondWithError(w, r, http.StatusConflict, "A user by that username already exists")
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, "thank you for signing up", result.User.Public())
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	h.respondWithToken(w, r, http.StatusOK, "you're logged in!", user)
}

// GetUser handles GET /api/users/{userID}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "userID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user.WithVisiblePosts(requesterFromRequest(r)))
}

// UpdateUser handles PATCH /api/users/{userID}. Users may only update themselves.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, err := getPathID(r, "userID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	requesterID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}
	if requesterID != id {
		log.Warn("user update by another user",
			slog.Int64("user_id", id),
			slog.Int64("requester_id", requesterID))
		HandleAPIError(w, r, service.ErrNotOwned, "")
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.users.UpdateUser(r.Context(), id, req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update user")
		return
	}
	if result.Outcome == store.OutcomeNoop {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result.User.Public())
}

func (h *UserHandler) respondWithToken(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	user *domain.User,
) {
	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, status, AuthResponse{
		Message: message,
		User:    user,
		Token:   token,
	})
}
