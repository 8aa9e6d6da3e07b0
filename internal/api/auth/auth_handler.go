package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/badoux/checkmail"

	"github.com/aeschyllus/expensetracker-be/internal/api"
	"github.com/aeschyllus/expensetracker-be/internal/types"
)

const minPasswordLength = 6

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the login response body.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// RegisterResponse carries the token and the created user's public projection.
type RegisterResponse struct {
	AccessToken string           `json:"accessToken"`
	User        types.PublicUser `json:"user"`
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	authService AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login authenticates a user and returns an access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, LoginResponse{AccessToken: token})
}

// Register creates a new user and logs it in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := ValidateCreateUser(req); err != nil {
		api.HandleError(w, r, err)
		return
	}

	token, user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, RegisterResponse{
		AccessToken: token,
		User:        *user,
	})
}

// ValidateCreateUser checks registration input before any store access. The
// user package shares it for direct user creation.
func ValidateCreateUser(params types.CreateUserParams) error {
	if strings.TrimSpace(params.Username) == "" {
		return api.BadRequest("username must not be empty")
	}
	if err := checkmail.ValidateFormat(params.Email); err != nil {
		return api.BadRequest("email address is not valid")
	}
	if len(params.Password) < minPasswordLength {
		return api.BadRequest("password must be at least 6 characters")
	}
	return nil
}
