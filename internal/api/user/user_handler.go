package user

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aeschyllus/expensetracker-be/internal/api"
	"github.com/aeschyllus/expensetracker-be/internal/api/auth"
	"github.com/aeschyllus/expensetracker-be/internal/types"
)

// UserHandler handles HTTP requests for user CRUD operations.
type UserHandler struct {
	userService UserService
	logger      *slog.Logger
}

func NewUserHandler(userService UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

func parseIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, api.BadRequest("id must be a valid UUID")
	}
	return id, nil
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := auth.ValidateCreateUser(req); err != nil {
		api.HandleError(w, r, err)
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, user)
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetUsers(r.Context())
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	var req types.UpdateUserParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateUpdateUser(req); err != nil {
		api.HandleError(w, r, err)
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), id, req)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

func validateUpdateUser(params types.UpdateUserParams) error {
	if params.Username != nil && strings.TrimSpace(*params.Username) == "" {
		return api.BadRequest("username must not be empty")
	}
	if params.Email != nil {
		if err := checkmail.ValidateFormat(*params.Email); err != nil {
			return api.BadRequest("email address is not valid")
		}
	}
	if params.Password != nil && len(*params.Password) < 6 {
		return api.BadRequest("password must be at least 6 characters")
	}
	return nil
}
