package account

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aeschyllus/expensetracker-be/internal/api"
	"github.com/aeschyllus/expensetracker-be/internal/api/auth"
	"github.com/aeschyllus/expensetracker-be/internal/types"
)

// AccountHandler handles HTTP requests for account CRUD operations.
type AccountHandler struct {
	accountService AccountService
	logger         *slog.Logger
}

func NewAccountHandler(accountService AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

func parseIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, api.BadRequest("id must be a valid UUID")
	}
	return id, nil
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateAccountParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateCreateAccount(req); err != nil {
		api.HandleError(w, r, err)
		return
	}

	account, err := h.accountService.CreateAccount(r.Context(), req)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, account)
}

func (h *AccountHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	rawID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		api.HandleError(w, r, api.Unauthorized("Invalid credentials"))
		return
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		api.HandleError(w, r, api.Unauthorized("Invalid credentials"))
		return
	}

	accounts, err := h.accountService.GetAccounts(r.Context(), userID)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, accounts)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	account, err := h.accountService.GetAccount(r.Context(), id)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, account)
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	var req types.UpdateAccountParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		api.HandleError(w, r, api.BadRequest("name must not be empty"))
		return
	}

	account, err := h.accountService.UpdateAccount(r.Context(), id, req)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, account)
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	if err := h.accountService.DeleteAccount(r.Context(), id); err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

func validateCreateAccount(params types.CreateAccountParams) error {
	if strings.TrimSpace(params.Name) == "" {
		return api.BadRequest("name must not be empty")
	}
	if params.Amount == nil {
		return api.BadRequest("amount is required")
	}
	if params.UserID == uuid.Nil {
		return api.BadRequest("user_id is required")
	}
	return nil
}
