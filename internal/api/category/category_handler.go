package category

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/aeschyllus/expensetracker-be/internal/api"
	"github.com/aeschyllus/expensetracker-be/internal/api/auth"
)

type CategoryHandler struct {
	categoryService CategoryService
	logger          *slog.Logger
}

func NewCategoryHandler(categoryService CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// GetAll returns the authenticated user's categories with nested subcategories.
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
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

	categories, err := h.categoryService.GetCategories(r.Context(), userID)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, categories)
}
