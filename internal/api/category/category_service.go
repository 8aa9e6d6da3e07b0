package category

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/aeschyllus/expensetracker-be/internal/types"
)

var _ CategoryService = (*CategoryServiceImpl)(nil)

// CategoryService exposes the seeded category read model.
type CategoryService interface {
	GetCategories(ctx context.Context, userID uuid.UUID) ([]types.Category, error)
}

// CategoryServiceImpl caches per-user category trees. The tree only changes
// when the seed binary runs, so a short TTL is enough to keep reads cheap
// without any invalidation hooks.
type CategoryServiceImpl struct {
	logger *slog.Logger
	repo   CategoryRepo
	cache  *cache.Cache
}

func NewCategoryService(repo CategoryRepo, logger *slog.Logger) *CategoryServiceImpl {
	return &CategoryServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *CategoryServiceImpl) GetCategories(ctx context.Context, userID uuid.UUID) ([]types.Category, error) {
	key := userID.String()
	if cached, found := s.cache.Get(key); found {
		s.logger.DebugContext(ctx, "Serving categories from cache", slog.String("userID", key))
		return cached.([]types.Category), nil
	}

	categories, err := s.repo.GetCategories(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to list categories", slog.String("userID", key), slog.Any("error", err))
		return nil, err
	}

	s.cache.Set(key, categories, cache.DefaultExpiration)
	return categories, nil
}
