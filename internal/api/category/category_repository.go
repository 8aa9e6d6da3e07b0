package category

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aeschyllus/expensetracker-be/internal/store"
	"github.com/aeschyllus/expensetracker-be/internal/types"
)

var _ CategoryRepo = (*PostgresCategoryRepo)(nil)

// CategoryRepo reads the seeded category tree. Categories and subcategories are
// written only by the seed binary, so there are no mutation methods here.
type CategoryRepo interface {
	// GetCategories returns the user's categories with their subcategories
	// nested, ordered by creation time.
	GetCategories(ctx context.Context, userID uuid.UUID) ([]types.Category, error)
}

type PostgresCategoryRepo struct {
	logger *slog.Logger
	db     store.DB
}

func NewPostgresCategoryRepo(db store.DB, logger *slog.Logger) *PostgresCategoryRepo {
	return &PostgresCategoryRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresCategoryRepo) GetCategories(ctx context.Context, userID uuid.UUID) ([]types.Category, error) {
	ctx, span := otel.Tracer("CategoryRepo").Start(ctx, "GetCategories", trace.WithAttributes(
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "categories"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()

	// LEFT JOIN so categories without subcategories still come back; nullable
	// subcategory columns are scanned through pointers.
	query := `
        SELECT c.id, c.name, c.user_id, c.created_at, c.updated_at,
               s.id, s.name, s.category_id, s.user_id, s.created_at, s.updated_at
        FROM categories c
        LEFT JOIN subcategories s ON s.category_id = c.id
        WHERE c.user_id = $1
        ORDER BY c.created_at, s.created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.WarnContext(ctx, "Category query failed", slog.String("userID", userID.String()), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("listing categories: %w", store.WrapError(err))
	}
	defer rows.Close()

	var categories []types.Category
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var c types.Category
		var subID, subCategoryID, subUserID *uuid.UUID
		var subName *string
		var subCreatedAt, subUpdatedAt *time.Time

		err := rows.Scan(
			&c.ID, &c.Name, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
			&subID, &subName, &subCategoryID, &subUserID, &subCreatedAt, &subUpdatedAt,
		)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("scanning category row: %w", err)
		}

		pos, seen := index[c.ID]
		if !seen {
			c.Subcategories = []types.Subcategory{}
			categories = append(categories, c)
			pos = len(categories) - 1
			index[c.ID] = pos
		}

		if subID != nil {
			categories[pos].Subcategories = append(categories[pos].Subcategories, types.Subcategory{
				ID:         *subID,
				Name:       *subName,
				CategoryID: *subCategoryID,
				UserID:     *subUserID,
				CreatedAt:  *subCreatedAt,
				UpdatedAt:  *subUpdatedAt,
			})
		}
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	span.SetStatus(codes.Ok, "Categories listed")
	return categories, nil
}
