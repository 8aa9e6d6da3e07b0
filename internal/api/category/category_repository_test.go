package category

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categoryJoinRows = []string{
	"id", "name", "user_id", "created_at", "updated_at",
	"sub_id", "sub_name", "sub_category_id", "sub_user_id", "sub_created_at", "sub_updated_at",
}

func TestPostgresCategoryRepoGetCategories(t *testing.T) {
	newMockRepo := func(t *testing.T) (pgxmock.PgxPoolIface, *PostgresCategoryRepo) {
		t.Helper()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		t.Cleanup(mock.Close)
		return mock, NewPostgresCategoryRepo(mock, slog.Default())
	}

	t.Run("NestsSubcategoriesUnderCategories", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		userID := uuid.New()
		foodID := uuid.New()
		billsID := uuid.New()
		breakfastID := uuid.New()
		lunchID := uuid.New()
		now := time.Now()

		mock.ExpectQuery("FROM categories c").
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows(categoryJoinRows).
				AddRow(foodID, "Food", userID, now, now,
					&breakfastID, strPtr("Breakfast"), &foodID, &userID, &now, &now).
				AddRow(foodID, "Food", userID, now, now,
					&lunchID, strPtr("Lunch"), &foodID, &userID, &now, &now).
				AddRow(billsID, "Bills", userID, now, now,
					nil, nil, nil, nil, nil, nil))

		categories, err := repo.GetCategories(context.Background(), userID)

		require.NoError(t, err)
		require.Len(t, categories, 2)

		food := categories[0]
		assert.Equal(t, "Food", food.Name)
		require.Len(t, food.Subcategories, 2)
		assert.Equal(t, "Breakfast", food.Subcategories[0].Name)
		assert.Equal(t, "Lunch", food.Subcategories[1].Name)
		assert.Equal(t, foodID, food.Subcategories[0].CategoryID)

		bills := categories[1]
		assert.Equal(t, "Bills", bills.Name)
		assert.NotNil(t, bills.Subcategories)
		assert.Empty(t, bills.Subcategories)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoCategories", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		userID := uuid.New()

		mock.ExpectQuery("FROM categories c").
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows(categoryJoinRows))

		categories, err := repo.GetCategories(context.Background(), userID)

		require.NoError(t, err)
		assert.Empty(t, categories)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func strPtr(s string) *string { return &s }
