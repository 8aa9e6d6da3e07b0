// Command seed inserts the demo user with their accounts and the default
// category tree. It is safe to run against an empty, migrated database.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	database "github.com/aeschyllus/expensetracker-be/app/db"
	"github.com/aeschyllus/expensetracker-be/config"
	"github.com/aeschyllus/expensetracker-be/internal/api/auth"
	"github.com/aeschyllus/expensetracker-be/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()

	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := seed(ctx, pool, logger); err != nil {
		logger.Error("Seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Seeding complete")
}

func seed(ctx context.Context, db store.DB, logger *slog.Logger) error {
	hashed, err := auth.HashPassword("mlapada")
	if err != nil {
		return err
	}

	var userID uuid.UUID
	err = db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		"mlapada", "mlapada@mail.com", hashed,
	).Scan(&userID)
	if err != nil {
		return err
	}
	logger.Info("Seeded user", slog.String("userID", userID.String()))

	accounts := []struct {
		name   string
		amount float64
	}{
		{"Savings", 50000},
		{"Emergency Funds", 150000},
	}
	for _, a := range accounts {
		_, err = db.Exec(ctx,
			`INSERT INTO accounts (name, amount, user_id) VALUES ($1, $2, $3)`,
			a.name, a.amount, userID,
		)
		if err != nil {
			return err
		}
	}

	var foodID uuid.UUID
	err = db.QueryRow(ctx,
		`INSERT INTO categories (name, user_id) VALUES ($1, $2) RETURNING id`,
		"Food", userID,
	).Scan(&foodID)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx,
		`INSERT INTO categories (name, user_id) VALUES ($1, $2)`,
		"Bills", userID,
	)
	if err != nil {
		return err
	}

	for _, name := range []string{"Breakfast", "Lunch"} {
		_, err = db.Exec(ctx,
			`INSERT INTO subcategories (name, category_id, user_id) VALUES ($1, $2, $3)`,
			name, foodID, userID,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
