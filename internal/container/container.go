package container

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/aeschyllus/expensetracker-be/app/db"
	"github.com/aeschyllus/expensetracker-be/config"
	"github.com/aeschyllus/expensetracker-be/internal/api/account"
	"github.com/aeschyllus/expensetracker-be/internal/api/auth"
	"github.com/aeschyllus/expensetracker-be/internal/api/category"
	"github.com/aeschyllus/expensetracker-be/internal/api/user"
)

// Container holds all application dependencies wired pool-up.
type Container struct {
	Config          *config.Config
	Logger          *slog.Logger
	Pool            *pgxpool.Pool
	TokenIssuer     *auth.TokenIssuer
	AuthHandler     *auth.AuthHandler
	UserHandler     *user.UserHandler
	AccountHandler  *account.AccountHandler
	CategoryHandler *category.CategoryHandler
}

// NewContainer initializes the database pool, repositories, services and
// handlers.
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	tokenIssuer := auth.NewTokenIssuer(cfg.JWT)

	authRepo := auth.NewPostgresAuthRepo(pool, logger)
	authService := auth.NewAuthService(authRepo, tokenIssuer, logger)
	authHandler := auth.NewAuthHandler(authService, logger)

	userRepo := user.NewPostgresUserRepo(pool, logger)
	userService := user.NewUserService(userRepo, logger)
	userHandler := user.NewUserHandler(userService, logger)

	accountRepo := account.NewPostgresAccountRepo(pool, logger)
	accountService := account.NewAccountService(accountRepo, logger)
	accountHandler := account.NewAccountHandler(accountService, logger)

	categoryRepo := category.NewPostgresCategoryRepo(pool, logger)
	categoryService := category.NewCategoryService(categoryRepo, logger)
	categoryHandler := category.NewCategoryHandler(categoryService, logger)

	return &Container{
		Config:          cfg,
		Logger:          logger,
		Pool:            pool,
		TokenIssuer:     tokenIssuer,
		AuthHandler:     authHandler,
		UserHandler:     userHandler,
		AccountHandler:  accountHandler,
		CategoryHandler: categoryHandler,
	}, nil
}

// Close releases all resources held by the container.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Logger.Info("Closing database connection pool")
		c.Pool.Close()
	}
}
