package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aeschyllus/expensetracker-be/internal/types"
)

var _ AccountService = (*AccountServiceImpl)(nil)

// AccountService defines the business logic contract for account operations.
type AccountService interface {
	CreateAccount(ctx context.Context, params types.CreateAccountParams) (*types.Account, error)
	GetAccounts(ctx context.Context, userID uuid.UUID) ([]types.Account, error)
	GetAccount(ctx context.Context, accountID uuid.UUID) (*types.Account, error)
	UpdateAccount(ctx context.Context, accountID uuid.UUID, params types.UpdateAccountParams) (*types.Account, error)
	DeleteAccount(ctx context.Context, accountID uuid.UUID) error
}

type AccountServiceImpl struct {
	logger *slog.Logger
	repo   AccountRepo
}

func NewAccountService(repo AccountRepo, logger *slog.Logger) *AccountServiceImpl {
	return &AccountServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *AccountServiceImpl) CreateAccount(ctx context.Context, params types.CreateAccountParams) (*types.Account, error) {
	l := s.logger.With(slog.String("method", "CreateAccount"), slog.String("userID", params.UserID.String()))

	account, err := s.repo.CreateAccount(ctx, params)
	if err != nil {
		l.WarnContext(ctx, "Failed to create account", slog.Any("error", err))
		return nil, err
	}

	return account, nil
}

func (s *AccountServiceImpl) GetAccounts(ctx context.Context, userID uuid.UUID) ([]types.Account, error) {
	accounts, err := s.repo.GetAccounts(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list accounts", slog.Any("error", err))
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}
	return accounts, nil
}

func (s *AccountServiceImpl) GetAccount(ctx context.Context, accountID uuid.UUID) (*types.Account, error) {
	account, err := s.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to fetch account", slog.String("accountID", accountID.String()), slog.Any("error", err))
		return nil, err
	}
	return account, nil
}

func (s *AccountServiceImpl) UpdateAccount(ctx context.Context, accountID uuid.UUID, params types.UpdateAccountParams) (*types.Account, error) {
	account, err := s.repo.UpdateAccount(ctx, accountID, params)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to update account", slog.String("accountID", accountID.String()), slog.Any("error", err))
		return nil, err
	}
	return account, nil
}

func (s *AccountServiceImpl) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	if _, err := s.repo.DeleteAccount(ctx, accountID); err != nil {
		s.logger.WarnContext(ctx, "Failed to delete account", slog.String("accountID", accountID.String()), slog.Any("error", err))
		return err
	}
	return nil
}
