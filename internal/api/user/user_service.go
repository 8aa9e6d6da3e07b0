package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aeschyllus/expensetracker-be/internal/api/auth"
	"github.com/aeschyllus/expensetracker-be/internal/types"
)

var _ UserService = (*UserServiceImpl)(nil)

// UserService defines the business logic contract for user operations. Every
// method is a thin pass-through to the repository; the only added behavior is
// password hashing and projection to the public view.
type UserService interface {
	CreateUser(ctx context.Context, params types.CreateUserParams) (*types.PublicUser, error)
	GetUsers(ctx context.Context) ([]types.PublicUser, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*types.PublicUser, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, params types.UpdateUserParams) (*types.PublicUser, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
}

func NewUserService(repo UserRepo, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, params types.CreateUserParams) (*types.PublicUser, error) {
	l := s.logger.With(slog.String("method", "CreateUser"), slog.String("username", params.Username))

	hashed, err := auth.HashPassword(params.Password)
	if err != nil {
		l.ErrorContext(ctx, "Password hashing failed", slog.Any("error", err))
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, params.Username, params.Email, hashed)
	if err != nil {
		l.WarnContext(ctx, "Failed to create user", slog.Any("error", err))
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

func (s *UserServiceImpl) GetUsers(ctx context.Context) ([]types.PublicUser, error) {
	users, err := s.repo.GetUsers(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list users", slog.Any("error", err))
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	public := make([]types.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return public, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*types.PublicUser, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to fetch user", slog.String("userID", userID.String()), slog.Any("error", err))
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, userID uuid.UUID, params types.UpdateUserParams) (*types.PublicUser, error) {
	l := s.logger.With(slog.String("method", "UpdateUser"), slog.String("userID", userID.String()))

	fields := UpdateUserFields{
		Username: params.Username,
		Email:    params.Email,
	}
	if params.Password != nil {
		hashed, err := auth.HashPassword(*params.Password)
		if err != nil {
			l.ErrorContext(ctx, "Password hashing failed", slog.Any("error", err))
			return nil, err
		}
		fields.PasswordHash = &hashed
	}

	user, err := s.repo.UpdateUser(ctx, userID, fields)
	if err != nil {
		l.WarnContext(ctx, "Failed to update user", slog.Any("error", err))
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.repo.DeleteUser(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "Failed to delete user", slog.String("userID", userID.String()), slog.Any("error", err))
		return err
	}
	return nil
}
