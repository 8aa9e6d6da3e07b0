package auth

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aeschyllus/expensetracker-be/internal/api"
	"github.com/aeschyllus/expensetracker-be/internal/store"
	"github.com/aeschyllus/expensetracker-be/internal/types"
)

// MockAuthRepo is a mock implementation of the AuthRepo interface
type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockAuthRepo) CreateUser(ctx context.Context, username, email, passwordHash string) (*types.User, error) {
	args := m.Called(ctx, username, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func newTestAuthService(repo AuthRepo) *AuthServiceImpl {
	return NewAuthService(repo, NewTokenIssuer(testJWTConfig()), slog.Default())
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := newTestAuthService(mockRepo)

		hashed, err := HashPassword("secret123")
		require.NoError(t, err)
		user := &types.User{
			ID:           uuid.New(),
			Username:     "mlapada",
			Email:        "mlapada@mail.com",
			PasswordHash: hashed,
		}
		mockRepo.On("GetUserByUsername", ctx, "mlapada").Return(user, nil).Once()

		token, err := service.Login(ctx, "mlapada", "secret123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		mockRepo.AssertExpectations(t)
	})

	t.Run("UnknownUsername", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := newTestAuthService(mockRepo)

		mockRepo.On("GetUserByUsername", ctx, "ghost").
			Return(nil, store.WrapError(pgx.ErrNoRows)).Once()

		token, err := service.Login(ctx, "ghost", "secret123")

		assert.Empty(t, token)
		// Unknown username keeps its not-found classification rather than
		// collapsing into the credential failure.
		assert.True(t, store.IsNotFound(err))
		assert.NotErrorIs(t, err, api.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := newTestAuthService(mockRepo)

		hashed, err := HashPassword("secret123")
		require.NoError(t, err)
		user := &types.User{
			ID:           uuid.New(),
			Username:     "mlapada",
			PasswordHash: hashed,
		}
		mockRepo.On("GetUserByUsername", ctx, "mlapada").Return(user, nil).Once()

		token, err := service.Login(ctx, "mlapada", "wrong-password")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, api.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := newTestAuthService(mockRepo)

		userID := uuid.New()
		mockRepo.On("CreateUser", ctx, "mlapada", "mlapada@mail.com", mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				// The service must never pass the plaintext through.
				assert.NotEqual(t, "secret123", args.String(3))
			}).
			Return(&types.User{
				ID:           userID,
				Username:     "mlapada",
				Email:        "mlapada@mail.com",
				PasswordHash: "$2a$10$fakehash",
			}, nil).Once()

		token, public, err := service.Register(ctx, types.CreateUserParams{
			Username: "mlapada",
			Email:    "mlapada@mail.com",
			Password: "secret123",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, userID, public.ID)
		assert.Equal(t, "mlapada", public.Username)
		mockRepo.AssertExpectations(t)

		// The issued token identifies the new user.
		claims, err := NewTokenIssuer(testJWTConfig()).Verify(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
	})

	t.Run("UsernameTaken", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := newTestAuthService(mockRepo)

		conflict := &store.Error{
			Code:   store.UniqueViolation,
			Detail: "Key (username)=(mlapada) already exists.",
		}
		mockRepo.On("CreateUser", ctx, "mlapada", "mlapada@mail.com", mock.AnythingOfType("string")).
			Return(nil, conflict).Once()

		token, public, err := service.Register(ctx, types.CreateUserParams{
			Username: "mlapada",
			Email:    "mlapada@mail.com",
			Password: "secret123",
		})

		assert.Empty(t, token)
		assert.Nil(t, public)
		code, ok := store.CodeOf(err)
		assert.True(t, ok)
		assert.Equal(t, store.UniqueViolation, code)
		mockRepo.AssertExpectations(t)
	})
}
