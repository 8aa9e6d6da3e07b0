package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
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

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, params types.CreateUserParams) (string, *types.PublicUser, error) {
	args := m.Called(ctx, params)
	var user *types.PublicUser
	if args.Get(1) != nil {
		user = args.Get(1).(*types.PublicUser)
	}
	return args.String(0), user, args.Error(2)
}

func TestLoginHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, slog.Default())

		mockService.On("Login", mock.Anything, "mlapada", "secret123").
			Return("signed.jwt.token", nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"username":"mlapada","password":"secret123"}`))
		rr := httptest.NewRecorder()

		handler.Login(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var body LoginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "signed.jwt.token", body.AccessToken)
		mockService.AssertExpectations(t)
	})

	t.Run("UnknownUsernameIs404", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, slog.Default())

		mockService.On("Login", mock.Anything, "ghost", "secret123").
			Return("", store.WrapError(pgx.ErrNoRows)).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"username":"ghost","password":"secret123"}`))
		rr := httptest.NewRecorder()

		handler.Login(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("WrongPasswordIs401", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, slog.Default())

		mockService.On("Login", mock.Anything, "mlapada", "wrong").
			Return("", api.Unauthorized("Invalid credentials")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"username":"mlapada","password":"wrong"}`))
		rr := httptest.NewRecorder()

		handler.Login(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid credentials")
		mockService.AssertExpectations(t)
	})

	t.Run("MissingFieldsIs400", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, slog.Default())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"username":"mlapada"}`))
		rr := httptest.NewRecorder()

		handler.Login(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "Login")
	})

	t.Run("MalformedBodyIs400", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, slog.Default())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"username":`))
		rr := httptest.NewRecorder()

		handler.Login(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "Login")
	})
}

func TestRegisterHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, slog.Default())

		userID := uuid.New()
		public := &types.PublicUser{ID: userID, Username: "mlapada", Email: "mlapada@mail.com"}
		mockService.On("Register", mock.Anything, types.CreateUserParams{
			Username: "mlapada",
			Email:    "mlapada@mail.com",
			Password: "secret123",
		}).Return("signed.jwt.token", public, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
			strings.NewReader(`{"username":"mlapada","email":"mlapada@mail.com","password":"secret123"}`))
		rr := httptest.NewRecorder()

		handler.Register(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var body RegisterResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "signed.jwt.token", body.AccessToken)
		assert.Equal(t, userID, body.User.ID)
		mockService.AssertExpectations(t)
	})

	t.Run("DuplicateUsernameIs409", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, slog.Default())

		conflict := &store.Error{
			Code:   store.UniqueViolation,
			Detail: "Key (username)=(mlapada) already exists.",
		}
		mockService.On("Register", mock.Anything, mock.Anything).
			Return("", nil, conflict).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
			strings.NewReader(`{"username":"mlapada","email":"mlapada@mail.com","password":"secret123"}`))
		rr := httptest.NewRecorder()

		handler.Register(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "unique_violation")
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidEmailIs400", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, slog.Default())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
			strings.NewReader(`{"username":"mlapada","email":"not-an-email","password":"secret123"}`))
		rr := httptest.NewRecorder()

		handler.Register(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "Register")
	})

	t.Run("ShortPasswordIs400", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, slog.Default())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
			strings.NewReader(`{"username":"mlapada","email":"mlapada@mail.com","password":"abc"}`))
		rr := httptest.NewRecorder()

		handler.Register(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "Register")
	})
}

func TestValidateCreateUser(t *testing.T) {
	valid := types.CreateUserParams{Username: "mlapada", Email: "mlapada@mail.com", Password: "secret123"}
	assert.NoError(t, ValidateCreateUser(valid))

	blank := valid
	blank.Username = "   "
	assert.Error(t, ValidateCreateUser(blank))

	badEmail := valid
	badEmail.Email = "nope"
	assert.Error(t, ValidateCreateUser(badEmail))

	short := valid
	short.Password = "12345"
	assert.Error(t, ValidateCreateUser(short))
}
