package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/apperror"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/config"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/repository"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/service"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/logger"
)

// ==================== MOCK REFRESH TOKEN REPOSITORY ====================

// MockRefreshTokenRepository implements repository.RefreshTokenRepository for testing
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(token *models.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) RevokeToken(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllUserTokens(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpiredTokens() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:              "test-secret",
		AccessTokenExpiration:  900,
		RefreshTokenExpiration: 3600,
	}
}

type authFixture struct {
	facade service.Facade
	auth   service.AuthService
	repos  *repository.Repositories
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	repos := repository.NewMemoryRepositories()
	f := service.NewFacade(repos, logger.Discard())
	return authFixture{
		facade: f,
		auth:   service.NewAuthService(f, repos.Tokens, testConfig(), logger.Discard()),
		repos:  repos,
	}
}

// ==================== AUTH SERVICE UNIT TESTS ====================

func TestAuthService_Register(t *testing.T) {
	fx := newAuthFixture(t)

	user, tokens, err := fx.auth.Register(service.UserInput{Email: "new@example.com", Password: "pw", IsAdmin: true})
	require.NoError(t, err)
	assert.False(t, user.IsAdmin, "registration must never grant admin")
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, int64(900), tokens.ExpiresIn)

	_, _, err = fx.auth.Register(service.UserInput{Email: "new@example.com", Password: "pw"})
	assert.ErrorIs(t, err, service.ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	fx := newAuthFixture(t)
	_, err := fx.facade.CreateUser(service.UserInput{Email: "admin@example.com", Password: "correct", IsAdmin: true})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"success", "admin@example.com", "correct", nil},
		{"wrong password", "admin@example.com", "wrong", service.ErrInvalidCredentials},
		{"unknown user", "ghost@example.com", "correct", service.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := fx.auth.Login(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperror.ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, user.Email)

			principal, err := fx.auth.ValidateAccessToken(tokens.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, user.ID, principal.UserID)
			assert.True(t, principal.IsAdmin)
		})
	}
}

func TestAuthService_RefreshTokenRotation(t *testing.T) {
	fx := newAuthFixture(t)
	user, tokens, err := fx.auth.Register(service.UserInput{Email: "rotate@example.com", Password: "pw"})
	require.NoError(t, err)

	// Promote after the first token was issued; the refreshed access token must carry it
	_, err = fx.facade.UpdateUser(user.ID, service.UserChanges{IsAdmin: ptr(true)})
	require.NoError(t, err)

	refreshed, err := fx.auth.RefreshToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)

	principal, err := fx.auth.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.True(t, principal.IsAdmin)

	// The old refresh token is spent
	_, err = fx.auth.RefreshToken(tokens.RefreshToken)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestAuthService_RefreshTokenErrors(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	f := service.NewFacade(repos, logger.Discard())
	tokenRepo := new(MockRefreshTokenRepository)
	auth := service.NewAuthService(f, tokenRepo, testConfig(), logger.Discard())

	tokenRepo.On("FindByToken", "expired").Return(nil, repository.ErrTokenExpired)
	tokenRepo.On("FindByToken", "orphan").Return(&models.RefreshToken{UserID: "missing-user", Token: "orphan"}, nil)

	_, err := auth.RefreshToken("expired")
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = auth.RefreshToken("orphan")
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	tokenRepo.AssertExpectations(t)
	tokenRepo.AssertNotCalled(t, "RevokeToken", mock.Anything)
}

func TestAuthService_Logout(t *testing.T) {
	fx := newAuthFixture(t)
	_, tokens, err := fx.auth.Register(service.UserInput{Email: "bye@example.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, fx.auth.Logout(tokens.RefreshToken))
	assert.ErrorIs(t, fx.auth.Logout("not-a-token"), service.ErrInvalidToken)

	_, err = fx.auth.RefreshToken(tokens.RefreshToken)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestAuthService_RevokeSessions(t *testing.T) {
	fx := newAuthFixture(t)
	user, first, err := fx.auth.Register(service.UserInput{Email: "multi@example.com", Password: "pw"})
	require.NoError(t, err)
	_, second, err := fx.auth.Login("multi@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, fx.auth.RevokeSessions(user.ID))

	for _, tokens := range []*service.TokenPair{first, second} {
		_, err := fx.auth.RefreshToken(tokens.RefreshToken)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	}
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	fx := newAuthFixture(t)
	cfg := testConfig()

	sign := func(method jwt.SigningMethod, key any, claims service.AccessClaims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	valid := service.AccessClaims{
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid", sign(jwt.SigningMethodHS256, []byte(cfg.JWTSecret), valid), false},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("other"), valid), true},
		{"wrong algorithm", sign(jwt.SigningMethodHS512, []byte(cfg.JWTSecret), valid), true},
		{"expired", sign(jwt.SigningMethodHS256, []byte(cfg.JWTSecret), service.AccessClaims{
			Type: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}), true},
		{"not an access token", sign(jwt.SigningMethodHS256, []byte(cfg.JWTSecret), service.AccessClaims{
			Type:             "refresh",
			RegisteredClaims: valid.RegisteredClaims,
		}), true},
		{"garbage", "not.a.jwt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := fx.auth.ValidateAccessToken(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, service.ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user-1", principal.UserID)
			assert.False(t, principal.IsAdmin)
		})
	}
}

func TestAuthService_PurgeExpiredTokens(t *testing.T) {
	fx := newAuthFixture(t)
	user, _, err := fx.auth.Register(service.UserInput{Email: "purge@example.com", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, fx.repos.Tokens.Create(&models.RefreshToken{
		Base:      models.NewBase(),
		UserID:    user.ID,
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	deleted, err := fx.auth.PurgeExpiredTokens()
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestAuthService_PurgeExpiredTokensError(t *testing.T) {
	tokenRepo := new(MockRefreshTokenRepository)
	auth := service.NewAuthService(newFacade(t), tokenRepo, testConfig(), logger.Discard())
	tokenRepo.On("DeleteExpiredTokens").Return(int64(0), errors.New("db down"))

	_, err := auth.PurgeExpiredTokens()
	assert.Error(t, err)
	tokenRepo.AssertExpectations(t)
}
