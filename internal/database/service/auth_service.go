package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/apperror"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/config"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/repository"
)

const accessTokenType = "access"

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(input UserInput) (*models.User, *TokenPair, error)
	Login(email, password string) (*models.User, *TokenPair, error)
	RefreshToken(refreshToken string) (*TokenPair, error)
	Logout(refreshToken string) error
	RevokeSessions(userID string) error
	ValidateAccessToken(tokenString string) (*Principal, error)
	PurgeExpiredTokens() (int64, error)
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Principal is the caller identity decoded from an access token
type Principal struct {
	UserID  string
	IsAdmin bool
}

// AccessClaims are the claims carried by an access token; the subject is the user id
type AccessClaims struct {
	IsAdmin bool   `json:"is_admin"`
	Type    string `json:"type"`
	jwt.RegisteredClaims
}

type authService struct {
	facade           Facade
	refreshTokenRepo repository.RefreshTokenRepository
	jwtSecret        string
	cfg              *config.Config
	logger           *slog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	facade Facade,
	refreshTokenRepo repository.RefreshTokenRepository,
	cfg *config.Config,
	logger *slog.Logger,
) AuthService {
	return &authService{
		facade:           facade,
		refreshTokenRepo: refreshTokenRepo,
		jwtSecret:        cfg.JWTSecret,
		cfg:              cfg,
		logger:           logger,
	}
}

// Register creates a regular user and signs them in; it never grants admin rights
func (s *authService) Register(input UserInput) (*models.User, *TokenPair, error) {
	s.logger.Info("📝 [AuthService] Registration attempt", "email", input.Email)

	input.IsAdmin = false
	user, err := s.facade.CreateUser(input)
	if err != nil {
		s.logger.Warn("⚠️ [AuthService] Registration rejected", "email", input.Email, "error", err)
		return nil, nil, err
	}

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate tokens", "error", err)
		return nil, nil, err
	}

	s.logger.Info("✅ [AuthService] User registered successfully", "user_id", user.ID)
	return user, tokens, nil
}

func (s *authService) Login(email, password string) (*models.User, *TokenPair, error) {
	s.logger.Info("🔐 [AuthService] Login attempt", "email", email)

	user, err := s.facade.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.logger.Warn("⚠️ [AuthService] User not found", "email", email)
			return nil, nil, ErrInvalidCredentials
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, nil, err
	}

	if !CheckPassword(user.Password, password) {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "email", email)
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate tokens", "error", err)
		return nil, nil, err
	}

	s.logger.Info("✅ [AuthService] User logged in successfully", "user_id", user.ID)
	return user, tokens, nil
}

// RefreshToken exchanges a refresh token for a new pair and revokes the old one
func (s *authService) RefreshToken(refreshToken string) (*TokenPair, error) {
	s.logger.Info("🔄 [AuthService] Token refresh attempt")

	storedToken, err := s.refreshTokenRepo.FindByToken(refreshToken)
	if err != nil {
		s.logger.Warn("⚠️ [AuthService] Invalid refresh token", "error", err)
		return nil, ErrInvalidToken
	}

	// Admin rights may have changed since the token was issued
	user, err := s.facade.GetUser(storedToken.UserID)
	if err != nil {
		s.logger.Warn("⚠️ [AuthService] Refresh token owner missing", "user_id", storedToken.UserID)
		return nil, ErrInvalidToken
	}

	// Revoke old refresh token (token rotation)
	if err := s.refreshTokenRepo.RevokeToken(refreshToken); err != nil {
		s.logger.Error("❌ [AuthService] Failed to revoke old token", "error", err)
		return nil, ErrInvalidToken
	}

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate new tokens", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AuthService] Token refreshed successfully", "user_id", user.ID)
	return tokens, nil
}

func (s *authService) Logout(refreshToken string) error {
	s.logger.Info("👋 [AuthService] Logout attempt")

	if err := s.refreshTokenRepo.RevokeToken(refreshToken); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			s.logger.Warn("⚠️ [AuthService] Token not found for logout")
			return ErrInvalidToken
		}
		return err
	}

	s.logger.Info("✅ [AuthService] User logged out successfully")
	return nil
}

func (s *authService) ValidateAccessToken(tokenString string) (*Principal, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Type != accessTokenType || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Principal{UserID: claims.Subject, IsAdmin: claims.IsAdmin}, nil
}

// RevokeSessions revokes every refresh token the user holds
func (s *authService) RevokeSessions(userID string) error {
	if err := s.refreshTokenRepo.RevokeAllUserTokens(userID); err != nil {
		s.logger.Error("❌ [AuthService] Failed to revoke sessions", "user_id", userID, "error", err)
		return err
	}
	s.logger.Info("🔒 [AuthService] Sessions revoked", "user_id", userID)
	return nil
}

// PurgeExpiredTokens deletes refresh tokens past their expiry
func (s *authService) PurgeExpiredTokens() (int64, error) {
	deleted, err := s.refreshTokenRepo.DeleteExpiredTokens()
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to purge expired tokens", "error", err)
		return 0, err
	}

	if deleted > 0 {
		s.logger.Info("🧹 [AuthService] Purged expired refresh tokens", "count", deleted)
	}
	return deleted, nil
}

// generateTokenPair creates both access and refresh tokens
func (s *authService) generateTokenPair(user *models.User) (*TokenPair, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateAndStoreRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.cfg.AccessTokenExpiration,
	}, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		IsAdmin: user.IsAdmin,
		Type:    accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.AccessTokenExpiration) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateAndStoreRefreshToken(userID string) (string, error) {
	// Generate cryptographically secure random token
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	tokenString := base64.URLEncoding.EncodeToString(tokenBytes)

	refreshToken := &models.RefreshToken{
		Base:      models.NewBase(),
		UserID:    userID,
		Token:     tokenString,
		ExpiresAt: time.Now().UTC().Add(time.Duration(s.cfg.RefreshTokenExpiration) * time.Second),
	}

	if err := s.refreshTokenRepo.Create(refreshToken); err != nil {
		return "", err
	}

	return tokenString, nil
}
