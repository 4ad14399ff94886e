package repository

import (
	"time"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
)

type memoryRefreshTokenRepository struct {
	store *memoryStore
}

func (r *memoryRefreshTokenRepository) Create(token *models.RefreshToken) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	models.EnsureBase(token)
	for _, existing := range r.store.tokens {
		if existing.ID == token.ID || existing.Token == token.Token {
			return ErrDuplicate
		}
	}
	r.store.tokens[token.ID] = *token
	return nil
}

func (r *memoryRefreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, existing := range r.store.tokens {
		if existing.Token != token || existing.IsRevoked {
			continue
		}
		if time.Now().After(existing.ExpiresAt) {
			return nil, ErrTokenExpired
		}
		return &existing, nil
	}
	return nil, ErrTokenNotFound
}

func (r *memoryRefreshTokenRepository) RevokeToken(token string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, existing := range r.store.tokens {
		if existing.Token == token && !existing.IsRevoked {
			existing.IsRevoked = true
			models.Touch(&existing)
			r.store.tokens[id] = existing
			return nil
		}
	}
	return ErrTokenNotFound
}

func (r *memoryRefreshTokenRepository) RevokeAllUserTokens(userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, existing := range r.store.tokens {
		if existing.UserID == userID && !existing.IsRevoked {
			existing.IsRevoked = true
			models.Touch(&existing)
			r.store.tokens[id] = existing
		}
	}
	return nil
}

func (r *memoryRefreshTokenRepository) DeleteExpiredTokens() (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	var deleted int64
	for id, existing := range r.store.tokens {
		if existing.ExpiresAt.Before(now) {
			delete(r.store.tokens, id)
			deleted++
		}
	}
	return deleted, nil
}
