package repository

import (
	"errors"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/apperror"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
)

// Repository is the storage contract shared by every entity
type Repository[T any] interface {
	Add(obj *T) error
	Get(id string) (*T, error)
	GetAll() ([]T, error)
	Update(id string, patch models.Patch[T]) (*T, error)
	Delete(id string) error
	GetByAttribute(name string, value any) (*T, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Repository[models.User]
	GetByEmail(email string) (*models.User, error)
}

// AmenityRepository defines the interface for amenity data operations
type AmenityRepository interface {
	Repository[models.Amenity]
	GetByName(name string) (*models.Amenity, error)
}

// PlaceRepository defines the interface for place data operations.
// Get and GetAll return places with Owner and Amenities loaded; Delete
// also removes the place's reviews and amenity links.
type PlaceRepository interface {
	Repository[models.Place]
	ListByOwner(ownerID string) ([]models.Place, error)
	ReplaceAmenities(placeID string, amenityIDs []string) error
}

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	Repository[models.Review]
	ListByPlace(placeID string) ([]models.Review, error)
	GetByUserAndPlace(userID, placeID string) (*models.Review, error)
}

// RefreshTokenRepository defines the interface for refresh token operations
type RefreshTokenRepository interface {
	Create(token *models.RefreshToken) error
	FindByToken(token string) (*models.RefreshToken, error)
	RevokeToken(token string) error
	RevokeAllUserTokens(userID string) error
	DeleteExpiredTokens() (int64, error)
}

// Repositories bundles one repository per entity
type Repositories struct {
	Users     UserRepository
	Places    PlaceRepository
	Amenities AmenityRepository
	Reviews   ReviewRepository
	Tokens    RefreshTokenRepository
}

// Repository errors
var (
	ErrNotFound         = apperror.NotFound("record not found")
	ErrDuplicate        = apperror.Conflict("duplicate record")
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrTokenNotFound    = apperror.NotFound("token not found")
	ErrTokenExpired     = apperror.Unauthorized("token expired")
)
