package service

import (
	"errors"
	"log/slog"
	"regexp"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/apperror"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/repository"
)

// Facade is the single entry point for user, amenity, place and review business rules
type Facade interface {
	// Users
	CreateUser(input UserInput) (*models.User, error)
	GetUser(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	ListUsers(firstName string) ([]models.User, error)
	UpdateUser(id string, changes UserChanges) (*models.User, error)

	// Amenities
	CreateAmenity(name string) (*models.Amenity, error)
	GetAmenity(id string) (*models.Amenity, error)
	ListAmenities() ([]models.Amenity, error)
	UpdateAmenity(id, name string) (*models.Amenity, error)
	DeleteAmenity(id string) error

	// Places
	CreatePlace(ownerID string, input PlaceInput) (*models.Place, error)
	GetPlace(id string) (*models.Place, error)
	ListPlaces(ownerID string) ([]models.Place, error)
	UpdatePlace(id string, changes PlaceChanges) (*models.Place, error)
	DeletePlace(id string) error
	ListPlaceAmenities(placeID string) ([]models.Amenity, error)
	ListPlaceReviews(placeID string) ([]models.Review, error)

	// Reviews
	CreateReview(userID, placeID string, input ReviewInput) (*models.Review, error)
	GetReview(id string) (*models.Review, error)
	ListReviews() ([]models.Review, error)
	UpdateReview(id string, changes ReviewChanges) (*models.Review, error)
	DeleteReview(id string) error
}

type facade struct {
	users     repository.UserRepository
	places    repository.PlaceRepository
	amenities repository.AmenityRepository
	reviews   repository.ReviewRepository
	logger    *slog.Logger
}

// NewFacade creates a facade over the given repositories
func NewFacade(repos *repository.Repositories, logger *slog.Logger) Facade {
	return &facade{
		users:     repos.Users,
		places:    repos.Places,
		amenities: repos.Amenities,
		reviews:   repos.Reviews,
		logger:    logger,
	}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Service errors
var (
	ErrEmailAlreadyExists = apperror.Conflict("Email already registered")
	ErrInvalidCredentials = apperror.Unauthorized("Invalid email or password")
	ErrInvalidToken       = apperror.Unauthorized("Invalid or expired token")
	ErrReviewExists       = apperror.Conflict("User has already reviewed this place")
	ErrReviewImmutable    = apperror.Validation("Cannot change the user or place associated with a review")
)

// notFound turns a repository miss into a descriptive NotFound error and passes other errors through
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(format, args...)
	}
	return err
}
