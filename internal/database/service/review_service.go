package service

import (
	"errors"
	"strings"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/apperror"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/repository"
)

type ReviewInput struct {
	Rating  int
	Comment string
}

// ReviewChanges is a partial review update. UserID and PlaceID are only
// carried so an attempt to move the review can be rejected.
type ReviewChanges struct {
	Rating  *int
	Comment *string
	UserID  *string
	PlaceID *string
}

func (f *facade) CreateReview(userID, placeID string, input ReviewInput) (*models.Review, error) {
	f.logger.Info("📝 [Facade] Creating review", "user_id", userID, "place_id", placeID)

	if _, err := f.users.Get(userID); err != nil {
		return nil, notFound(err, "User with ID '%s' not found", userID)
	}
	if _, err := f.places.Get(placeID); err != nil {
		return nil, notFound(err, "Place with ID '%s' not found", placeID)
	}

	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}
	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return nil, apperror.Validation("Review comment is required")
	}

	_, err := f.reviews.GetByUserAndPlace(userID, placeID)
	switch {
	case err == nil:
		f.logger.Warn("⚠️ [Facade] Duplicate review", "user_id", userID, "place_id", placeID)
		return nil, ErrReviewExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	review := &models.Review{
		Base:    models.NewBase(),
		UserID:  userID,
		PlaceID: placeID,
		Rating:  input.Rating,
		Comment: comment,
	}

	if err := f.reviews.Add(review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrReviewExists
		}
		f.logger.Error("❌ [Facade] Failed to create review", "error", err)
		return nil, err
	}

	f.logger.Info("✅ [Facade] Review created", "review_id", review.ID)
	return review, nil
}

func (f *facade) GetReview(id string) (*models.Review, error) {
	review, err := f.reviews.Get(id)
	if err != nil {
		return nil, notFound(err, "Review not found")
	}
	return review, nil
}

func (f *facade) ListReviews() ([]models.Review, error) {
	return f.reviews.GetAll()
}

func (f *facade) UpdateReview(id string, changes ReviewChanges) (*models.Review, error) {
	current, err := f.GetReview(id)
	if err != nil {
		return nil, err
	}

	if (changes.UserID != nil && *changes.UserID != current.UserID) ||
		(changes.PlaceID != nil && *changes.PlaceID != current.PlaceID) {
		return nil, ErrReviewImmutable
	}

	patch := models.ReviewUpdate{Rating: changes.Rating}
	if changes.Rating != nil {
		if err := validateRating(*changes.Rating); err != nil {
			return nil, err
		}
	}
	if changes.Comment != nil {
		comment := strings.TrimSpace(*changes.Comment)
		if comment == "" {
			return nil, apperror.Validation("Review comment is required")
		}
		patch.Comment = &comment
	}

	review, err := f.reviews.Update(id, patch)
	if err != nil {
		return nil, notFound(err, "Review not found")
	}

	f.logger.Info("✅ [Facade] Review updated", "review_id", id)
	return review, nil
}

func (f *facade) DeleteReview(id string) error {
	if err := f.reviews.Delete(id); err != nil {
		return notFound(err, "Review not found")
	}

	f.logger.Info("🗑️ [Facade] Review deleted", "review_id", id)
	return nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return apperror.Validation("Rating must be an integer between 1 and 5")
	}
	return nil
}
