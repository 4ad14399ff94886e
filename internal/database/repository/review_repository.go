package repository

import (
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
)

type reviewRepository struct {
	*gormRepository[models.Review, *models.Review]
}

// NewReviewRepository creates a new review repository instance
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{gormRepository: newGormRepository[models.Review](db)}
}

func (r *reviewRepository) ListByPlace(placeID string) ([]models.Review, error) {
	return r.list("place_id", placeID)
}

func (r *reviewRepository) GetByUserAndPlace(userID, placeID string) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("user_id = ? AND place_id = ?", userID, placeID).Take(&review).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &review, nil
}
