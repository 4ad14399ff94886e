package repository

import (
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
)

type amenityRepository struct {
	*gormRepository[models.Amenity, *models.Amenity]
}

// NewAmenityRepository creates a new amenity repository instance
func NewAmenityRepository(db *gorm.DB) AmenityRepository {
	return &amenityRepository{gormRepository: newGormRepository[models.Amenity](db)}
}

func (r *amenityRepository) GetByName(name string) (*models.Amenity, error) {
	return r.GetByAttribute("name", name)
}

// Delete removes the amenity together with its place links
func (r *amenityRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM place_amenities WHERE amenity_id = ?", id).Error; err != nil {
			return err
		}
		return deleteByID[models.Amenity](tx, id)
	})
}
