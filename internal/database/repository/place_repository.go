package repository

import (
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
)

type placeRepository struct {
	*gormRepository[models.Place, *models.Place]
}

// NewPlaceRepository creates a new place repository instance
func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{gormRepository: newGormRepository[models.Place](db, "Owner", "Amenities")}
}

func (r *placeRepository) ListByOwner(ownerID string) ([]models.Place, error) {
	return r.list("owner_id", ownerID)
}

// ReplaceAmenities swaps the place's amenity links for the given set
func (r *placeRepository) ReplaceAmenities(placeID string, amenityIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Place{}).Where("id = ?", placeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}

		if err := tx.Exec("DELETE FROM place_amenities WHERE place_id = ?", placeID).Error; err != nil {
			return err
		}

		for _, amenityID := range uniqueIDs(amenityIDs) {
			err := tx.Exec("INSERT INTO place_amenities (place_id, amenity_id) VALUES (?, ?)", placeID, amenityID).Error
			if err != nil {
				return translateError(err)
			}
		}
		return nil
	})
}

// Delete removes the place, its reviews and its amenity links in one transaction
func (r *placeRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("place_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM place_amenities WHERE place_id = ?", id).Error; err != nil {
			return err
		}
		return deleteByID[models.Place](tx, id)
	})
}

// uniqueIDs drops repeated ids while keeping the first-seen order
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
