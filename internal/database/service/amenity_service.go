package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/apperror"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/repository"
)

const maxAmenityNameLength = 50

func (f *facade) CreateAmenity(name string) (*models.Amenity, error) {
	name, err := validateAmenityName(name)
	if err != nil {
		return nil, err
	}

	if err := f.ensureAmenityNameFree(name, ""); err != nil {
		return nil, err
	}

	amenity := &models.Amenity{Base: models.NewBase(), Name: name}
	if err := f.amenities.Add(amenity); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, amenityExists(name)
		}
		return nil, err
	}

	f.logger.Info("✅ [Facade] Amenity created", "amenity_id", amenity.ID, "name", name)
	return amenity, nil
}

func (f *facade) GetAmenity(id string) (*models.Amenity, error) {
	amenity, err := f.amenities.Get(id)
	if err != nil {
		return nil, notFound(err, "Amenity not found")
	}
	return amenity, nil
}

func (f *facade) ListAmenities() ([]models.Amenity, error) {
	return f.amenities.GetAll()
}

func (f *facade) UpdateAmenity(id, name string) (*models.Amenity, error) {
	if _, err := f.GetAmenity(id); err != nil {
		return nil, err
	}

	name, err := validateAmenityName(name)
	if err != nil {
		return nil, err
	}

	if err := f.ensureAmenityNameFree(name, id); err != nil {
		return nil, err
	}

	amenity, err := f.amenities.Update(id, models.AmenityUpdate{Name: &name})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, amenityExists(name)
		}
		return nil, notFound(err, "Amenity not found")
	}

	f.logger.Info("✅ [Facade] Amenity updated", "amenity_id", id, "name", name)
	return amenity, nil
}

func (f *facade) DeleteAmenity(id string) error {
	if err := f.amenities.Delete(id); err != nil {
		return notFound(err, "Amenity not found")
	}

	f.logger.Info("🗑️ [Facade] Amenity deleted", "amenity_id", id)
	return nil
}

func (f *facade) ensureAmenityNameFree(name, ownerID string) error {
	existing, err := f.amenities.GetByName(name)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != ownerID:
		return amenityExists(name)
	}
	return nil
}

func validateAmenityName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.Validation("Amenity name is required")
	}
	if utf8.RuneCountInString(name) > maxAmenityNameLength {
		return "", apperror.Validation("Amenity name must be at most %d characters", maxAmenityNameLength)
	}
	return name, nil
}

func amenityExists(name string) error {
	return apperror.Conflict("Amenity '%s' already exists", name)
}
