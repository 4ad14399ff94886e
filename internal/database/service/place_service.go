package service

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/apperror"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
)

const maxPlaceNameLength = 100

// PlaceInput holds the fields needed to create a place
type PlaceInput struct {
	Name          string
	Description   string
	Address       string
	Latitude      float64
	Longitude     float64
	NumberOfRooms int
	Bathrooms     int
	Price         float64
	MaxGuests     int
	AmenityIDs    []string
}

// PlaceChanges is a partial place update. It has no owner field, so ownership cannot move.
// A non-nil AmenityIDs replaces the whole amenity set.
type PlaceChanges struct {
	Name          *string
	Description   *string
	Address       *string
	Latitude      *float64
	Longitude     *float64
	NumberOfRooms *int
	Bathrooms     *int
	Price         *float64
	MaxGuests     *int
	AmenityIDs    *[]string
}

func (c PlaceChanges) patch() models.PlaceUpdate {
	update := models.PlaceUpdate{
		Description:   c.Description,
		Address:       c.Address,
		Latitude:      c.Latitude,
		Longitude:     c.Longitude,
		NumberOfRooms: c.NumberOfRooms,
		Bathrooms:     c.Bathrooms,
		Price:         c.Price,
		MaxGuests:     c.MaxGuests,
	}
	if c.Name != nil {
		name := strings.TrimSpace(*c.Name)
		update.Name = &name
	}
	return update
}

func (f *facade) CreatePlace(ownerID string, input PlaceInput) (*models.Place, error) {
	f.logger.Info("🏠 [Facade] Creating place", "owner_id", ownerID, "name", input.Name)

	if _, err := f.users.Get(ownerID); err != nil {
		return nil, notFound(err, "Owner with ID '%s' not found", ownerID)
	}

	place := &models.Place{
		Base:          models.NewBase(),
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Address:       input.Address,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		NumberOfRooms: input.NumberOfRooms,
		Bathrooms:     input.Bathrooms,
		Price:         input.Price,
		MaxGuests:     input.MaxGuests,
		OwnerID:       ownerID,
	}

	if err := validatePlace(place); err != nil {
		return nil, err
	}
	if err := f.ensureAmenitiesExist(input.AmenityIDs); err != nil {
		return nil, err
	}

	if err := f.places.Add(place); err != nil {
		f.logger.Error("❌ [Facade] Failed to create place", "error", err)
		return nil, err
	}

	if len(input.AmenityIDs) > 0 {
		if err := f.places.ReplaceAmenities(place.ID, input.AmenityIDs); err != nil {
			f.logger.Error("❌ [Facade] Failed to link amenities", "place_id", place.ID, "error", err)
			return nil, err
		}
	}

	f.logger.Info("✅ [Facade] Place created", "place_id", place.ID)
	return f.GetPlace(place.ID)
}

func (f *facade) GetPlace(id string) (*models.Place, error) {
	place, err := f.places.Get(id)
	if err != nil {
		return nil, notFound(err, "Place not found")
	}
	return place, nil
}

// ListPlaces returns every place, or only those owned by ownerID when it is set
func (f *facade) ListPlaces(ownerID string) ([]models.Place, error) {
	if ownerID != "" {
		return f.places.ListByOwner(ownerID)
	}
	return f.places.GetAll()
}

func (f *facade) UpdatePlace(id string, changes PlaceChanges) (*models.Place, error) {
	f.logger.Info("✏️ [Facade] Updating place", "place_id", id)

	current, err := f.GetPlace(id)
	if err != nil {
		return nil, err
	}

	patch := changes.patch()

	// Validate the place as it would look after the update
	merged := *current
	patch.Apply(&merged)
	if err := validatePlace(&merged); err != nil {
		return nil, err
	}

	if changes.AmenityIDs != nil {
		if err := f.ensureAmenitiesExist(*changes.AmenityIDs); err != nil {
			return nil, err
		}
	}

	if _, err := f.places.Update(id, patch); err != nil {
		return nil, notFound(err, "Place not found")
	}

	if changes.AmenityIDs != nil {
		if err := f.places.ReplaceAmenities(id, *changes.AmenityIDs); err != nil {
			return nil, notFound(err, "Place not found")
		}
	}

	f.logger.Info("✅ [Facade] Place updated", "place_id", id)
	return f.GetPlace(id)
}

func (f *facade) DeletePlace(id string) error {
	if err := f.places.Delete(id); err != nil {
		return notFound(err, "Place not found")
	}

	f.logger.Info("🗑️ [Facade] Place deleted", "place_id", id)
	return nil
}

func (f *facade) ListPlaceAmenities(placeID string) ([]models.Amenity, error) {
	place, err := f.GetPlace(placeID)
	if err != nil {
		return nil, err
	}
	if place.Amenities == nil {
		return []models.Amenity{}, nil
	}
	return place.Amenities, nil
}

func (f *facade) ListPlaceReviews(placeID string) ([]models.Review, error) {
	if _, err := f.GetPlace(placeID); err != nil {
		return nil, err
	}
	return f.reviews.ListByPlace(placeID)
}

func (f *facade) ensureAmenitiesExist(ids []string) error {
	for _, id := range ids {
		if _, err := f.amenities.Get(id); err != nil {
			return notFound(err, "Amenity with ID '%s' not found", id)
		}
	}
	return nil
}

// validatePlace checks required fields and numeric ranges. The comparisons are
// written so NaN fails them.
func validatePlace(p *models.Place) error {
	if p.Name == "" {
		return apperror.Validation("Place name is required")
	}
	if utf8.RuneCountInString(p.Name) > maxPlaceNameLength {
		return apperror.Validation("Place name must be at most %d characters", maxPlaceNameLength)
	}
	if !(p.Price > 0) || math.IsInf(p.Price, 0) {
		return apperror.Validation("Price must be a positive number")
	}
	if !(p.Latitude >= -90 && p.Latitude <= 90) {
		return apperror.Validation("Latitude must be between -90 and 90")
	}
	if !(p.Longitude >= -180 && p.Longitude <= 180) {
		return apperror.Validation("Longitude must be between -180 and 180")
	}
	if p.NumberOfRooms < 1 {
		return apperror.Validation("Number of rooms must be at least 1")
	}
	if p.Bathrooms < 0 {
		return apperror.Validation("Bathrooms cannot be negative")
	}
	if p.MaxGuests < 1 {
		return apperror.Validation("Max guests must be at least 1")
	}
	return nil
}
