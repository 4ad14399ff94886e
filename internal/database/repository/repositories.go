package repository

import (
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
)

// NewGormRepositories builds the relational repositories on a migrated database
func NewGormRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(db),
		Places:    NewPlaceRepository(db),
		Amenities: NewAmenityRepository(db),
		Reviews:   NewReviewRepository(db),
		Tokens:    NewRefreshTokenRepository(db),
	}
}

// NewMemoryRepositories builds transient repositories sharing one in-process store
func NewMemoryRepositories() *Repositories {
	store := newMemoryStore()

	users := &memoryRepository[models.User, *models.User]{
		store:      store,
		rows:       store.users,
		uniqueKeys: []func(*models.User) string{func(u *models.User) string { return u.Email }},
	}
	amenities := &memoryRepository[models.Amenity, *models.Amenity]{
		store:      store,
		rows:       store.amenities,
		uniqueKeys: []func(*models.Amenity) string{func(a *models.Amenity) string { return a.Name }},
	}
	places := &memoryRepository[models.Place, *models.Place]{
		store: store,
		rows:  store.places,
		strip: func(p *models.Place) {
			p.Owner = nil
			p.Amenities = nil
		},
		hydrate: store.hydratePlace,
	}
	reviews := &memoryRepository[models.Review, *models.Review]{
		store: store,
		rows:  store.reviews,
		uniqueKeys: []func(*models.Review) string{func(r *models.Review) string {
			return r.UserID + "|" + r.PlaceID
		}},
	}

	return &Repositories{
		Users:     &memoryUserRepository{users},
		Places:    &memoryPlaceRepository{places},
		Amenities: &memoryAmenityRepository{amenities},
		Reviews:   &memoryReviewRepository{reviews},
		Tokens:    &memoryRefreshTokenRepository{store: store},
	}
}
