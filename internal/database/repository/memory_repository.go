package repository

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
)

// memoryStore holds every in-memory table behind a single lock, so
// cascading deletes touch all tables atomically.
type memoryStore struct {
	mu        sync.RWMutex
	users     map[string]models.User
	amenities map[string]models.Amenity
	places    map[string]models.Place
	reviews   map[string]models.Review
	tokens    map[string]models.RefreshToken
	// placeID -> set of amenity ids
	links map[string]map[string]struct{}
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:     make(map[string]models.User),
		amenities: make(map[string]models.Amenity),
		places:    make(map[string]models.Place),
		reviews:   make(map[string]models.Review),
		tokens:    make(map[string]models.RefreshToken),
		links:     make(map[string]map[string]struct{}),
	}
}

// memoryRepository implements Repository[T] over one map of the store.
// Values are stored and returned by copy.
type memoryRepository[T any, PT entityPtr[T]] struct {
	store *memoryStore
	rows  map[string]T
	// uniqueKeys return "" when the key does not apply to a row
	uniqueKeys []func(*T) string
	// strip clears association fields before a row is stored
	strip func(*T)
	// hydrate fills association fields on a copy; called with the lock held
	hydrate func(*T)
}

func (r *memoryRepository[T, PT]) Add(obj *T) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	models.EnsureBase(PT(obj))
	id := PT(obj).Meta().ID
	if _, exists := r.rows[id]; exists {
		return ErrDuplicate
	}
	if r.violatesUnique(obj, id) {
		return ErrDuplicate
	}

	r.rows[id] = r.stored(obj)
	return nil
}

func (r *memoryRepository[T, PT]) Get(id string) (*T, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.getLocked(id)
}

func (r *memoryRepository[T, PT]) GetAll() ([]T, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.filterLocked(func(*T) bool { return true }), nil
}

func (r *memoryRepository[T, PT]) Update(id string, patch models.Patch[T]) (*T, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}

	patch.Apply(&row)
	PT(&row).Meta().ID = id
	models.Touch(PT(&row))

	if r.violatesUnique(&row, id) {
		return nil, ErrDuplicate
	}

	r.rows[id] = r.stored(&row)
	return r.getLocked(id)
}

func (r *memoryRepository[T, PT]) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.deleteLocked(id)
}

func (r *memoryRepository[T, PT]) GetByAttribute(name string, value any) (*T, error) {
	if _, ok := PT(new(T)).Attribute(name); !ok {
		return nil, ErrUnknownAttribute
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := r.filterLocked(func(row *T) bool {
		got, _ := PT(row).Attribute(name)
		return attributeEqual(got, value)
	})
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	return &matches[0], nil
}

func (r *memoryRepository[T, PT]) getLocked(id string) (*T, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	if r.hydrate != nil {
		r.hydrate(&row)
	}
	return &row, nil
}

func (r *memoryRepository[T, PT]) deleteLocked(id string) error {
	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// filterLocked returns hydrated copies of matching rows, oldest first
func (r *memoryRepository[T, PT]) filterLocked(keep func(*T) bool) []T {
	out := make([]T, 0, len(r.rows))
	for _, row := range r.rows {
		if !keep(&row) {
			continue
		}
		if r.hydrate != nil {
			r.hydrate(&row)
		}
		out = append(out, row)
	}
	sortByCreation[T, PT](out)
	return out
}

func (r *memoryRepository[T, PT]) violatesUnique(obj *T, id string) bool {
	for _, key := range r.uniqueKeys {
		want := key(obj)
		if want == "" {
			continue
		}
		for otherID, row := range r.rows {
			if otherID != id && key(&row) == want {
				return true
			}
		}
	}
	return false
}

func (r *memoryRepository[T, PT]) stored(obj *T) T {
	row := *obj
	if r.strip != nil {
		r.strip(&row)
	}
	return row
}

func sortByCreation[T any, PT entityPtr[T]](rows []T) {
	slices.SortFunc(rows, func(a, b T) int {
		ma, mb := PT(&a).Meta(), PT(&b).Meta()
		if c := ma.CreatedAt.Compare(mb.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(ma.ID, mb.ID)
	})
}

// attributeEqual compares loosely so an int64 query matches an int column, like SQL does
func attributeEqual(a, b any) bool {
	if a == b {
		return true
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

type memoryUserRepository struct {
	*memoryRepository[models.User, *models.User]
}

func (r *memoryUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.GetByAttribute("email", email)
}

type memoryAmenityRepository struct {
	*memoryRepository[models.Amenity, *models.Amenity]
}

func (r *memoryAmenityRepository) GetByName(name string) (*models.Amenity, error) {
	return r.GetByAttribute("name", name)
}

func (r *memoryAmenityRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.deleteLocked(id); err != nil {
		return err
	}
	for _, set := range r.store.links {
		delete(set, id)
	}
	return nil
}

type memoryPlaceRepository struct {
	*memoryRepository[models.Place, *models.Place]
}

func (r *memoryPlaceRepository) ListByOwner(ownerID string) ([]models.Place, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.filterLocked(func(p *models.Place) bool { return p.OwnerID == ownerID }), nil
}

func (r *memoryPlaceRepository) ReplaceAmenities(placeID string, amenityIDs []string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.rows[placeID]; !ok {
		return ErrNotFound
	}

	set := make(map[string]struct{}, len(amenityIDs))
	for _, id := range amenityIDs {
		set[id] = struct{}{}
	}
	r.store.links[placeID] = set
	return nil
}

func (r *memoryPlaceRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.deleteLocked(id); err != nil {
		return err
	}
	delete(r.store.links, id)
	for reviewID, review := range r.store.reviews {
		if review.PlaceID == id {
			delete(r.store.reviews, reviewID)
		}
	}
	return nil
}

// hydratePlace loads the owner and amenities for a place copy
func (s *memoryStore) hydratePlace(p *models.Place) {
	p.Owner = nil
	if owner, ok := s.users[p.OwnerID]; ok {
		p.Owner = &owner
	}

	p.Amenities = make([]models.Amenity, 0, len(s.links[p.ID]))
	for amenityID := range s.links[p.ID] {
		if amenity, ok := s.amenities[amenityID]; ok {
			p.Amenities = append(p.Amenities, amenity)
		}
	}
	sortByCreation(p.Amenities)
}

type memoryReviewRepository struct {
	*memoryRepository[models.Review, *models.Review]
}

func (r *memoryReviewRepository) ListByPlace(placeID string) ([]models.Review, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.filterLocked(func(rv *models.Review) bool { return rv.PlaceID == placeID }), nil
}

func (r *memoryReviewRepository) GetByUserAndPlace(userID, placeID string) (*models.Review, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := r.filterLocked(func(rv *models.Review) bool {
		return rv.UserID == userID && rv.PlaceID == placeID
	})
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	return &matches[0], nil
}
