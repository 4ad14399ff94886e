package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
)

// entityPtr constrains PT to *T implementing models.Entity
type entityPtr[T any] interface {
	*T
	models.Entity
}

// gormRepository implements Repository[T] on top of gorm
type gormRepository[T any, PT entityPtr[T]] struct {
	db       *gorm.DB
	preloads []string
}

func newGormRepository[T any, PT entityPtr[T]](db *gorm.DB, preloads ...string) *gormRepository[T, PT] {
	return &gormRepository[T, PT]{db: db, preloads: preloads}
}

// query starts a statement with the configured associations preloaded
func (r *gormRepository[T, PT]) query(db *gorm.DB) *gorm.DB {
	for _, name := range r.preloads {
		db = db.Preload(name, orderByCreation)
	}
	return db
}

func (r *gormRepository[T, PT]) Add(obj *T) error {
	models.EnsureBase(PT(obj))
	return translateError(r.db.Omit(clause.Associations).Create(obj).Error)
}

func (r *gormRepository[T, PT]) Get(id string) (*T, error) {
	var obj T
	err := r.query(r.db).Where("id = ?", id).Take(&obj).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &obj, nil
}

func (r *gormRepository[T, PT]) GetAll() ([]T, error) {
	var objs []T
	if err := r.query(r.db).Scopes(orderByCreation).Find(&objs).Error; err != nil {
		return nil, translateError(err)
	}
	return objs, nil
}

func (r *gormRepository[T, PT]) Update(id string, patch models.Patch[T]) (*T, error) {
	var obj T
	if err := r.db.Where("id = ?", id).Take(&obj).Error; err != nil {
		return nil, translateError(err)
	}

	patch.Apply(&obj)
	// The id is restored in case a patch type ever reaches it
	PT(&obj).Meta().ID = id
	models.Touch(PT(&obj))

	if err := r.db.Omit(clause.Associations).Save(&obj).Error; err != nil {
		return nil, translateError(err)
	}

	return r.Get(id)
}

func (r *gormRepository[T, PT]) Delete(id string) error {
	return deleteByID[T](r.db, id)
}

func (r *gormRepository[T, PT]) GetByAttribute(name string, value any) (*T, error) {
	if _, ok := PT(new(T)).Attribute(name); !ok {
		return nil, ErrUnknownAttribute
	}

	var obj T
	err := r.query(r.db).
		Where(clause.Eq{Column: clause.Column{Name: name}, Value: value}).
		Scopes(orderByCreation).
		Take(&obj).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &obj, nil
}

// list returns the rows matching a single column, oldest first
func (r *gormRepository[T, PT]) list(column string, value any) ([]T, error) {
	var objs []T
	err := r.query(r.db).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Scopes(orderByCreation).
		Find(&objs).Error
	if err != nil {
		return nil, translateError(err)
	}
	return objs, nil
}

func deleteByID[T any](db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func orderByCreation(db *gorm.DB) *gorm.DB {
	return db.Order("created_at").Order("id")
}

// translateError maps gorm and driver errors onto repository errors
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return ErrDuplicate
	default:
		return err
	}
}

// isUniqueViolation catches drivers that do not implement gorm's error translator
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "23505")
}
