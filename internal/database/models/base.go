package models

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the identity and timestamps shared by every stored entity
type Base struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// NewBase returns metadata with a fresh UUID and both timestamps set to now
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Meta exposes the embedded metadata so generic code can reach it
func (b *Base) Meta() *Base {
	return b
}

// Metadata is implemented by every model embedding Base
type Metadata interface {
	Meta() *Base
}

// Entity is implemented by every model a Repository can store
type Entity interface {
	Metadata
	// Attribute returns the value of an allow-listed lookup attribute
	Attribute(name string) (any, bool)
}

// Patch is an allow-listed update applied to a stored entity
type Patch[T any] interface {
	Apply(*T)
}

// Touch refreshes the updated_at timestamp
func Touch(e Metadata) {
	meta := e.Meta()
	now := time.Now().UTC()
	if now.Before(meta.CreatedAt) {
		now = meta.CreatedAt
	}
	meta.UpdatedAt = now
}

// EnsureBase fills in an id and timestamps when the caller left them empty
func EnsureBase(e Metadata) {
	meta := e.Meta()
	fresh := NewBase()
	if meta.ID == "" {
		meta.ID = fresh.ID
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = fresh.CreatedAt
	}
	if meta.UpdatedAt.IsZero() {
		meta.UpdatedAt = meta.CreatedAt
	}
}
