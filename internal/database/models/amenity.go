package models

// Amenity is a named feature a place can offer
type Amenity struct {
	Base
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

// TableName overrides the table name
func (Amenity) TableName() string {
	return "amenities"
}

func (a *Amenity) Attribute(name string) (any, bool) {
	if name == "name" {
		return a.Name, true
	}
	return nil, false
}

type AmenityUpdate struct {
	Name *string
}

func (p AmenityUpdate) Apply(a *Amenity) {
	if p.Name != nil {
		a.Name = *p.Name
	}
}
