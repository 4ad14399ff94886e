package models

// Place is a rentable property owned by a user
type Place struct {
	Base
	Name          string  `gorm:"size:100;not null" json:"name"`
	Description   string  `json:"description"`
	Address       string  `gorm:"size:255" json:"address"`
	Latitude      float64 `gorm:"not null" json:"latitude"`
	Longitude     float64 `gorm:"not null" json:"longitude"`
	NumberOfRooms int     `gorm:"not null" json:"number_of_rooms"`
	Bathrooms     int     `gorm:"not null" json:"bathrooms"`
	Price         float64 `gorm:"not null" json:"price"`
	MaxGuests     int     `gorm:"not null" json:"max_guests"`
	OwnerID       string  `gorm:"size:36;not null;index" json:"owner_id"`

	// Relationships
	Owner     *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Amenities []Amenity `gorm:"many2many:place_amenities" json:"amenities"`
}

// TableName overrides the table name
func (Place) TableName() string {
	return "places"
}

func (p *Place) Attribute(name string) (any, bool) {
	switch name {
	case "name":
		return p.Name, true
	case "owner_id":
		return p.OwnerID, true
	}
	return nil, false
}

// PlaceUpdate has no owner field: ownership never changes after creation
type PlaceUpdate struct {
	Name          *string
	Description   *string
	Address       *string
	Latitude      *float64
	Longitude     *float64
	NumberOfRooms *int
	Bathrooms     *int
	Price         *float64
	MaxGuests     *int
}

func (u PlaceUpdate) Apply(p *Place) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Address != nil {
		p.Address = *u.Address
	}
	if u.Latitude != nil {
		p.Latitude = *u.Latitude
	}
	if u.Longitude != nil {
		p.Longitude = *u.Longitude
	}
	if u.NumberOfRooms != nil {
		p.NumberOfRooms = *u.NumberOfRooms
	}
	if u.Bathrooms != nil {
		p.Bathrooms = *u.Bathrooms
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.MaxGuests != nil {
		p.MaxGuests = *u.MaxGuests
	}
}
