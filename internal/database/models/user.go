package models

// User represents the user domain entity
type User struct {
	Base
	Email     string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password  string `gorm:"size:128;not null" json:"-"`
	FirstName string `gorm:"size:50" json:"first_name"`
	LastName  string `gorm:"size:50" json:"last_name"`
	IsAdmin   bool   `gorm:"not null;default:false" json:"is_admin"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

func (u *User) Attribute(name string) (any, bool) {
	switch name {
	case "email":
		return u.Email, true
	case "first_name":
		return u.FirstName, true
	case "last_name":
		return u.LastName, true
	case "is_admin":
		return u.IsAdmin, true
	}
	return nil, false
}

// UserUpdate lists the user fields that may change after creation.
// Password carries an already hashed value.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Password  *string
	IsAdmin   *bool
}

func (p UserUpdate) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.IsAdmin != nil {
		u.IsAdmin = *p.IsAdmin
	}
}
