package models

// Review is a user's rating of a place; one per (user, place) pair
type Review struct {
	Base
	UserID  string `gorm:"size:36;not null;uniqueIndex:idx_reviews_user_place" json:"user_id"`
	PlaceID string `gorm:"size:36;not null;uniqueIndex:idx_reviews_user_place;index" json:"place_id"`
	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"not null" json:"comment"`
}

// TableName overrides the table name
func (Review) TableName() string {
	return "reviews"
}

func (r *Review) Attribute(name string) (any, bool) {
	switch name {
	case "user_id":
		return r.UserID, true
	case "place_id":
		return r.PlaceID, true
	case "rating":
		return r.Rating, true
	}
	return nil, false
}

// ReviewUpdate cannot move a review to another user or place
type ReviewUpdate struct {
	Rating  *int
	Comment *string
}

func (u ReviewUpdate) Apply(r *Review) {
	if u.Rating != nil {
		r.Rating = *u.Rating
	}
	if u.Comment != nil {
		r.Comment = *u.Comment
	}
}
