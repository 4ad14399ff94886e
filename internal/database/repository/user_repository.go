package repository

import (
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
)

type userRepository struct {
	*gormRepository[models.User, *models.User]
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{gormRepository: newGormRepository[models.User](db)}
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return r.GetByAttribute("email", email)
}
