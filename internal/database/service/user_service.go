package service

import (
	"errors"
	"strings"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/apperror"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/repository"
)

// UserInput holds the fields needed to create a user; Password is plaintext
type UserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	IsAdmin   bool
}

// UserChanges is a partial user update; nil fields are left untouched
type UserChanges struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	IsAdmin   *bool
}

func (f *facade) CreateUser(input UserInput) (*models.User, error) {
	email := strings.TrimSpace(input.Email)
	f.logger.Info("📝 [Facade] Creating user", "email", email)

	if email == "" || strings.TrimSpace(input.Password) == "" {
		return nil, apperror.Validation("Email and password are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperror.Validation("Invalid email format")
	}

	if err := f.ensureEmailFree(email, ""); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		f.logger.Error("❌ [Facade] Failed to hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Base:      models.NewBase(),
		Email:     email,
		Password:  hashed,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		IsAdmin:   input.IsAdmin,
	}

	if err := f.users.Add(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		f.logger.Error("❌ [Facade] Failed to create user", "error", err)
		return nil, err
	}

	f.logger.Info("✅ [Facade] User created", "user_id", user.ID)
	return user, nil
}

func (f *facade) GetUser(id string) (*models.User, error) {
	user, err := f.users.Get(id)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return user, nil
}

func (f *facade) GetUserByEmail(email string) (*models.User, error) {
	user, err := f.users.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return user, nil
}

// ListUsers returns every user, or only those whose first name matches case-insensitively
func (f *facade) ListUsers(firstName string) ([]models.User, error) {
	users, err := f.users.GetAll()
	if err != nil {
		return nil, err
	}

	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return users, nil
	}

	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		if strings.EqualFold(u.FirstName, firstName) {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

func (f *facade) UpdateUser(id string, changes UserChanges) (*models.User, error) {
	f.logger.Info("✏️ [Facade] Updating user", "user_id", id)

	if _, err := f.GetUser(id); err != nil {
		return nil, err
	}

	patch := models.UserUpdate{IsAdmin: changes.IsAdmin}

	if changes.Email != nil {
		email := strings.TrimSpace(*changes.Email)
		if email == "" {
			return nil, apperror.Validation("Email cannot be empty")
		}
		if !emailPattern.MatchString(email) {
			return nil, apperror.Validation("Invalid email format")
		}
		if err := f.ensureEmailFree(email, id); err != nil {
			return nil, err
		}
		patch.Email = &email
	}

	if changes.Password != nil {
		if strings.TrimSpace(*changes.Password) == "" {
			return nil, apperror.Validation("Password cannot be empty")
		}
		hashed, err := HashPassword(*changes.Password)
		if err != nil {
			f.logger.Error("❌ [Facade] Failed to hash password", "error", err)
			return nil, err
		}
		patch.Password = &hashed
	}

	if changes.FirstName != nil {
		name := strings.TrimSpace(*changes.FirstName)
		patch.FirstName = &name
	}
	if changes.LastName != nil {
		name := strings.TrimSpace(*changes.LastName)
		patch.LastName = &name
	}

	user, err := f.users.Update(id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, notFound(err, "User not found")
	}

	f.logger.Info("✅ [Facade] User updated", "user_id", id)
	return user, nil
}

// ensureEmailFree fails with a conflict when email belongs to a user other than ownerID
func (f *facade) ensureEmailFree(email, ownerID string) error {
	existing, err := f.users.GetByEmail(email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		f.logger.Error("❌ [Facade] Database error", "error", err)
		return err
	case existing.ID != ownerID:
		f.logger.Warn("⚠️ [Facade] Email already registered", "email", email)
		return ErrEmailAlreadyExists
	}
	return nil
}
