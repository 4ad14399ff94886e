package service

import (
	"errors"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/apperror"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/models"
)

// EnsureAdmin creates an administrator from input, or promotes the user already
// registered under that email. An existing password is left untouched.
// Returns the admin and whether it was newly created.
func EnsureAdmin(f Facade, input UserInput) (*models.User, bool, error) {
	existing, err := f.GetUserByEmail(input.Email)
	switch {
	case err == nil:
		if existing.IsAdmin {
			return existing, false, nil
		}
		promoted, err := f.UpdateUser(existing.ID, UserChanges{IsAdmin: ptrTo(true)})
		return promoted, false, err
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, false, err
	}

	input.IsAdmin = true
	user, err := f.CreateUser(input)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func ptrTo[T any](v T) *T { return &v }
