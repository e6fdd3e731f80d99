package users

import (
	"errors"

	"github.com/google/uuid"
	"github.com/vbreban/accounts-backend/internal/models"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository is the persistence boundary for user records. Records are
// addressable by email, by id, and by pending verification token.
type Repository interface {
	ByEmail(email string) (*models.User, error)
	ByID(id uuid.UUID) (*models.User, error)
	// ByVerificationToken looks up a record holding the given verification
	// token. With onlyUnverified set, records that already completed
	// verification are excluded.
	ByVerificationToken(token string, onlyUnverified bool) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	DeleteByEmail(email string) error
}
