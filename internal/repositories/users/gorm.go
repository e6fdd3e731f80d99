package users

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vbreban/accounts-backend/internal/models"
	"gorm.io/gorm"
)

// GormRepository stores users in Postgres through GORM. Email uniqueness is
// enforced by the unique index; a losing concurrent insert surfaces as
// ErrDuplicateEmail.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) ByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	return &user, nil
}

func (r *GormRepository) ByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user by id: %w", err)
	}
	return &user, nil
}

func (r *GormRepository) ByVerificationToken(token string, onlyUnverified bool) (*models.User, error) {
	q := r.db.Where("verification_token = ?", token)
	if onlyUnverified {
		q = q.Where("verify = ?", false)
	}

	var user models.User
	if err := q.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user by verification token: %w", err)
	}
	return &user, nil
}

func (r *GormRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *GormRepository) Update(user *models.User) error {
	// Save writes all fields, including token columns being set back to NULL.
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *GormRepository) DeleteByEmail(email string) error {
	res := r.db.Where("email = ?", email).Delete(&models.User{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
