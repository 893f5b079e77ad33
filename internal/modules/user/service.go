package user

import (
	"context"
	"errors"

	"github.com/tracknest/core/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Info returns the authenticated user's profile. The password hash never
// leaves the model thanks to its json:"-" tag.
func (s *Service) Info(ctx context.Context, userID string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errAccountNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePassword rotates the password after re-verifying the current one.
func (s *Service) UpdatePassword(ctx context.Context, userID string, dto *UpdatePasswordDTO) error {
	var user models.UserModel
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errAccountNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.CurrentPassword)); err != nil {
		return errWrongPassword
	}
	if dto.CurrentPassword == dto.NewPassword {
		return errSamePassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).
		Model(&user).
		Update("password", string(hash)).Error
}
