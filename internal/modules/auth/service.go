package auth

import (
	"context"
	"errors"

	"github.com/tracknest/core/internal/models"
	"github.com/tracknest/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Signup creates an account and signs in straight away. Email uniqueness is
// enforced by the database index; the duplicate-key translation covers the
// concurrent-signup race a prior SELECT would miss.
func (s *Service) Signup(ctx context.Context, dto *SignupDTO) (*TokenResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.UserModel{
		Email:    dto.Email,
		Password: string(hash),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errCredentialsTaken
		}
		return nil, err
	}

	return s.issueToken(&user)
}

// Signin verifies credentials and returns a signed token. Unknown email and
// wrong password produce the same error, so the endpoint never confirms
// whether an address has an account.
func (s *Service) Signin(ctx context.Context, dto *SigninDTO) (*TokenResponse, error) {
	var user models.UserModel
	if err := s.db.WithContext(ctx).Where("email = ?", dto.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errIncorrectCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		return nil, errIncorrectCredentials
	}

	return s.issueToken(&user)
}

func (s *Service) issueToken(user *models.UserModel) (*TokenResponse, error) {
	token, err := jwt.Sign(user.ID, user.Email, jwt.DefaultTTL)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: token}, nil
}
