package auth

import "errors"

type SignupDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SigninDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries a freshly signed access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

var (
	errCredentialsTaken     = errors.New("credentials taken")
	errIncorrectCredentials = errors.New("incorrect credentials")
)
