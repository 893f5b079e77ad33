package user

import "errors"

type UpdatePasswordDTO struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

var (
	errSamePassword    = errors.New("new password matches the current one")
	errWrongPassword   = errors.New("current password is wrong")
	errAccountNotFound = errors.New("account not found")
)
