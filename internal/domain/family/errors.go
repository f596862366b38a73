package family

import "errors"

var (
	ErrFamilyNotFound  = errors.New("family not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyInFamily = errors.New("user is already part of a family")
)
