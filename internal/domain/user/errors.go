package user

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrLoginNotFound = errors.New("login record not found")
)
