package users

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUsernameTaken     = errors.New("username is already taken")
	ErrEmailRegistered   = errors.New("email is already registered")
	ErrWrongCredentials  = errors.New("wrong username or password")
	ErrUserDisabled      = errors.New("user account is disabled")
	ErrResetTokenInvalid = errors.New("password reset token is invalid or expired")
)
