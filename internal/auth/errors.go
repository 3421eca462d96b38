package auth

import "errors"

var (
	ErrNotAdmin        = errors.New("caller is not an admin")
	ErrSelfImpersonate = errors.New("cannot impersonate own account")
)
