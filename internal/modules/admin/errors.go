package admin

import "errors"

var (
	ErrMissingFields = errors.New("all fields are required")
	ErrUserExists    = errors.New("user already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrAdminNotFound = errors.New("admin not found")
)
