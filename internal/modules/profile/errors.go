package profile

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrNothingToUpdate = errors.New("no data provided for update")
	ErrNameTooShort    = errors.New("name must be at least 2 characters long")
	ErrWrongPassword   = errors.New("current password is incorrect")
)
