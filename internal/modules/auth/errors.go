package auth

import "errors"

var (
	ErrMissingFields         = errors.New("all fields are required")
	ErrEmailExists           = errors.New("account with this email already exists")
	ErrEmailExistsUnverified = errors.New("account with this email already exists but is not verified")
	ErrUserNotFound          = errors.New("user not found")

	// ErrInvalidOTP deliberately covers both a wrong and an expired code.
	ErrInvalidOTP = errors.New("invalid or expired verification code")

	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("wrong email or password")

	ErrNotVerified = errors.New("account has not been verified")

	ErrRefreshExpiredOrRevoked = errors.New("refresh token has expired or is revoked")
	ErrInvalidRefreshToken     = errors.New("invalid refresh token")
)
