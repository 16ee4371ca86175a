package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"rentspot/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service contains all business logic for registration, e-mail
// verification and the session lifecycle. It holds no state between calls;
// everything durable lives behind the repositories.
type Service struct {
	users             UserRepository
	sessions          RefreshTokenRepository
	signer            TokenSigner
	mailer            Mailer
	otpTTL            time.Duration
	maxActiveSessions int
}

func NewService(
	users UserRepository,
	sessions RefreshTokenRepository,
	signer TokenSigner,
	mailer Mailer,
	otpTTL time.Duration,
	maxActiveSessions int,
) *Service {
	return &Service{
		users:             users,
		sessions:          sessions,
		signer:            signer,
		mailer:            mailer,
		otpTTL:            otpTTL,
		maxActiveSessions: maxActiveSessions,
	}
}

// Register creates an unverified account with a pending verification code
// and dispatches the code by e-mail. A duplicate email fails with a
// conflict error that tells verified and unverified apart, so the caller
// can offer a resend.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*UserPublic, error) {
	firstName := strings.TrimSpace(req.FirstName)
	surname := strings.TrimSpace(req.Surname)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if firstName == "" || surname == "" || email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		if !existing.IsVerified {
			return nil, ErrEmailExistsUnverified
		}
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(s.otpTTL)

	user := &domain.User{
		FirstName:    firstName,
		Surname:      surname,
		Email:        email,
		PasswordHash: string(hash),
		OTP:          code,
		OTPExpiresAt: &expiresAt,
		IsVerified:   false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.dispatchCode(ctx, user.Email, code)

	return publicUser(user), nil
}

// VerifyCode confirms e-mail ownership. A wrong code and an expired code
// fail with the same error, and a code that was already consumed (cleared
// on success) cannot verify again.
func (s *Service) VerifyCode(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(code) == "" {
		return ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	now := time.Now()
	if user.OTP == "" || user.OTP != code || user.OTPExpiresAt == nil || !user.OTPExpiresAt.After(now) {
		return ErrInvalidOTP
	}

	return s.users.MarkVerified(ctx, user.ID)
}

// ResendCode unconditionally replaces the pending code with a fresh one.
// Rate limiting is the boundary layer's job, not this one's.
func (s *Service) ResendCode(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	code, err := generateVerificationCode()
	if err != nil {
		return err
	}
	if err := s.users.SetOTP(ctx, user.ID, code, time.Now().Add(s.otpTTL)); err != nil {
		return err
	}

	s.dispatchCode(ctx, user.Email, code)

	return nil
}

// Login checks credentials, admits a new refresh session under the per-user
// cap and returns the account projection with a fresh token pair. The
// verification check runs only after the password matched, so it cannot be
// used to probe for existing emails.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, ErrNotVerified
	}

	accessToken, err := s.signer.GenerateAccessToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.signer.GenerateRefreshToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	session := &domain.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.signer.RefreshTTL()),
	}
	if err := s.sessions.Admit(ctx, session, s.maxActiveSessions); err != nil {
		return nil, err
	}

	return &LoginResult{
		User:         *publicUser(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh mints a new access token for a live refresh session. The ledger
// row is checked first, by its stored expiry and revoked flag, then the
// token signature. The refresh token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if _, err := s.sessions.GetActive(ctx, refreshToken, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrRefreshExpiredOrRevoked
		}
		return "", err
	}

	claims, err := s.signer.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	return s.signer.GenerateAccessToken(claims.UserID, claims.Email, claims.IsAdmin)
}

// Logout revokes the session behind the refresh token. The signature gate
// keeps a malformed token from guess-revoking other sessions; a valid token
// with no matching row is a no-op.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.signer.ValidateRefreshToken(refreshToken); err != nil {
		return ErrInvalidRefreshToken
	}
	return s.sessions.Revoke(ctx, refreshToken)
}

// LogoutAll revokes every active session of the account. Idempotent.
func (s *Service) LogoutAll(ctx context.Context, userID int64) error {
	return s.sessions.RevokeAllForUser(ctx, userID)
}

// dispatchCode sends the code without letting a delivery failure roll back
// an already-committed account.
func (s *Service) dispatchCode(ctx context.Context, email, code string) {
	if err := s.mailer.SendVerificationCode(ctx, email, code); err != nil {
		log.Printf("verification email dispatch failed email=%s err=%v", email, err)
	}
}

func publicUser(u *domain.User) *UserPublic {
	return &UserPublic{
		ID:        u.ID,
		FirstName: u.FirstName,
		Surname:   u.Surname,
		Email:     u.Email,
	}
}
