package admin

import (
	"context"
	"errors"
	"strings"

	"rentspot/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service implements administrative user management. Admin accounts are
// created pre-verified; regular users are soft-deleted, never removed.
type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) AddAdmin(ctx context.Context, req AddAdminRequest) error {
	firstName := strings.TrimSpace(req.FirstName)
	surname := strings.TrimSpace(req.Surname)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if firstName == "" || surname == "" || email == "" || req.Password == "" {
		return ErrMissingFields
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.users.Create(ctx, &domain.User{
		FirstName:    firstName,
		Surname:      surname,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
		IsVerified:   true,
	})
}

// RemoveAdmin demotes the account; the user itself stays.
func (s *Service) RemoveAdmin(ctx context.Context, userID int64) error {
	rows, err := s.users.SetAdmin(ctx, userID, false)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAdminNotFound
	}
	return nil
}

func (s *Service) ListUsers(ctx context.Context) ([]UserRow, error) {
	users, err := s.users.ListNonAdmins(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow{
			ID:        u.ID,
			FirstName: u.FirstName,
			Surname:   u.Surname,
			Email:     u.Email,
			IsDeleted: u.IsDeleted,
		})
	}
	return rows, nil
}

// DeleteUser soft-deletes the account: the row stays, every identifying
// column is blanked.
func (s *Service) DeleteUser(ctx context.Context, userID int64) error {
	rows, err := s.users.SoftDelete(ctx, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}
