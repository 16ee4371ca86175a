package profile

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &Profile{
		FirstName:   user.FirstName,
		Surname:     user.Surname,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
	}, nil
}

// UpdateProfile applies only the provided fields. Names shorter than two
// characters are rejected.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) error {
	fields := map[string]any{}

	if req.FirstName != nil {
		if len(strings.TrimSpace(*req.FirstName)) < 2 {
			return ErrNameTooShort
		}
		fields["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.Surname != nil {
		if len(strings.TrimSpace(*req.Surname)) < 2 {
			return ErrNameTooShort
		}
		fields["surname"] = strings.TrimSpace(*req.Surname)
	}
	if req.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.PhoneNumber != nil {
		fields["phone_number"] = strings.TrimSpace(*req.PhoneNumber)
	}

	if len(fields) == 0 {
		return ErrNothingToUpdate
	}

	rows, err := s.users.UpdateFields(ctx, userID, fields)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ChangePassword replaces the stored hash after the current password has
// been confirmed.
func (s *Service) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	rows, err := s.users.UpdatePassword(ctx, userID, string(hash))
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}
