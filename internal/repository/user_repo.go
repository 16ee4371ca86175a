package repository

import (
	"context"
	"strings"
	"time"

	"rentspot/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// userModel mirrors the users table. Identifying columns are nullable so a
// soft delete can blank them while keeping the row.
type userModel struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	FirstName    *string    `gorm:"column:first_name"`
	Surname      *string    `gorm:"column:surname"`
	Email        *string    `gorm:"column:email;uniqueIndex"`
	Password     *string    `gorm:"column:password"`
	OTP          *string    `gorm:"column:otp"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at"`
	IsVerified   bool       `gorm:"column:is_verified"`
	IsAdmin      bool       `gorm:"column:is_admin"`
	IsDeleted    bool       `gorm:"column:is_deleted"`
	PhoneNumber  *string    `gorm:"column:phone_number"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	u := &domain.User{
		ID:           m.ID,
		IsVerified:   m.IsVerified,
		IsAdmin:      m.IsAdmin,
		IsDeleted:    m.IsDeleted,
		OTPExpiresAt: m.OTPExpiresAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.FirstName != nil {
		u.FirstName = *m.FirstName
	}
	if m.Surname != nil {
		u.Surname = *m.Surname
	}
	if m.Email != nil {
		u.Email = *m.Email
	}
	if m.Password != nil {
		u.PasswordHash = *m.Password
	}
	if m.OTP != nil {
		u.OTP = *m.OTP
	}
	if m.PhoneNumber != nil {
		u.PhoneNumber = *m.PhoneNumber
	}
	return u
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	m := userModel{
		ID:           u.ID,
		IsVerified:   u.IsVerified,
		IsAdmin:      u.IsAdmin,
		IsDeleted:    u.IsDeleted,
		OTPExpiresAt: u.OTPExpiresAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.FirstName != "" {
		v := u.FirstName
		m.FirstName = &v
	}
	if u.Surname != "" {
		v := u.Surname
		m.Surname = &v
	}
	if email != "" {
		m.Email = &email
	}
	if u.PasswordHash != "" {
		v := u.PasswordHash
		m.Password = &v
	}
	if u.OTP != "" {
		v := u.OTP
		m.OTP = &v
	}
	if u.PhoneNumber != "" {
		v := u.PhoneNumber
		m.PhoneNumber = &v
	}
	return m
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

// SetOTP replaces the pending verification code and its expiry.
func (r *UserRepository) SetOTP(ctx context.Context, userID int64, code string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"otp":            code,
			"otp_expires_at": expiresAt,
		}).Error
}

// MarkVerified confirms the account and clears the code and its expiry in
// the same update, so a cleared code can never be re-verified.
func (r *UserRepository) MarkVerified(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"otp":            nil,
			"otp_expires_at": nil,
			"is_verified":    true,
		}).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Update("password", passwordHash)
	return tx.RowsAffected, tx.Error
}

// UpdateFields applies a partial profile update. Returns rows affected so
// the caller can distinguish a missing user.
func (r *UserRepository) UpdateFields(ctx context.Context, userID int64, fields map[string]any) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Updates(fields)
	return tx.RowsAffected, tx.Error
}

// SoftDelete marks the row deleted and blanks every identifying column.
// The row itself is never removed.
func (r *UserRepository) SoftDelete(ctx context.Context, userID int64) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ? AND is_deleted = ?", userID, false).
		Updates(map[string]any{
			"is_deleted":     true,
			"first_name":     nil,
			"surname":        nil,
			"email":          nil,
			"password":       nil,
			"otp":            nil,
			"otp_expires_at": nil,
			"phone_number":   nil,
		})
	return tx.RowsAffected, tx.Error
}

func (r *UserRepository) SetAdmin(ctx context.Context, userID int64, isAdmin bool) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ? AND is_admin = ?", userID, !isAdmin).
		Update("is_admin", isAdmin)
	return tx.RowsAffected, tx.Error
}

func (r *UserRepository) ListNonAdmins(ctx context.Context) ([]domain.User, error) {
	var models []userModel
	if err := r.db.WithContext(ctx).
		Where("is_admin = ?", false).
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(models))
	for _, m := range models {
		users = append(users, *toDomainUser(m))
	}
	return users, nil
}

func (r *UserRepository) DB() *gorm.DB { return r.db }
