package domain

import "time"

// User is a platform account.
//
// OTP and OTPExpiresAt are set together while an e-mail verification code is
// pending and cleared together once the code is confirmed. A soft-deleted
// user keeps only its id; the repository nulls every identifying column.
type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	FirstName    string     `json:"first_name" gorm:"column:first_name"`
	Surname      string     `json:"surname" gorm:"column:surname"`
	Email        string     `json:"email" gorm:"column:email;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"column:password"`
	OTP          string     `json:"-" gorm:"column:otp"`
	OTPExpiresAt *time.Time `json:"-" gorm:"column:otp_expires_at"`
	IsVerified   bool       `json:"is_verified" gorm:"column:is_verified"`
	IsAdmin      bool       `json:"is_admin" gorm:"column:is_admin"`
	IsDeleted    bool       `json:"is_deleted" gorm:"column:is_deleted"`
	PhoneNumber  string     `json:"phone_number,omitempty" gorm:"column:phone_number"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) HasPendingCode(now time.Time) bool {
	return u.OTP != "" && u.OTPExpiresAt != nil && u.OTPExpiresAt.After(now)
}
