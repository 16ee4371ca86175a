package profile

type Profile struct {
	FirstName   string `json:"first_name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// UpdateProfileRequest carries a partial update; nil fields stay untouched.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	Surname     *string `json:"surname,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}
