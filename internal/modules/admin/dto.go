package admin

type AddAdminRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2"`
	Surname   string `json:"surname" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

type UserRow struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Surname   string `json:"surname"`
	Email     string `json:"email"`
	IsDeleted bool   `json:"is_deleted"`
}
