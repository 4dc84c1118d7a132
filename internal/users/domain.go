package users

import "github.com/gymmax/gymmax/internal/authz"

// User represents a staff account. Members live in their own table;
// staff roles never include MEMBER.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	PasswordHash string     `json:"-"`
	Role         authz.Role `json:"role"`
	IsActive     bool       `json:"isActive"`
}

// CreateUserInput is the payload for registering a staff account.
type CreateUserInput struct {
	Username  string     `json:"username" validate:"required,max=50"`
	FirstName string     `json:"firstName" validate:"omitempty,max=50"`
	LastName  string     `json:"lastName" validate:"omitempty,max=50"`
	IsActive  *bool      `json:"isActive" validate:"required"`
	Role      authz.Role `json:"role" validate:"required,oneof=ADMIN RECEPTION SELLER TRAINER"`
	Password  string     `json:"password" validate:"required,max=25"`
}

// EditUserInput is the payload for editing a staff account.
type EditUserInput struct {
	Username  string     `json:"username" validate:"required,max=50"`
	FirstName string     `json:"firstName" validate:"omitempty,max=50"`
	LastName  string     `json:"lastName" validate:"omitempty,max=50"`
	IsActive  *bool      `json:"isActive" validate:"required"`
	Role      authz.Role `json:"role" validate:"required,oneof=ADMIN RECEPTION SELLER TRAINER"`
}

// UpdatePasswordInput carries a replacement password.
type UpdatePasswordInput struct {
	Password string `json:"password" validate:"required,max=25"`
}
