package members

import (
	"time"

	"github.com/gymmax/gymmax/internal/authz"
)

// Status tracks the commercial state of a membership.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspend   Status = "SUSPEND"
	StatusCancelled Status = "CANCELLED"
)

// Member represents a gym member account.
type Member struct {
	ID           int64      `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	FullName     string     `json:"fullName"`
	PasswordHash string     `json:"-"`
	Address      string     `json:"address"`
	PhoneNumber  string     `json:"phoneNumber"`
	Role         authz.Role `json:"role"`
	Email        string     `json:"email"`
	ImgURL       string     `json:"imgUrl"`
	Status       Status     `json:"status"`
	IsActive     bool       `json:"isActive"`
	CreationDate time.Time  `json:"creationDate"`
	ExpiredDate  time.Time  `json:"expiredDate"`
	IsEntry      bool       `json:"isEntry"`
	IsFirstLogin bool       `json:"isFirstLogin"`
}

// ThinMember is the reduced listing shape used by the front desk.
type ThinMember struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}

// CreateMemberInput is the payload for registering a new member.
type CreateMemberInput struct {
	FirstName    string `json:"firstName" validate:"required,max=50"`
	LastName     string `json:"lastName" validate:"required,max=50"`
	Address      string `json:"address" validate:"omitempty,max=100"`
	PhoneNumber  string `json:"phoneNumber" validate:"required,max=10"`
	Email        string `json:"email" validate:"required,email,max=100"`
	ImgURL       string `json:"imgUrl" validate:"omitempty,max=255"`
	Status       Status `json:"status" validate:"required,oneof=ACTIVE SUSPEND CANCELLED"`
	CreationDate string `json:"creationDate" validate:"required,max=25"`
	ExpiredDate  string `json:"expiredDate" validate:"required,max=25"`
}

// EditMemberInput is the payload for editing an existing member.
type EditMemberInput struct {
	FirstName    string `json:"firstName" validate:"required,max=50"`
	LastName     string `json:"lastName" validate:"required,max=50"`
	Address      string `json:"address" validate:"omitempty,max=100"`
	PhoneNumber  string `json:"phoneNumber" validate:"required,max=10"`
	Email        string `json:"email" validate:"required,email,max=100"`
	Status       Status `json:"status" validate:"required,oneof=ACTIVE SUSPEND CANCELLED"`
	CreationDate string `json:"creationDate" validate:"required,max=25"`
	ExpiredDate  string `json:"expiredDate" validate:"required,max=25"`
}

// UpdatePasswordInput carries a replacement password.
type UpdatePasswordInput struct {
	Password string `json:"password" validate:"required,max=25"`
}
