package dto

import (
	"time"

	"github.com/google/uuid"

	"workly/internal/domain/user"
)

type UserResponse struct {
	ID         uuid.UUID    `json:"id"`
	Email      string       `json:"email"`
	Role       string       `json:"role"`
	FirstName  string       `json:"firstName"`
	LastName   string       `json:"lastName"`
	Company    string       `json:"company,omitempty"`
	IsVerified bool         `json:"isVerified"`
	Profile    user.Profile `json:"profile"`
	LastLogin  *time.Time   `json:"lastLogin,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
}

func FromUser(u user.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Company:    u.Company,
		IsVerified: u.IsVerified,
		Profile:    u.Profile,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
	}
}

// PublicUserResponse is the profile view shown to other users: contact and
// account fields are withheld.
type PublicUserResponse struct {
	ID        uuid.UUID    `json:"id"`
	Role      string       `json:"role"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Company   string       `json:"company,omitempty"`
	Profile   user.Profile `json:"profile"`
}

func FromUserPublic(u user.User) PublicUserResponse {
	return PublicUserResponse{
		ID:        u.ID,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Company:   u.Company,
		Profile:   u.Profile,
	}
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
