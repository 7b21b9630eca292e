package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleJobSeeker = "job_seeker"
	RoleRecruiter = "recruiter"
)

func ValidRole(role string) bool {
	return role == RoleJobSeeker || role == RoleRecruiter
}

type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash *string    `json:"-"`
	Role         string     `json:"role"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Company      string     `json:"company,omitempty"`
	IsVerified   bool       `json:"isVerified"`
	Profile      Profile    `json:"profile"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"-"`
}

// Profile is the sparse bag of optional display fields, stored as jsonb.
type Profile struct {
	Headline          string `json:"headline,omitempty"`
	Phone             string `json:"phone,omitempty"`
	SalaryExpectation string `json:"salaryExpectation,omitempty"`
	Bio               string `json:"bio,omitempty"`
	Location          string `json:"location,omitempty"`
	Website           string `json:"website,omitempty"`
	LinkedIn          string `json:"linkedin,omitempty"`
	GitHub            string `json:"github,omitempty"`
}

// Sanitized returns a copy safe to hand to clients.
func (u User) Sanitized() User {
	u.PasswordHash = nil
	return u
}
