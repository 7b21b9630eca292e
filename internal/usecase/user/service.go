package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"workly/internal/domain/user"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrInternal = errors.New("internal error")
)

type Usecase interface {
	Get(ctx context.Context, id uuid.UUID) (user.User, error)
	UpdateProfile(ctx context.Context, ownerID uuid.UUID, p user.Profile) (user.User, error)
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return u.Sanitized(), nil
}

// UpdateProfile touches only the profile bag; email, role and credentials
// are not updatable through this path.
func (s *Service) UpdateProfile(ctx context.Context, ownerID uuid.UUID, p user.Profile) (user.User, error) {
	u, err := s.users.UpdateProfile(ctx, ownerID, p)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return u.Sanitized(), nil
}
