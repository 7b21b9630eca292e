package auth

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"workly/internal/domain/user"
	"workly/internal/pkg/jwt"
	"workly/internal/usecase"
)

const bcryptCost = 12

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrUserNotFound           = errors.New("user not found")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
	Company   string
}

type LoginInput struct {
	Email    string
	Password string
}

type GoogleLoginInput struct {
	Email       string
	DisplayName string
	PhotoURL    string
	Role        string
}

type Usecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, string, error)
	Login(ctx context.Context, in LoginInput) (user.User, string, error)
	GoogleLogin(ctx context.Context, in GoogleLoginInput) (user.User, string, error)
	Verify(ctx context.Context, token string) (user.User, bool)
	Me(ctx context.Context, userID uuid.UUID) (user.User, error)
}

type Service struct {
	users  user.Repository
	tokens jwt.Service
	logger *log.Logger
	now    func() time.Time
}

func NewService(users user.Repository, tokens jwt.Service, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{users: users, tokens: tokens, logger: logger, now: time.Now}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, string, error) {
	var violations []string

	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	email := normalizeEmail(in.Email)
	company := strings.TrimSpace(in.Company)

	if firstName == "" {
		violations = append(violations, "firstName is required")
	}
	if lastName == "" {
		violations = append(violations, "lastName is required")
	}
	if email == "" {
		violations = append(violations, "email is required")
	} else if !isValidEmail(email) {
		violations = append(violations, "email is malformed")
	}
	if strings.TrimSpace(in.Password) == "" {
		violations = append(violations, "password is required")
	} else if len(in.Password) < 8 {
		violations = append(violations, "password must be at least 8 characters")
	}
	if !user.ValidRole(in.Role) {
		violations = append(violations, "role must be job_seeker or recruiter")
	}
	if in.Role == user.RoleRecruiter && company == "" {
		violations = append(violations, "company is required for recruiters")
	}

	if len(violations) > 0 {
		return user.User{}, "", usecase.NewValidationError(violations...)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, "", ErrInternal
	}
	if exists {
		return user.User{}, "", ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return user.User{}, "", ErrInternal
	}
	hashStr := string(hash)

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: &hashStr,
		Role:         in.Role,
		FirstName:    firstName,
		LastName:     lastName,
		Company:      company,
	}

	if err := s.users.Create(ctx, u); err != nil {
		// The unique index on email wins concurrent registrations.
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, "", ErrEmailAlreadyRegistered
		}
		return user.User{}, "", ErrInternal
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return user.User{}, "", ErrInternal
	}

	token, err := s.tokens.Generate(created.ID)
	if err != nil {
		return user.User{}, "", ErrInternal
	}

	return created.Sanitized(), token, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, "", ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, "", ErrInvalidCredentials
		}
		return user.User{}, "", ErrInternal
	}

	// Accounts created through Google login carry no password.
	if u.PasswordHash == nil {
		return user.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, u.ID, now); err != nil {
		s.logger.Printf("update last_login failed for %s: %v", u.ID, err)
	}
	u.LastLogin = &now

	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		return user.User{}, "", ErrInternal
	}

	return u.Sanitized(), token, nil
}

func (s *Service) GoogleLogin(ctx context.Context, in GoogleLoginInput) (user.User, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !isValidEmail(email) {
		return user.User{}, "", usecase.NewValidationError("email is malformed")
	}

	u, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		// Existing account: the stored role is authoritative. A mismatched
		// role claim on the login request must not reroute the account.
		if in.Role != "" && in.Role != u.Role {
			s.logger.Printf("google login role mismatch for %s: requested %q, stored %q", u.ID, in.Role, u.Role)
		}
	case errors.Is(err, user.ErrNotFound):
		role := in.Role
		if !user.ValidRole(role) {
			role = user.RoleJobSeeker
		}
		first, last := splitDisplayName(in.DisplayName)
		u = user.User{
			ID:         uuid.New(),
			Email:      email,
			Role:       role,
			FirstName:  first,
			LastName:   last,
			IsVerified: true,
		}
		if err := s.users.Create(ctx, u); err != nil {
			if errors.Is(err, user.ErrEmailTaken) {
				// Lost a create race; the account exists now.
				if u, err = s.users.GetByEmail(ctx, email); err != nil {
					return user.User{}, "", ErrInternal
				}
			} else {
				return user.User{}, "", ErrInternal
			}
		} else if u, err = s.users.GetByID(ctx, u.ID); err != nil {
			return user.User{}, "", ErrInternal
		}
	default:
		return user.User{}, "", ErrInternal
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, u.ID, now); err != nil {
		s.logger.Printf("update last_login failed for %s: %v", u.ID, err)
	}
	u.LastLogin = &now

	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		return user.User{}, "", ErrInternal
	}

	return u.Sanitized(), token, nil
}

// Verify reports whether the token resolves to a live account. Malformed or
// expired tokens are a false result, never an error, so callers can degrade.
func (s *Service) Verify(ctx context.Context, token string) (user.User, bool) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return user.User{}, false
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return user.User{}, false
	}
	return u.Sanitized(), true
}

func (s *Service) Me(ctx context.Context, userID uuid.UUID) (user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}
	return u.Sanitized(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func splitDisplayName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	first, last, found := strings.Cut(name, " ")
	if !found {
		return first, first
	}
	return first, strings.TrimSpace(last)
}
