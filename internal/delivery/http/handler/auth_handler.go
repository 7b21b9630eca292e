package handler

import (
	"errors"

	"workly/internal/delivery/http/dto"
	"workly/internal/delivery/http/middleware"
	"workly/internal/pkg/response"
	ucauth "workly/internal/usecase/auth"
	ucuser "workly/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AuthHandler struct {
	auth  ucauth.Usecase
	users ucuser.Usecase
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Company   string `json:"company"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	Role        string `json:"role"`
}

func NewAuthHandler(auth ucauth.Usecase, users ucuser.Usecase) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/google-login", h.GoogleLogin)
	r.Get("/verify-token", h.VerifyToken)
	r.Get("/me", h.Me, authMw.Middleware())
	r.Get("/profile/:id?", h.Profile, authMw.Optional())
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	usr, token, err := h.auth.Register(c.Context(), ucauth.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		Company:   req.Company,
	})
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Account created", dto.AuthResponse{
		User:  dto.FromUser(usr),
		Token: token,
	})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	usr, token, err := h.auth.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AuthResponse{
		User:  dto.FromUser(usr),
		Token: token,
	})
}

func (h *AuthHandler) GoogleLogin(c fiber.Ctx) error {
	var req googleLoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	usr, token, err := h.auth.GoogleLogin(c.Context(), ucauth.GoogleLoginInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Role:        req.Role,
	})
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AuthResponse{
		User:  dto.FromUser(usr),
		Token: token,
	})
}

// VerifyToken reports validity in the body rather than the status code so
// the client can branch without treating 401 as a transport failure.
func (h *AuthHandler) VerifyToken(c fiber.Ctx) error {
	token, ok := middleware.BearerToken(c.Get("Authorization"))
	if !ok {
		return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"valid": false})
	}

	usr, valid := h.auth.Verify(c.Context(), token)
	if !valid {
		return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"valid": false})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"valid": true,
		"user":  dto.FromUser(usr),
	})
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	usr, err := h.auth.Me(c.Context(), userID)
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromUser(usr))
}

// Profile serves a public profile by id, or the caller's own when the id is
// omitted and a valid token was presented.
func (h *AuthHandler) Profile(c fiber.Ctx) error {
	idParam := c.Params("id")
	if idParam == "" {
		userID, err := authedUserID(c)
		if err != nil {
			return err
		}
		usr, err := h.users.Get(c.Context(), userID)
		if err != nil {
			return mapUserError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromUser(usr))
	}

	id, err := uuid.Parse(idParam)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Malformed user id", nil, err)
	}

	usr, err := h.users.Get(c.Context(), id)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromUserPublic(usr))
}

func mapAuthError(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := asValidationAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		// Deliberately generic: never reveal which field was wrong.
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, ucauth.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func mapUserError(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := asValidationAppError(err); ok {
		return appErr
	}
	if errors.Is(err, ucuser.ErrNotFound) {
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
