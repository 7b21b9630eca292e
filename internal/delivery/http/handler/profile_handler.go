package handler

import (
	"workly/internal/delivery/http/dto"
	"workly/internal/delivery/http/middleware"
	"workly/internal/domain/user"
	"workly/internal/pkg/response"
	ucapp "workly/internal/usecase/application"
	ucuser "workly/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	users ucuser.Usecase
	apps  ucapp.Usecase
}

type updateProfileRequest struct {
	Headline          string `json:"headline"`
	Phone             string `json:"phone"`
	SalaryExpectation string `json:"salaryExpectation"`
	Bio               string `json:"bio"`
	Location          string `json:"location"`
	Website           string `json:"website"`
	LinkedIn          string `json:"linkedin"`
	GitHub            string `json:"github"`
}

func NewProfileHandler(users ucuser.Usecase, apps ucapp.Usecase) *ProfileHandler {
	return &ProfileHandler{users: users, apps: apps}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	auth := authMw.Middleware()

	r.Get("/", h.Get, auth)
	r.Put("/", h.Update, auth)
	r.Get("/applied-jobs", h.AppliedJobs, auth)
	r.Get("/applied-jobs/stats", h.Stats, auth)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
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

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	usr, err := h.users.UpdateProfile(c.Context(), userID, user.Profile{
		Headline:          req.Headline,
		Phone:             req.Phone,
		SalaryExpectation: req.SalaryExpectation,
		Bio:               req.Bio,
		Location:          req.Location,
		Website:           req.Website,
		LinkedIn:          req.LinkedIn,
		GitHub:            req.GitHub,
	})
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated", dto.FromUser(usr))
}

func (h *ProfileHandler) AppliedJobs(c fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	apps, err := h.apps.AppliedJobs(c.Context(), userID)
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AppliedJobsResponse{Applications: apps})
}

func (h *ProfileHandler) Stats(c fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.apps.WeeklyStats(c.Context(), userID)
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
}
