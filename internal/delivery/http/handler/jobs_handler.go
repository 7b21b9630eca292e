package handler

import (
	"errors"

	"workly/internal/delivery/http/dto"
	"workly/internal/delivery/http/middleware"
	"workly/internal/pkg/response"
	ucapp "workly/internal/usecase/application"
	ucjob "workly/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	jobs ucjob.Usecase
	apps ucapp.Usecase
}

type createJobRequest struct {
	Title               string `json:"title"`
	Company             string `json:"company"`
	Location            string `json:"location"`
	Type                string `json:"type"`
	WorkType            string `json:"workType"`
	Category            string `json:"category"`
	Description         string `json:"description"`
	Responsibilities    string `json:"responsibilities"`
	RequiredSkills      string `json:"requiredSkills"`
	Experience          string `json:"experience"`
	SalaryRange         string `json:"salaryRange"`
	ApplicationDeadline string `json:"applicationDeadline"`
	WorkHours           string `json:"workHours"`
	HowToApply          string `json:"howToApply"`
	ContactEmail        string `json:"contactEmail"`
	Website             string `json:"website"`
	Benefits            string `json:"benefits"`
	StartDate           string `json:"startDate"`
	Vacancies           string `json:"vacancies"`
}

func NewJobsHandler(jobs ucjob.Usecase, apps ucapp.Usecase) *JobsHandler {
	return &JobsHandler{jobs: jobs, apps: apps}
}

// RegisterRoutes wires the /jobs group. Static segments are registered
// before the :id routes so /jobs/public is never captured as an id.
func (h *JobsHandler) RegisterRoutes(r fiber.Router, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	auth := authMw.Middleware()

	r.Get("/public", h.ListPublic)
	r.Get("/categories", h.Categories)
	r.Get("/applications/recruiter", h.RecruiterApplications, auth)
	r.Post("/", h.Create, auth)
	r.Get("/", h.ListOwn, auth)
	r.Post("/:id/apply", h.Apply, auth)
	r.Get("/:id/applicants", h.Applicants, auth)
	r.Get("/:id", h.Get)
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	created, err := h.jobs.Create(c.Context(), userID, ucjob.CreateInput{
		Title:               req.Title,
		Company:             req.Company,
		Location:            req.Location,
		Type:                req.Type,
		WorkType:            req.WorkType,
		Category:            req.Category,
		Description:         req.Description,
		Responsibilities:    req.Responsibilities,
		RequiredSkills:      req.RequiredSkills,
		Experience:          req.Experience,
		SalaryRange:         req.SalaryRange,
		ApplicationDeadline: req.ApplicationDeadline,
		WorkHours:           req.WorkHours,
		HowToApply:          req.HowToApply,
		ContactEmail:        req.ContactEmail,
		Website:             req.Website,
		Benefits:            req.Benefits,
		StartDate:           req.StartDate,
		Vacancies:           req.Vacancies,
	})
	if err != nil {
		return mapJobError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Job posted", created)
}

func (h *JobsHandler) ListOwn(c fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	jobs, err := h.jobs.ListOwn(c.Context(), userID)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobListResponse{Jobs: jobs})
}

func (h *JobsHandler) ListPublic(c fiber.Ctx) error {
	jobs, err := h.jobs.ListPublic(c.Context())
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobListResponse{Jobs: jobs})
}

func (h *JobsHandler) Categories(c fiber.Ctx) error {
	counts, err := h.jobs.Categories(c.Context())
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CategoryListResponse{Categories: counts})
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	j, err := h.jobs.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, j)
}

func (h *JobsHandler) Apply(c fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	in := ucapp.ApplyInput{
		FullName:        c.FormValue("fullName"),
		Email:           c.FormValue("email"),
		Phone:           c.FormValue("phone"),
		CurrentLocation: c.FormValue("currentLocation"),
		Experience:      c.FormValue("experience"),
		Education:       c.FormValue("education"),
		CurrentCompany:  c.FormValue("currentCompany"),
		CurrentPosition: c.FormValue("currentPosition"),
		ExpectedSalary:  c.FormValue("expectedSalary"),
		NoticePeriod:    c.FormValue("noticePeriod"),
		PortfolioURL:    c.FormValue("portfolioUrl"),
		LinkedInURL:     c.FormValue("linkedinUrl"),
		CoverLetter:     c.FormValue("coverLetter"),
	}

	up, cleanup, err := resumeUpload(c)
	if err != nil {
		return err
	}
	defer cleanup()

	a, err := h.apps.Apply(c.Context(), userID, c.Params("id"), in, up)
	if err != nil {
		return mapApplicationError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Application submitted", dto.ApplyResponse{
		ApplicationID: a.ID,
		Status:        a.Status,
	})
}

func (h *JobsHandler) Applicants(c fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	apps, err := h.apps.ListApplicantsForJob(c.Context(), userID, c.Params("id"))
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ApplicantListResponse{Applicants: apps})
}

func (h *JobsHandler) RecruiterApplications(c fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	apps, counts, err := h.apps.ListForRecruiter(c.Context(), userID)
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.RecruiterApplicationsResponse{
		Applications: apps,
		Counts:       counts,
	})
}

func mapJobError(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := asValidationAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, ucjob.ErrInvalidID):
		return middleware.NewAppError(fiber.StatusBadRequest, "Malformed job id", nil, err)
	case errors.Is(err, ucjob.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
