package handler

import (
	"errors"

	"workly/internal/delivery/http/dto"
	"workly/internal/delivery/http/middleware"
	"workly/internal/infrastructure/storage"
	"workly/internal/pkg/response"
	ucapp "workly/internal/usecase/application"

	"github.com/gofiber/fiber/v3"
)

type ApplicationsHandler struct {
	apps ucapp.Usecase
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type addNoteRequest struct {
	Content string `json:"content"`
}

func NewApplicationsHandler(apps ucapp.Usecase) *ApplicationsHandler {
	return &ApplicationsHandler{apps: apps}
}

func (h *ApplicationsHandler) RegisterRoutes(r fiber.Router, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	auth := authMw.Middleware()

	r.Get("/recruiter/applications", h.RecruiterApplications, auth)
	r.Put("/:id/status", h.SetStatus, auth)
	r.Post("/:id/notes", h.AddNote, auth)
	r.Get("/:id/notes", h.ListNotes, auth)
}

func (h *ApplicationsHandler) SetStatus(c fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	var req setStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	updated, err := h.apps.SetStatus(c.Context(), userID, c.Params("id"), req.Status)
	if err != nil {
		return mapApplicationError(err)
	}

	return response.Success(c, fiber.StatusOK, "Status updated", updated)
}

func (h *ApplicationsHandler) AddNote(c fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	var req addNoteRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	note, err := h.apps.AddNote(c.Context(), userID, c.Params("id"), req.Content)
	if err != nil {
		return mapApplicationError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Note added", note)
}

func (h *ApplicationsHandler) ListNotes(c fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	notes, err := h.apps.ListNotes(c.Context(), userID, c.Params("id"))
	if err != nil {
		return mapApplicationError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, notes)
}

func (h *ApplicationsHandler) RecruiterApplications(c fiber.Ctx) error {
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

// resumeUpload adapts the multipart "resume" field into the storage view.
// A missing file is not an error here; the service reports it alongside the
// other validation violations.
func resumeUpload(c fiber.Ctx) (*storage.Upload, func(), error) {
	fh, err := c.FormFile("resume")
	if err != nil || fh == nil {
		return nil, func() {}, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, middleware.NewAppError(fiber.StatusBadRequest, "Unreadable resume upload", nil, err)
	}

	up := &storage.Upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     f,
	}
	return up, func() { _ = f.Close() }, nil
}

func mapApplicationError(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := asValidationAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, ucapp.ErrInvalidID):
		return middleware.NewAppError(fiber.StatusBadRequest, "Malformed id", nil, err)
	case errors.Is(err, ucapp.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, ucapp.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, ucapp.ErrDuplicate):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied to this job", nil, err)
	case errors.Is(err, ucapp.ErrNotOwner):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, ucapp.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown application status", nil, err)
	case errors.Is(err, ucapp.ErrIllegalTransition):
		return middleware.NewAppError(fiber.StatusBadRequest, "Illegal status transition", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
