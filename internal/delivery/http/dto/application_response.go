package dto

import (
	"github.com/google/uuid"

	"workly/internal/domain/application"
	appuc "workly/internal/usecase/application"
)

type ApplyResponse struct {
	ApplicationID uuid.UUID          `json:"applicationId"`
	Status        application.Status `json:"status"`
}

type RecruiterApplicationsResponse struct {
	Applications []application.WithJob `json:"applications"`
	Counts       appuc.StatusCounts    `json:"counts"`
}

type ApplicantListResponse struct {
	Applicants []application.Application `json:"applicants"`
}

type AppliedJobsResponse struct {
	Applications []application.WithJob `json:"applications"`
}
