package application

import (
	"time"

	"github.com/google/uuid"
)

// Application is the canonical record of one seeker's submission to one job.
// The (JobID, ApplicantID) pair is unique; the storage layer enforces it.
type Application struct {
	ID              uuid.UUID `json:"id"`
	JobID           uuid.UUID `json:"jobId"`
	ApplicantID     uuid.UUID `json:"applicantId"`
	Status          Status    `json:"status"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	CurrentLocation string    `json:"currentLocation"`
	Experience      string    `json:"experience"`
	Education       string    `json:"education"`
	CurrentCompany  string    `json:"currentCompany,omitempty"`
	CurrentPosition string    `json:"currentPosition,omitempty"`
	ExpectedSalary  string    `json:"expectedSalary,omitempty"`
	NoticePeriod    string    `json:"noticePeriod,omitempty"`
	PortfolioURL    string    `json:"portfolioUrl,omitempty"`
	LinkedInURL     string    `json:"linkedinUrl,omitempty"`
	CoverLetter     string    `json:"coverLetter,omitempty"`
	ResumePath      string    `json:"resumePath"`
	AppliedAt       time.Time `json:"appliedAt"`
}

// WithJob is an application row joined with current data of its job, used by
// the recruiter dashboard and the seeker's applied-jobs view. Derived read;
// the applications table stays the single source of truth.
type WithJob struct {
	Application
	JobTitle    string `json:"jobTitle"`
	JobCompany  string `json:"jobCompany"`
	JobLocation string `json:"jobLocation"`
	JobCategory string `json:"jobCategory"`
}

// Note is a recruiter remark on an application. Append only.
type Note struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"applicationId"`
	AuthorID      uuid.UUID `json:"authorId"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
}
