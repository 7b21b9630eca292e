package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("application not found")
	ErrDuplicate = errors.New("application already exists for this job and applicant")
)

type Repository interface {
	// Create inserts the record; a unique-index violation on
	// (job_id, applicant_id) surfaces as ErrDuplicate.
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ExistsForJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)

	// UpdateStatusOwned persists a transition scoped to the owning
	// recruiter: the UPDATE matches only if the application's job was
	// posted by recruiterID, so a non-owner can never write.
	UpdateStatusOwned(ctx context.Context, id uuid.UUID, status Status, recruiterID uuid.UUID) (Application, error)

	AddNote(ctx context.Context, n Note) error
	ListNotes(ctx context.Context, applicationID uuid.UUID) ([]Note, error)

	ListByJob(ctx context.Context, jobID uuid.UUID) ([]Application, error)
	ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]WithJob, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]WithJob, error)

	CountByStatusForRecruiter(ctx context.Context, recruiterID uuid.UUID) (map[Status]int, error)
	CountByApplicant(ctx context.Context, applicantID uuid.UUID) (int, error)
	CountByApplicantInWindow(ctx context.Context, applicantID uuid.UUID, from, to time.Time) (int, error)
}
