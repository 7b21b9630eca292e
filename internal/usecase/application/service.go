package application

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"workly/internal/domain/application"
	"workly/internal/domain/job"
	"workly/internal/infrastructure/storage"
	"workly/internal/usecase"
)

var (
	ErrInvalidID           = errors.New("malformed id")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrDuplicate           = errors.New("you have already applied to this job")
	ErrNotOwner            = errors.New("only the recruiter who posted the job may do this")
	ErrInvalidStatus       = errors.New("unknown application status")
	ErrIllegalTransition   = errors.New("illegal status transition")
	ErrInternal            = errors.New("internal error")
)

// ResumeStore persists validated résumé uploads and removes them again when
// a later step of the same request fails.
type ResumeStore interface {
	Validate(up storage.Upload) error
	Save(up storage.Upload) (string, error)
	Remove(name string) error
}

type ApplyInput struct {
	FullName        string
	Email           string
	Phone           string
	CurrentLocation string
	Experience      string
	Education       string
	CurrentCompany  string
	CurrentPosition string
	ExpectedSalary  string
	NoticePeriod    string
	PortfolioURL    string
	LinkedInURL     string
	CoverLetter     string
}

// StatusCounts always carries all five statuses, zeros included.
type StatusCounts struct {
	Pending   int `json:"pending"`
	Reviewed  int `json:"reviewed"`
	Interview int `json:"interview"`
	Rejected  int `json:"rejected"`
	Hired     int `json:"hired"`
	Total     int `json:"total"`
}

type Stats struct {
	Total              int `json:"total"`
	ChangeFromLastWeek int `json:"changeFromLastWeek"`
	ChangePercentage   int `json:"changePercentage"`
}

type Usecase interface {
	Apply(ctx context.Context, applicantID uuid.UUID, jobID string, in ApplyInput, resume *storage.Upload) (application.Application, error)
	SetStatus(ctx context.Context, callerID uuid.UUID, applicationID, status string) (application.Application, error)
	AddNote(ctx context.Context, callerID uuid.UUID, applicationID, content string) (application.Note, error)
	ListNotes(ctx context.Context, callerID uuid.UUID, applicationID string) ([]application.Note, error)
	ListForRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]application.WithJob, StatusCounts, error)
	ListApplicantsForJob(ctx context.Context, callerID uuid.UUID, jobID string) ([]application.Application, error)
	AppliedJobs(ctx context.Context, applicantID uuid.UUID) ([]application.WithJob, error)
	WeeklyStats(ctx context.Context, applicantID uuid.UUID) (Stats, error)
}

type Service struct {
	apps    application.Repository
	jobs    job.Repository
	resumes ResumeStore
	logger  *log.Logger
	now     func() time.Time
}

func NewService(apps application.Repository, jobs job.Repository, resumes ResumeStore, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{apps: apps, jobs: jobs, resumes: resumes, logger: logger, now: time.Now}
}

// Apply runs the submission pipeline in a fixed order: job lookup, duplicate
// check, form validation, then résumé validation, all before the file
// touches disk. Failures after the file is stored remove it again, so no
// path leaves an orphaned upload or a half-written application.
func (s *Service) Apply(ctx context.Context, applicantID uuid.UUID, jobID string, in ApplyInput, resume *storage.Upload) (application.Application, error) {
	jid, err := uuid.Parse(strings.TrimSpace(jobID))
	if err != nil {
		return application.Application{}, ErrInvalidID
	}

	if _, err := s.jobs.GetByID(ctx, jid); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, ErrInternal
	}

	exists, err := s.apps.ExistsForJobAndApplicant(ctx, jid, applicantID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if exists {
		return application.Application{}, ErrDuplicate
	}

	var violations []string
	required := []struct {
		name  string
		value string
	}{
		{"fullName", in.FullName},
		{"email", in.Email},
		{"phone", in.Phone},
		{"currentLocation", in.CurrentLocation},
		{"experience", in.Experience},
		{"education", in.Education},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			violations = append(violations, f.name+" is required")
		}
	}
	if resume == nil {
		violations = append(violations, "resume file is required")
	} else if err := s.resumes.Validate(*resume); err != nil {
		violations = append(violations, err.Error())
	}
	if len(violations) > 0 {
		return application.Application{}, usecase.NewValidationError(violations...)
	}

	stored, err := s.resumes.Save(*resume)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrTooLarge) {
			return application.Application{}, usecase.NewValidationError(err.Error())
		}
		return application.Application{}, ErrInternal
	}

	a := application.Application{
		ID:              uuid.New(),
		JobID:           jid,
		ApplicantID:     applicantID,
		Status:          application.StatusPending,
		FullName:        strings.TrimSpace(in.FullName),
		Email:           strings.TrimSpace(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		CurrentLocation: strings.TrimSpace(in.CurrentLocation),
		Experience:      in.Experience,
		Education:       in.Education,
		CurrentCompany:  in.CurrentCompany,
		CurrentPosition: in.CurrentPosition,
		ExpectedSalary:  in.ExpectedSalary,
		NoticePeriod:    in.NoticePeriod,
		PortfolioURL:    in.PortfolioURL,
		LinkedInURL:     in.LinkedInURL,
		CoverLetter:     in.CoverLetter,
		ResumePath:      stored,
		AppliedAt:       s.now().UTC(),
	}

	if err := s.apps.Create(ctx, a); err != nil {
		s.removeStored(stored)
		// The unique index closes the check-then-insert race: a concurrent
		// duplicate surfaces here, not as a second record.
		if errors.Is(err, application.ErrDuplicate) {
			return application.Application{}, ErrDuplicate
		}
		return application.Application{}, ErrInternal
	}

	return a, nil
}

// SetStatus verifies ownership before any write, and the repository scopes
// the UPDATE to the owning recruiter as well, so an unauthorized caller can
// never persist a transition.
func (s *Service) SetStatus(ctx context.Context, callerID uuid.UUID, applicationID, status string) (application.Application, error) {
	appID, err := uuid.Parse(strings.TrimSpace(applicationID))
	if err != nil {
		return application.Application{}, ErrInvalidID
	}

	next := application.Status(strings.TrimSpace(status))
	if !application.ValidStatus(next) {
		return application.Application{}, ErrInvalidStatus
	}

	a, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}

	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if j.PostedBy != callerID {
		return application.Application{}, ErrNotOwner
	}

	if !application.CanTransition(a.Status, next) {
		return application.Application{}, ErrIllegalTransition
	}

	updated, err := s.apps.UpdateStatusOwned(ctx, appID, next, callerID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotOwner
		}
		return application.Application{}, ErrInternal
	}
	return updated, nil
}

func (s *Service) AddNote(ctx context.Context, callerID uuid.UUID, applicationID, content string) (application.Note, error) {
	appID, err := uuid.Parse(strings.TrimSpace(applicationID))
	if err != nil {
		return application.Note{}, ErrInvalidID
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return application.Note{}, usecase.NewValidationError("content is required")
	}

	a, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Note{}, ErrApplicationNotFound
		}
		return application.Note{}, ErrInternal
	}

	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return application.Note{}, ErrInternal
	}
	if j.PostedBy != callerID {
		return application.Note{}, ErrNotOwner
	}

	n := application.Note{
		ID:            uuid.New(),
		ApplicationID: appID,
		AuthorID:      callerID,
		Content:       content,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.apps.AddNote(ctx, n); err != nil {
		return application.Note{}, ErrInternal
	}
	return n, nil
}

func (s *Service) ListNotes(ctx context.Context, callerID uuid.UUID, applicationID string) ([]application.Note, error) {
	appID, err := uuid.Parse(strings.TrimSpace(applicationID))
	if err != nil {
		return nil, ErrInvalidID
	}

	a, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, ErrInternal
	}

	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return nil, ErrInternal
	}
	if j.PostedBy != callerID {
		return nil, ErrNotOwner
	}

	notes, err := s.apps.ListNotes(ctx, appID)
	if err != nil {
		return nil, ErrInternal
	}
	return notes, nil
}

func (s *Service) ListForRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]application.WithJob, StatusCounts, error) {
	apps, err := s.apps.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, StatusCounts{}, ErrInternal
	}

	byStatus, err := s.apps.CountByStatusForRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, StatusCounts{}, ErrInternal
	}

	counts := StatusCounts{
		Pending:   byStatus[application.StatusPending],
		Reviewed:  byStatus[application.StatusReviewed],
		Interview: byStatus[application.StatusInterview],
		Rejected:  byStatus[application.StatusRejected],
		Hired:     byStatus[application.StatusHired],
	}
	counts.Total = counts.Pending + counts.Reviewed + counts.Interview + counts.Rejected + counts.Hired

	return apps, counts, nil
}

func (s *Service) ListApplicantsForJob(ctx context.Context, callerID uuid.UUID, jobID string) ([]application.Application, error) {
	jid, err := uuid.Parse(strings.TrimSpace(jobID))
	if err != nil {
		return nil, ErrInvalidID
	}

	j, err := s.jobs.GetByID(ctx, jid)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrInternal
	}
	if j.PostedBy != callerID {
		return nil, ErrNotOwner
	}

	apps, err := s.apps.ListByJob(ctx, jid)
	if err != nil {
		return nil, ErrInternal
	}
	return apps, nil
}

func (s *Service) AppliedJobs(ctx context.Context, applicantID uuid.UUID) ([]application.WithJob, error) {
	apps, err := s.apps.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, ErrInternal
	}
	return apps, nil
}

// WeeklyStats compares the trailing 7 days against the 7 days before that.
// When the prior window is empty the percentage is 100 by convention (or 0
// if this week is empty too), sidestepping the divide by zero.
func (s *Service) WeeklyStats(ctx context.Context, applicantID uuid.UUID) (Stats, error) {
	now := s.now().UTC()
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	total, err := s.apps.CountByApplicant(ctx, applicantID)
	if err != nil {
		return Stats{}, ErrInternal
	}
	current, err := s.apps.CountByApplicantInWindow(ctx, applicantID, weekAgo, now)
	if err != nil {
		return Stats{}, ErrInternal
	}
	prior, err := s.apps.CountByApplicantInWindow(ctx, applicantID, twoWeeksAgo, weekAgo)
	if err != nil {
		return Stats{}, ErrInternal
	}

	st := Stats{
		Total:              total,
		ChangeFromLastWeek: current - prior,
	}
	switch {
	case prior == 0 && current == 0:
		st.ChangePercentage = 0
	case prior == 0:
		st.ChangePercentage = 100
	default:
		st.ChangePercentage = int(math.Round(float64(current-prior) / float64(prior) * 100))
	}
	return st, nil
}

func (s *Service) removeStored(name string) {
	if err := s.resumes.Remove(name); err != nil {
		s.logger.Printf("remove stored resume %q failed: %v", name, err)
	}
}
