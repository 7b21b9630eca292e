package job

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"workly/internal/domain/job"
	"workly/internal/usecase"
)

var (
	ErrInvalidID = errors.New("malformed job id")
	ErrNotFound  = errors.New("job not found")
	ErrInternal  = errors.New("internal error")
)

const (
	publicListingCap = 20

	cacheKeyPublicJobs = "jobs:public"
	cacheKeyCategories = "jobs:categories"
	cacheTTL           = time.Minute
)

// Cache is the read-cache seam; the Redis implementation degrades to a
// no-op when the server is unreachable.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type CreateInput struct {
	Title               string
	Company             string
	Location            string
	Type                string
	WorkType            string
	Category            string
	Description         string
	Responsibilities    string
	RequiredSkills      string
	Experience          string
	SalaryRange         string
	ApplicationDeadline string
	WorkHours           string
	HowToApply          string
	ContactEmail        string
	Website             string
	Benefits            string
	StartDate           string
	Vacancies           string
}

type Usecase interface {
	Create(ctx context.Context, posterID uuid.UUID, in CreateInput) (job.Job, error)
	ListOwn(ctx context.Context, posterID uuid.UUID) ([]job.Job, error)
	ListPublic(ctx context.Context) ([]job.Job, error)
	Get(ctx context.Context, id string) (job.Job, error)
	Categories(ctx context.Context) ([]job.CategoryCount, error)
}

type Service struct {
	jobs   job.Repository
	cache  Cache
	logger *log.Logger
}

func NewService(jobs job.Repository, cache Cache, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{jobs: jobs, cache: cache, logger: logger}
}

func (s *Service) Create(ctx context.Context, posterID uuid.UUID, in CreateInput) (job.Job, error) {
	required := []struct {
		name  string
		value string
	}{
		{"title", in.Title},
		{"type", in.Type},
		{"workType", in.WorkType},
		{"location", in.Location},
		{"category", in.Category},
		{"company", in.Company},
		{"description", in.Description},
		{"responsibilities", in.Responsibilities},
		{"requiredSkills", in.RequiredSkills},
		{"experience", in.Experience},
		{"salaryRange", in.SalaryRange},
		{"applicationDeadline", in.ApplicationDeadline},
		{"workHours", in.WorkHours},
		{"howToApply", in.HowToApply},
		{"contactEmail", in.ContactEmail},
	}

	var violations []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			violations = append(violations, f.name+" is required")
		}
	}
	if len(violations) > 0 {
		return job.Job{}, usecase.NewValidationError(violations...)
	}

	// PostedBy is always the authenticated caller, never request data.
	j := job.Job{
		ID:                  uuid.New(),
		PostedBy:            posterID,
		Title:               strings.TrimSpace(in.Title),
		Company:             strings.TrimSpace(in.Company),
		Location:            strings.TrimSpace(in.Location),
		Type:                strings.TrimSpace(in.Type),
		WorkType:            strings.TrimSpace(in.WorkType),
		Category:            strings.TrimSpace(in.Category),
		Description:         in.Description,
		Responsibilities:    in.Responsibilities,
		RequiredSkills:      in.RequiredSkills,
		Experience:          in.Experience,
		SalaryRange:         in.SalaryRange,
		ApplicationDeadline: in.ApplicationDeadline,
		WorkHours:           in.WorkHours,
		HowToApply:          in.HowToApply,
		ContactEmail:        strings.TrimSpace(in.ContactEmail),
		Website:             in.Website,
		Benefits:            in.Benefits,
		StartDate:           in.StartDate,
		Vacancies:           in.Vacancies,
	}

	if err := s.jobs.Create(ctx, j); err != nil {
		return job.Job{}, ErrInternal
	}

	created, err := s.jobs.GetByID(ctx, j.ID)
	if err != nil {
		return job.Job{}, ErrInternal
	}

	s.invalidateListings(ctx)
	return created, nil
}

func (s *Service) ListOwn(ctx context.Context, posterID uuid.UUID) ([]job.Job, error) {
	jobs, err := s.jobs.ListByPoster(ctx, posterID)
	if err != nil {
		return nil, ErrInternal
	}
	return jobs, nil
}

func (s *Service) ListPublic(ctx context.Context) ([]job.Job, error) {
	if s.cache != nil {
		var cached []job.Job
		if hit, err := s.cache.GetJSON(ctx, cacheKeyPublicJobs, &cached); err == nil && hit {
			return cached, nil
		}
	}

	jobs, err := s.jobs.ListRecent(ctx, publicListingCap)
	if err != nil {
		return nil, ErrInternal
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKeyPublicJobs, jobs, cacheTTL); err != nil {
			s.logger.Printf("cache public jobs failed: %v", err)
		}
	}
	return jobs, nil
}

func (s *Service) Get(ctx context.Context, id string) (job.Job, error) {
	jobID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return job.Job{}, ErrInvalidID
	}

	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (s *Service) Categories(ctx context.Context) ([]job.CategoryCount, error) {
	if s.cache != nil {
		var cached []job.CategoryCount
		if hit, err := s.cache.GetJSON(ctx, cacheKeyCategories, &cached); err == nil && hit {
			return cached, nil
		}
	}

	counts, err := s.jobs.CountByCategory(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKeyCategories, counts, cacheTTL); err != nil {
			s.logger.Printf("cache categories failed: %v", err)
		}
	}
	return counts, nil
}

func (s *Service) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKeyPublicJobs, cacheKeyCategories); err != nil {
		s.logger.Printf("invalidate listing cache failed: %v", err)
	}
}
