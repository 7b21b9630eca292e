package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	ListByPoster(ctx context.Context, posterID uuid.UUID) ([]Job, error)
	ListRecent(ctx context.Context, limit int) ([]Job, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
}
