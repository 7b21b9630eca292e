package postgres

import (
	"context"
	"errors"

	"workly/internal/database"
	"workly/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, posted_by, title, company, location, type, work_type,
	category, description, responsibilities, required_skills, experience,
	salary_range, application_deadline, work_hours, how_to_apply,
	contact_email, website, benefits, start_date, vacancies, created_at`

type JobRepository struct {
	db database.DB
}

func NewJobRepository(db database.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, posted_by, title, company, location, type, work_type,
			category, description, responsibilities, required_skills, experience,
			salary_range, application_deadline, work_hours, how_to_apply,
			contact_email, website, benefits, start_date, vacancies)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		j.ID, j.PostedBy, j.Title, j.Company, j.Location, j.Type, j.WorkType,
		j.Category, j.Description, j.Responsibilities, j.RequiredSkills, j.Experience,
		j.SalaryRange, j.ApplicationDeadline, j.WorkHours, j.HowToApply,
		j.ContactEmail, j.Website, j.Benefits, j.StartDate, j.Vacancies,
	)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *JobRepository) ListByPoster(ctx context.Context, posterID uuid.UUID) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE posted_by = $1 ORDER BY created_at DESC`,
		posterID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *JobRepository) ListRecent(ctx context.Context, limit int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *JobRepository) CountByCategory(ctx context.Context) ([]job.CategoryCount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT category, COUNT(*) FROM jobs GROUP BY category ORDER BY COUNT(*) DESC, category ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.CategoryCount, 0)
	for rows.Next() {
		var c job.CategoryCount
		if err := rows.Scan(&c.Title, &c.Positions); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	err := row.Scan(
		&j.ID, &j.PostedBy, &j.Title, &j.Company, &j.Location, &j.Type, &j.WorkType,
		&j.Category, &j.Description, &j.Responsibilities, &j.RequiredSkills, &j.Experience,
		&j.SalaryRange, &j.ApplicationDeadline, &j.WorkHours, &j.HowToApply,
		&j.ContactEmail, &j.Website, &j.Benefits, &j.StartDate, &j.Vacancies, &j.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func collectJobs(rows database.Rows) ([]job.Job, error) {
	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
