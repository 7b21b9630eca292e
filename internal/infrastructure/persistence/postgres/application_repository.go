package postgres

import (
	"context"
	"errors"
	"time"

	"workly/internal/database"
	"workly/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const applicationColumns = `id, job_id, applicant_id, status, full_name, email,
	phone, current_location, experience, education, current_company,
	current_position, expected_salary, notice_period, portfolio_url,
	linkedin_url, cover_letter, resume_path, applied_at`

type ApplicationRepository struct {
	db database.DB
}

func NewApplicationRepository(db database.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, job_id, applicant_id, status, full_name, email,
			phone, current_location, experience, education, current_company,
			current_position, expected_salary, notice_period, portfolio_url,
			linkedin_url, cover_letter, resume_path, applied_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		a.ID, a.JobID, a.ApplicantID, a.Status, a.FullName, a.Email,
		a.Phone, a.CurrentLocation, a.Experience, a.Education, a.CurrentCompany,
		a.CurrentPosition, a.ExpectedSalary, a.NoticePeriod, a.PortfolioURL,
		a.LinkedInURL, a.CoverLetter, a.ResumePath, a.AppliedAt,
	)
	if isUniqueViolation(err) {
		return application.ErrDuplicate
	}
	return err
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) ExistsForJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ApplicationRepository) UpdateStatusOwned(ctx context.Context, id uuid.UUID, status application.Status, recruiterID uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications SET status = $2
		 WHERE id = $1
		   AND job_id IN (SELECT id FROM jobs WHERE posted_by = $3)
		 RETURNING `+applicationColumns,
		id, status, recruiterID,
	)
	return scanApplication(row)
}

func (r *ApplicationRepository) AddNote(ctx context.Context, n application.Note) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO application_notes (id, application_id, author_id, content, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.ApplicationID, n.AuthorID, n.Content, n.CreatedAt,
	)
	return err
}

func (r *ApplicationRepository) ListNotes(ctx context.Context, applicationID uuid.UUID) ([]application.Note, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, author_id, content, created_at
		 FROM application_notes WHERE application_id = $1 ORDER BY created_at ASC`,
		applicationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Note, 0)
	for rows.Next() {
		var n application.Note
		if err := rows.Scan(&n.ID, &n.ApplicationID, &n.AuthorID, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY applied_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ApplicationRepository) ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]application.WithJob, error) {
	return r.listWithJob(ctx,
		`WHERE j.posted_by = $1`,
		recruiterID,
	)
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.WithJob, error) {
	return r.listWithJob(ctx,
		`WHERE a.applicant_id = $1`,
		applicantID,
	)
}

func (r *ApplicationRepository) listWithJob(ctx context.Context, where string, arg any) ([]application.WithJob, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.applicant_id, a.status, a.full_name, a.email,
			a.phone, a.current_location, a.experience, a.education, a.current_company,
			a.current_position, a.expected_salary, a.notice_period, a.portfolio_url,
			a.linkedin_url, a.cover_letter, a.resume_path, a.applied_at,
			j.title, j.company, j.location, j.category
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 `+where+`
		 ORDER BY a.applied_at DESC`,
		arg,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.WithJob, 0)
	for rows.Next() {
		var w application.WithJob
		err := rows.Scan(
			&w.ID, &w.JobID, &w.ApplicantID, &w.Status, &w.FullName, &w.Email,
			&w.Phone, &w.CurrentLocation, &w.Experience, &w.Education, &w.CurrentCompany,
			&w.CurrentPosition, &w.ExpectedSalary, &w.NoticePeriod, &w.PortfolioURL,
			&w.LinkedInURL, &w.CoverLetter, &w.ResumePath, &w.AppliedAt,
			&w.JobTitle, &w.JobCompany, &w.JobLocation, &w.JobCategory,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ApplicationRepository) CountByStatusForRecruiter(ctx context.Context, recruiterID uuid.UUID) (map[application.Status]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.status, COUNT(*)
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE j.posted_by = $1
		 GROUP BY a.status`,
		recruiterID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[application.Status]int)
	for rows.Next() {
		var (
			s application.Status
			n int
		)
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		counts[s] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *ApplicationRepository) CountByApplicant(ctx context.Context, applicantID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE applicant_id = $1`,
		applicantID,
	)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ApplicationRepository) CountByApplicantInWindow(ctx context.Context, applicantID uuid.UUID, from, to time.Time) (int, error) {
	var n int
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications
		 WHERE applicant_id = $1 AND applied_at >= $2 AND applied_at < $3`,
		applicantID, from, to,
	)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	err := row.Scan(
		&a.ID, &a.JobID, &a.ApplicantID, &a.Status, &a.FullName, &a.Email,
		&a.Phone, &a.CurrentLocation, &a.Experience, &a.Education, &a.CurrentCompany,
		&a.CurrentPosition, &a.ExpectedSalary, &a.NoticePeriod, &a.PortfolioURL,
		&a.LinkedInURL, &a.CoverLetter, &a.ResumePath, &a.AppliedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

// 23505 is Postgres unique_violation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
