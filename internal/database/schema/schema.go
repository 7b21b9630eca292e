package schema

import (
	"context"
	"fmt"

	"workly/internal/database"
)

// statements are idempotent and ordered by dependency. The unique index on
// applications(job_id, applicant_id) is the storage-layer backstop for the
// one-application-per-job-per-seeker rule; application code must treat its
// violation as a duplicate submission, never as an internal error.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            uuid PRIMARY KEY,
		email         text NOT NULL UNIQUE,
		password_hash text,
		role          text NOT NULL CHECK (role IN ('job_seeker', 'recruiter')),
		first_name    text NOT NULL,
		last_name     text NOT NULL,
		company       text NOT NULL DEFAULT '',
		is_verified   boolean NOT NULL DEFAULT false,
		profile       jsonb NOT NULL DEFAULT '{}',
		last_login    timestamptz,
		created_at    timestamptz NOT NULL DEFAULT now(),
		updated_at    timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS jobs (
		id                   uuid PRIMARY KEY,
		posted_by            uuid NOT NULL REFERENCES users(id),
		title                text NOT NULL,
		company              text NOT NULL,
		location             text NOT NULL,
		type                 text NOT NULL,
		work_type            text NOT NULL DEFAULT '',
		category             text NOT NULL,
		description          text NOT NULL,
		responsibilities     text NOT NULL DEFAULT '',
		required_skills      text NOT NULL DEFAULT '',
		experience           text NOT NULL DEFAULT '',
		salary_range         text NOT NULL DEFAULT '',
		application_deadline text NOT NULL DEFAULT '',
		work_hours           text NOT NULL DEFAULT '',
		how_to_apply         text NOT NULL DEFAULT '',
		contact_email        text NOT NULL DEFAULT '',
		website              text NOT NULL DEFAULT '',
		benefits             text NOT NULL DEFAULT '',
		start_date           text NOT NULL DEFAULT '',
		vacancies            text NOT NULL DEFAULT '',
		created_at           timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_jobs_posted_by ON jobs (posted_by)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_category ON jobs (category)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs (created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS applications (
		id               uuid PRIMARY KEY,
		job_id           uuid NOT NULL REFERENCES jobs(id),
		applicant_id     uuid NOT NULL REFERENCES users(id),
		status           text NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'reviewed', 'interview', 'rejected', 'hired')),
		full_name        text NOT NULL,
		email            text NOT NULL,
		phone            text NOT NULL,
		current_location text NOT NULL,
		experience       text NOT NULL,
		education        text NOT NULL,
		current_company  text NOT NULL DEFAULT '',
		current_position text NOT NULL DEFAULT '',
		expected_salary  text NOT NULL DEFAULT '',
		notice_period    text NOT NULL DEFAULT '',
		portfolio_url    text NOT NULL DEFAULT '',
		linkedin_url     text NOT NULL DEFAULT '',
		cover_letter     text NOT NULL DEFAULT '',
		resume_path      text NOT NULL,
		applied_at       timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS uq_applications_job_applicant
		ON applications (job_id, applicant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_applicant ON applications (applicant_id)`,

	`CREATE TABLE IF NOT EXISTS application_notes (
		id             uuid PRIMARY KEY,
		application_id uuid NOT NULL REFERENCES applications(id),
		author_id      uuid NOT NULL REFERENCES users(id),
		content        text NOT NULL,
		created_at     timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notes_application ON application_notes (application_id)`,
}

// Ensure applies the schema at startup, inside a single transaction so a
// failing statement never leaves a partially applied schema behind.
func Ensure(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
