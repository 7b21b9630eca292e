package dto

import "workly/internal/domain/job"

// Job and category payloads serialize the domain structs directly; their
// json tags are the API contract.
type JobListResponse struct {
	Jobs []job.Job `json:"jobs"`
}

type CategoryListResponse struct {
	Categories []job.CategoryCount `json:"categories"`
}
