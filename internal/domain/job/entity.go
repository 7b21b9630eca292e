package job

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID                  uuid.UUID `json:"id"`
	PostedBy            uuid.UUID `json:"postedBy"`
	Title               string    `json:"title"`
	Company             string    `json:"company"`
	Location            string    `json:"location"`
	Type                string    `json:"type"`
	WorkType            string    `json:"workType"`
	Category            string    `json:"category"`
	Description         string    `json:"description"`
	Responsibilities    string    `json:"responsibilities"`
	RequiredSkills      string    `json:"requiredSkills"`
	Experience          string    `json:"experience"`
	SalaryRange         string    `json:"salaryRange"`
	ApplicationDeadline string    `json:"applicationDeadline"`
	WorkHours           string    `json:"workHours"`
	HowToApply          string    `json:"howToApply"`
	ContactEmail        string    `json:"contactEmail"`
	Website             string    `json:"website,omitempty"`
	Benefits            string    `json:"benefits,omitempty"`
	StartDate           string    `json:"startDate,omitempty"`
	Vacancies           string    `json:"vacancies,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// CategoryCount is one row of the per-category posting aggregate.
type CategoryCount struct {
	Title     string `json:"title"`
	Positions int    `json:"positions"`
}
