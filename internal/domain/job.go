package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("duplicate resource")
)

// Job types
const (
	JobTypeFullTime   = "FULL_TIME"
	JobTypePartTime   = "PART_TIME"
	JobTypeContract   = "CONTRACT"
	JobTypeInternship = "INTERNSHIP"
	JobTypeRemote     = "REMOTE"
)

// ValidJobType reports whether s is one of the supported job type values.
func ValidJobType(s string) bool {
	switch s {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote:
		return true
	}
	return false
}

type Job struct {
	ID               string     `json:"id"`
	EmployerID       string     `json:"employerId"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Requirements     string     `json:"requirements"`
	Responsibilities string     `json:"responsibilities"`
	Location         string     `json:"location"`
	Salary           *string    `json:"salary,omitempty"` // Free-text, e.g. "$120,000 - $160,000"
	JobType          string     `json:"jobType"`
	ExperienceLevel  string     `json:"experienceLevel"`
	Industry         string     `json:"industry"`
	Skills           []string   `json:"skills"`
	IsFeatured       bool       `json:"isFeatured"`
	IsActive         bool       `json:"isActive"`
	PostedDate       time.Time  `json:"postedDate"`
	ClosingDate      *time.Time `json:"closingDate,omitempty"`

	// Joined data for responses
	Employer         *EmployerSummary `json:"employer,omitempty"`
	ApplicationCount *int64           `json:"applicationCount,omitempty"`
}

// EmployerSummary is the slice of the owning employer embedded in job responses.
type EmployerSummary struct {
	ID          string  `json:"id"`
	CompanyName *string `json:"companyName,omitempty"`
	CompanyLogo *string `json:"companyLogo,omitempty"`
	Location    *string `json:"location,omitempty"`
	Website     *string `json:"website,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

// JobFilter is the tagged filter structure for job listings. Each predicate is
// an explicit optional field; empty string / nil means "not filtered".
type JobFilter struct {
	Search          string // case-insensitive substring over title OR description OR industry
	JobType         string // exact match
	Location        string // case-insensitive substring
	Industry        string // case-insensitive substring
	ExperienceLevel string // exact match
	Featured        *bool
	Page            int
	Limit           int
}

// JobUpdate carries the mutable job fields for partial updates. EmployerID and
// PostedDate are not representable here on purpose.
type JobUpdate struct {
	Title            *string
	Description      *string
	Requirements     *string
	Responsibilities *string
	Location         *string
	Salary           *string
	JobType          *string
	ExperienceLevel  *string
	Industry         *string
	Skills           []string
	IsFeatured       *bool
	IsActive         *bool
	ClosingDate      *time.Time
}

// Pagination is the page envelope returned by job listings.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	Fetch(ctx context.Context, filter *JobFilter) ([]Job, int64, error)
	FetchByEmployer(ctx context.Context, employerID string) ([]Job, error)
	Update(ctx context.Context, id string, update *JobUpdate) (*Job, error)
	// Delete removes the job and all its applications in one transaction.
	Delete(ctx context.Context, id string) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, employerID string, job *Job) error
	ListJobs(ctx context.Context, filter *JobFilter) ([]Job, *Pagination, error)
	GetJobDetails(ctx context.Context, id string) (*Job, error)
	UpdateJob(ctx context.Context, actorID, id string, update *JobUpdate) (*Job, error)
	DeleteJob(ctx context.Context, actorID, id string) error
	ListJobsByEmployer(ctx context.Context, employerID string) ([]Job, error)
}
