package domain

import (
	"context"
	"time"
)

// Application status values. Flat enum: any authorized transition between any
// two values is accepted, there is no progression state machine.
const (
	ApplicationStatusPending  = "PENDING"
	ApplicationStatusReviewed = "REVIEWED"
	ApplicationStatusAccepted = "ACCEPTED"
	ApplicationStatusRejected = "REJECTED"
)

// ValidApplicationStatus reports whether s is one of the four status values.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	CandidateID string    `json:"candidateId"`
	CoverLetter *string   `json:"coverLetter,omitempty"`
	ResumeURL   string    `json:"resumeUrl"` // Required
	Status      string    `json:"status"`
	AppliedDate time.Time `json:"appliedDate"`

	// Joined data for list responses
	Job       *Job              `json:"job,omitempty"`
	Candidate *CandidateSummary `json:"candidate,omitempty"`
}

// CandidateSummary is the candidate view joined into employer-facing lists.
type CandidateSummary struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Location    *string `json:"location,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	ResumeURL   *string `json:"resumeUrl,omitempty"`
}

// ApplyInput is the validated application payload.
type ApplyInput struct {
	JobID       string
	CoverLetter string
	ResumeURL   string
}

type ApplicationRepository interface {
	// Create inserts the application. The (candidate_id, job_id) uniqueness is
	// enforced by the storage constraint; a violation surfaces as ErrDuplicate.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	FetchByCandidate(ctx context.Context, candidateID string) ([]Application, error)
	FetchByJob(ctx context.Context, jobID string) ([]Application, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type ApplicationUsecase interface {
	// Candidate operations
	Apply(ctx context.Context, candidateID string, input *ApplyInput) (*Application, error)
	GetMyApplications(ctx context.Context, candidateID string) ([]Application, error)
	Withdraw(ctx context.Context, candidateID, applicationID string) error

	// Employer operations
	ListByJob(ctx context.Context, actorID, jobID string) ([]Application, error)
	UpdateStatus(ctx context.Context, actorID, applicationID, status string) (*Application, error)
}
