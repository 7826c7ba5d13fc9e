package usecase

import (
	"context"
	"errors"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"

	"github.com/google/uuid"
)

const notifyTimeout = 10 * time.Second

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	userRepo        domain.UserRepository
	notifier        domain.Notifier
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		notifier:        notifier,
	}
}

// Apply submits a candidate's application to a job. Duplicate protection is
// the storage-layer unique constraint on (candidate_id, job_id); the repo's
// ErrDuplicate is translated here into a clean Conflict.
func (uc *applicationUsecase) Apply(ctx context.Context, candidateID string, input *domain.ApplyInput) (*domain.Application, error) {
	if input.ResumeURL == "" {
		return nil, apperror.BadRequest("Resume is required to submit an application")
	}

	job, err := uc.jobRepo.GetByID(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	var coverLetter *string
	if input.CoverLetter != "" {
		coverLetter = &input.CoverLetter
	}

	app := &domain.Application{
		ID:          uuid.NewString(),
		JobID:       job.ID,
		CandidateID: candidateID,
		CoverLetter: coverLetter,
		ResumeURL:   input.ResumeURL,
		Status:      domain.ApplicationStatusPending,
		AppliedDate: time.Now(),
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Already applied for this job")
		}
		return nil, apperror.Internal(err)
	}

	app.Job = job
	uc.notifyEmployer(app, job)
	return app, nil
}

// notifyEmployer sends the new-application email off the request path; the
// write is already committed and its outcome is not affected.
func (uc *applicationUsecase) notifyEmployer(app *domain.Application, job *domain.Job) {
	appID, jobTitle, employerID, candidateID := app.ID, job.Title, job.EmployerID, app.CandidateID
	notifyAsync("new-application", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		employer, err := uc.userRepo.GetByID(ctx, employerID)
		if err != nil {
			return err
		}
		candidate, err := uc.userRepo.GetByID(ctx, candidateID)
		if err != nil {
			return err
		}

		employerName := employer.FirstName + " " + employer.LastName
		if employer.CompanyName != nil && *employer.CompanyName != "" {
			employerName = *employer.CompanyName
		}
		candidateName := candidate.FirstName + " " + candidate.LastName
		return uc.notifier.SendNewApplication(employer.Email, employerName, candidateName, jobTitle, appID)
	})
}

// GetMyApplications returns all applications owned by the candidate.
func (uc *applicationUsecase) GetMyApplications(ctx context.Context, candidateID string) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.FetchByCandidate(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	return apps, nil
}

// ListByJob returns a job's applications to its owning employer. Ownership is
// one hop removed: the actor must own the job the applications reference.
func (uc *applicationUsecase) ListByJob(ctx context.Context, actorID, jobID string) ([]domain.Application, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.EmployerID != actorID {
		return nil, apperror.Forbidden("Not authorized to view these applications")
	}

	apps, err := uc.applicationRepo.FetchByJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	return apps, nil
}

// UpdateStatus sets the application status. Any of the four values is a legal
// target from any current status; every change triggers a candidate
// notification, including a change to the same status.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, actorID, applicationID, status string) (*domain.Application, error) {
	if !domain.ValidApplicationStatus(status) {
		return nil, apperror.BadRequest("Invalid status. Must be: PENDING, REVIEWED, ACCEPTED, or REJECTED")
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	job, err := uc.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.EmployerID != actorID {
		return nil, apperror.Forbidden("Not authorized to update this application")
	}

	if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, apperror.Internal(err)
	}
	app.Status = status
	app.Job = job

	uc.notifyCandidate(app, job, status)
	return app, nil
}

func (uc *applicationUsecase) notifyCandidate(app *domain.Application, job *domain.Job, status string) {
	jobTitle, candidateID := job.Title, app.CandidateID
	companyName := "the employer"
	if job.Employer != nil && job.Employer.CompanyName != nil && *job.Employer.CompanyName != "" {
		companyName = *job.Employer.CompanyName
	}
	notifyAsync("status-change", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		candidate, err := uc.userRepo.GetByID(ctx, candidateID)
		if err != nil {
			return err
		}
		candidateName := candidate.FirstName + " " + candidate.LastName
		return uc.notifier.SendStatusChange(candidate.Email, candidateName, jobTitle, companyName, status)
	})
}

// Withdraw deletes the candidate's own application. Withdrawal is allowed
// from any status, including ACCEPTED and REJECTED.
func (uc *applicationUsecase) Withdraw(ctx context.Context, candidateID, applicationID string) error {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	if app.CandidateID != candidateID {
		return apperror.Forbidden("Not authorized to delete this application")
	}

	if err := uc.applicationRepo.Delete(ctx, applicationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
