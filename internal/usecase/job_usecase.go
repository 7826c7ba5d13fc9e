package usecase

import (
	"context"
	"errors"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type jobUsecase struct {
	jobRepo domain.JobRepository
}

func NewJobUsecase(jobRepo domain.JobRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo}
}

func (u *jobUsecase) CreateJob(ctx context.Context, employerID string, job *domain.Job) error {
	// Business validation
	if job.Title == "" {
		return apperror.BadRequest("Title is required")
	}
	if job.Description == "" {
		return apperror.BadRequest("Description is required")
	}
	if job.Location == "" {
		return apperror.BadRequest("Location is required")
	}
	if !domain.ValidJobType(job.JobType) {
		return apperror.BadRequest("Invalid job type")
	}
	if job.ExperienceLevel == "" {
		return apperror.BadRequest("Experience level is required")
	}
	if job.Industry == "" {
		return apperror.BadRequest("Industry is required")
	}
	if job.Skills == nil {
		job.Skills = []string{}
	}

	job.ID = uuid.NewString()
	job.EmployerID = employerID
	job.PostedDate = time.Now()

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// ListJobs returns active jobs matching the filter plus the page envelope.
func (u *jobUsecase) ListJobs(ctx context.Context, filter *domain.JobFilter) ([]domain.Job, *domain.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	jobs, total, err := u.jobRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return jobs, &domain.Pagination{
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (u *jobUsecase) GetJobDetails(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

// UpdateJob merges the provided fields after the ownership check. A job that
// exists but belongs to someone else yields Forbidden, never NotFound.
func (u *jobUsecase) UpdateJob(ctx context.Context, actorID, id string, update *domain.JobUpdate) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.EmployerID != actorID {
		return nil, apperror.Forbidden("Not authorized to update this job")
	}
	if update.JobType != nil && !domain.ValidJobType(*update.JobType) {
		return nil, apperror.BadRequest("Invalid job type")
	}

	updated, err := u.jobRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return updated, nil
}

// DeleteJob removes the job and cascades to its applications.
func (u *jobUsecase) DeleteJob(ctx context.Context, actorID, id string) error {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	if job.EmployerID != actorID {
		return apperror.Forbidden("Not authorized to delete this job")
	}

	if err := u.jobRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) ListJobsByEmployer(ctx context.Context, employerID string) ([]domain.Job, error) {
	jobs, err := u.jobRepo.FetchByEmployer(ctx, employerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return jobs, nil
}
