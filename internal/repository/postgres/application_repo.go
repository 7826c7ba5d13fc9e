package postgres

import (
	"context"
	"errors"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The UNIQUE (candidate_id, job_id)
// constraint is the authoritative duplicate guard: a violation surfaces as
// domain.ErrDuplicate so two concurrent applies can never both commit.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (id, job_id, candidate_id, cover_letter, resume_url, status, applied_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		app.ID, app.JobID, app.CandidateID, app.CoverLetter, app.ResumeURL, app.Status, app.AppliedDate,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `
		SELECT id, job_id, candidate_id, cover_letter, resume_url, status, applied_date
		FROM applications WHERE id = $1`

	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.JobID, &app.CandidateID, &app.CoverLetter, &app.ResumeURL, &app.Status, &app.AppliedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// FetchByCandidate retrieves a candidate's applications with job and employer
// summaries joined in, newest first.
func (r *applicationRepo) FetchByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.candidate_id, a.cover_letter, a.resume_url, a.status, a.applied_date,
			j.id, j.employer_id, j.title, j.location, j.salary, j.job_type, j.posted_date,
			u.id, u.company_name, u.company_logo, u.location
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		JOIN users u ON j.employer_id = u.id
		WHERE a.candidate_id = $1
		ORDER BY a.applied_date DESC`

	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		var job domain.Job
		var employer domain.EmployerSummary
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.CandidateID, &app.CoverLetter, &app.ResumeURL, &app.Status, &app.AppliedDate,
			&job.ID, &job.EmployerID, &job.Title, &job.Location, &job.Salary, &job.JobType, &job.PostedDate,
			&employer.ID, &employer.CompanyName, &employer.CompanyLogo, &employer.Location,
		); err != nil {
			return nil, err
		}
		job.Employer = &employer
		app.Job = &job
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// FetchByJob retrieves all applications for a job with candidate profile
// summaries joined in, newest first.
func (r *applicationRepo) FetchByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.candidate_id, a.cover_letter, a.resume_url, a.status, a.applied_date,
			u.id, u.first_name, u.last_name, u.email, u.phone_number, u.location, u.bio, u.resume_url
		FROM applications a
		JOIN users u ON a.candidate_id = u.id
		WHERE a.job_id = $1
		ORDER BY a.applied_date DESC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		var candidate domain.CandidateSummary
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.CandidateID, &app.CoverLetter, &app.ResumeURL, &app.Status, &app.AppliedDate,
			&candidate.ID, &candidate.FirstName, &candidate.LastName, &candidate.Email,
			&candidate.PhoneNumber, &candidate.Location, &candidate.Bio, &candidate.ResumeURL,
		); err != nil {
			return nil, err
		}
		app.Candidate = &candidate
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.Exec(ctx, `UPDATE applications SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
