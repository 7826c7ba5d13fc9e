package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (id, employer_id, title, description, requirements, responsibilities,
	              location, salary, job_type, experience_level, industry, skills,
	              is_featured, is_active, posted_date, closing_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.db.Exec(ctx, query,
		job.ID, job.EmployerID, job.Title, job.Description, job.Requirements, job.Responsibilities,
		job.Location, job.Salary, job.JobType, job.ExperienceLevel, job.Industry, pq.Array(job.Skills),
		job.IsFeatured, job.IsActive, job.PostedDate, job.ClosingDate,
	)
	return err
}

// GetByID retrieves a job with its employer summary and live application count.
func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `
		SELECT
			j.id, j.employer_id, j.title, j.description, j.requirements, j.responsibilities,
			j.location, j.salary, j.job_type, j.experience_level, j.industry, j.skills,
			j.is_featured, j.is_active, j.posted_date, j.closing_date,
			u.id, u.company_name, u.company_logo, u.location, u.website, u.bio,
			(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS application_count
		FROM jobs j
		JOIN users u ON j.employer_id = u.id
		WHERE j.id = $1`

	var job domain.Job
	var employer domain.EmployerSummary
	var count int64
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.EmployerID, &job.Title, &job.Description, &job.Requirements, &job.Responsibilities,
		&job.Location, &job.Salary, &job.JobType, &job.ExperienceLevel, &job.Industry, pq.Array(&job.Skills),
		&job.IsFeatured, &job.IsActive, &job.PostedDate, &job.ClosingDate,
		&employer.ID, &employer.CompanyName, &employer.CompanyLogo, &employer.Location, &employer.Website, &employer.Bio,
		&count,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	job.Employer = &employer
	job.ApplicationCount = &count
	return &job, nil
}

// buildFilter translates the tagged filter into a WHERE clause. Only active
// jobs are ever listable; that predicate is hardcoded server-side.
func buildFilter(filter *domain.JobFilter) (string, []any) {
	where := []string{"j.is_active = TRUE"}
	var args []any
	idx := 1

	if filter.Search != "" {
		where = append(where, fmt.Sprintf(
			"(j.title ILIKE $%d OR j.description ILIKE $%d OR j.industry ILIKE $%d)", idx, idx, idx))
		args = append(args, "%"+filter.Search+"%")
		idx++
	}
	if filter.JobType != "" {
		where = append(where, fmt.Sprintf("j.job_type = $%d", idx))
		args = append(args, filter.JobType)
		idx++
	}
	if filter.Location != "" {
		where = append(where, fmt.Sprintf("j.location ILIKE $%d", idx))
		args = append(args, "%"+filter.Location+"%")
		idx++
	}
	if filter.Industry != "" {
		where = append(where, fmt.Sprintf("j.industry ILIKE $%d", idx))
		args = append(args, "%"+filter.Industry+"%")
		idx++
	}
	if filter.ExperienceLevel != "" {
		where = append(where, fmt.Sprintf("j.experience_level = $%d", idx))
		args = append(args, filter.ExperienceLevel)
		idx++
	}
	if filter.Featured != nil && *filter.Featured {
		where = append(where, "j.is_featured = TRUE")
	}

	return strings.Join(where, " AND "), args
}

// Fetch retrieves active jobs matching the filter, newest first, plus the
// total count matching the same predicate without pagination.
func (r *jobRepo) Fetch(ctx context.Context, filter *domain.JobFilter) ([]domain.Job, int64, error) {
	whereClause, args := buildFilter(filter)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM jobs j WHERE %s`, whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT
			j.id, j.employer_id, j.title, j.description, j.requirements, j.responsibilities,
			j.location, j.salary, j.job_type, j.experience_level, j.industry, j.skills,
			j.is_featured, j.is_active, j.posted_date, j.closing_date,
			u.id, u.company_name, u.company_logo, u.location,
			(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS application_count
		FROM jobs j
		JOIN users u ON j.employer_id = u.id
		WHERE %s
		ORDER BY j.posted_date DESC
		LIMIT $%d OFFSET $%d`, whereClause, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		var employer domain.EmployerSummary
		var count int64
		if err := rows.Scan(
			&job.ID, &job.EmployerID, &job.Title, &job.Description, &job.Requirements, &job.Responsibilities,
			&job.Location, &job.Salary, &job.JobType, &job.ExperienceLevel, &job.Industry, pq.Array(&job.Skills),
			&job.IsFeatured, &job.IsActive, &job.PostedDate, &job.ClosingDate,
			&employer.ID, &employer.CompanyName, &employer.CompanyLogo, &employer.Location,
			&count,
		); err != nil {
			return nil, 0, err
		}
		job.Employer = &employer
		job.ApplicationCount = &count
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// FetchByEmployer retrieves all jobs owned by an employer, active or not,
// each annotated with its application count.
func (r *jobRepo) FetchByEmployer(ctx context.Context, employerID string) ([]domain.Job, error) {
	query := `
		SELECT
			j.id, j.employer_id, j.title, j.description, j.requirements, j.responsibilities,
			j.location, j.salary, j.job_type, j.experience_level, j.industry, j.skills,
			j.is_featured, j.is_active, j.posted_date, j.closing_date,
			(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS application_count
		FROM jobs j
		WHERE j.employer_id = $1
		ORDER BY j.posted_date DESC`

	rows, err := r.db.Query(ctx, query, employerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		var count int64
		if err := rows.Scan(
			&job.ID, &job.EmployerID, &job.Title, &job.Description, &job.Requirements, &job.Responsibilities,
			&job.Location, &job.Salary, &job.JobType, &job.ExperienceLevel, &job.Industry, pq.Array(&job.Skills),
			&job.IsFeatured, &job.IsActive, &job.PostedDate, &job.ClosingDate,
			&count,
		); err != nil {
			return nil, err
		}
		job.ApplicationCount = &count
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Update applies only the provided fields. employer_id and posted_date are
// never part of the SET clause.
func (r *jobRepo) Update(ctx context.Context, id string, update *domain.JobUpdate) (*domain.Job, error) {
	var set []string
	args := []any{id}
	idx := 2

	addStr := func(column string, value *string) {
		if value != nil {
			set = append(set, fmt.Sprintf("%s = $%d", column, idx))
			args = append(args, *value)
			idx++
		}
	}
	addStr("title", update.Title)
	addStr("description", update.Description)
	addStr("requirements", update.Requirements)
	addStr("responsibilities", update.Responsibilities)
	addStr("location", update.Location)
	addStr("salary", update.Salary)
	addStr("job_type", update.JobType)
	addStr("experience_level", update.ExperienceLevel)
	addStr("industry", update.Industry)
	if update.Skills != nil {
		set = append(set, fmt.Sprintf("skills = $%d", idx))
		args = append(args, pq.Array(update.Skills))
		idx++
	}
	if update.IsFeatured != nil {
		set = append(set, fmt.Sprintf("is_featured = $%d", idx))
		args = append(args, *update.IsFeatured)
		idx++
	}
	if update.IsActive != nil {
		set = append(set, fmt.Sprintf("is_active = $%d", idx))
		args = append(args, *update.IsActive)
		idx++
	}
	if update.ClosingDate != nil {
		set = append(set, fmt.Sprintf("closing_date = $%d", idx))
		args = append(args, *update.ClosingDate)
		idx++
	}

	if len(set) > 0 {
		query := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $1`, strings.Join(set, ", "))
		result, err := r.db.Exec(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		if result.RowsAffected() == 0 {
			return nil, domain.ErrNotFound
		}
	}

	return r.GetByID(ctx, id)
}

// Delete removes the job and all its applications in a single transaction, so
// no partial cascade is ever visible to concurrent readers.
func (r *jobRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}
