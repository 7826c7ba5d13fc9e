package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

const userColumns = `id, email, password_hash, role, first_name, last_name, phone_number,
	location, bio, resume_url, company_name, company_logo, website, created_at, updated_at`

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.FirstName, &user.LastName,
		&user.PhoneNumber, &user.Location, &user.Bio, &user.ResumeURL,
		&user.CompanyName, &user.CompanyLogo, &user.Website, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, email, password_hash, role, first_name, last_name, phone_number,
	              location, bio, resume_url, company_name, company_logo, website, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Role, user.FirstName, user.LastName,
		user.PhoneNumber, user.Location, user.Bio, user.ResumeURL,
		user.CompanyName, user.CompanyLogo, user.Website, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("User with this email already exists")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// UpdateProfile applies only the provided fields and returns the updated row.
func (r *userRepo) UpdateProfile(ctx context.Context, id string, update *domain.ProfileUpdate) (*domain.User, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{id}
	idx := 2

	add := func(column string, value *string) {
		if value != nil {
			set = append(set, fmt.Sprintf("%s = $%d", column, idx))
			args = append(args, *value)
			idx++
		}
	}
	add("first_name", update.FirstName)
	add("last_name", update.LastName)
	add("phone_number", update.PhoneNumber)
	add("location", update.Location)
	add("bio", update.Bio)
	add("resume_url", update.ResumeURL)
	add("company_name", update.CompanyName)
	add("company_logo", update.CompanyLogo)
	add("website", update.Website)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(set, ", "), userColumns)
	return scanUser(r.db.QueryRow(ctx, query, args...))
}
