package domain

import (
	"context"
	"time"
)

// User roles
const (
	RoleCandidate = "CANDIDATE"
	RoleEmployer  = "EMPLOYER"
	RoleAdmin     = "ADMIN"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialized
	Role         string    `json:"role"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PhoneNumber  *string   `json:"phoneNumber,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	ResumeURL    *string   `json:"resumeUrl,omitempty"` // Candidate only
	CompanyName  *string   `json:"companyName,omitempty"`
	CompanyLogo  *string   `json:"companyLogo,omitempty"`
	Website      *string   `json:"website,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicProfile is the subset of User safe for unauthenticated reads.
// Email, phone number and resume URL are deliberately excluded.
type PublicProfile struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Role        string    `json:"role"`
	Location    *string   `json:"location,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	CompanyName *string   `json:"companyName,omitempty"`
	CompanyLogo *string   `json:"companyLogo,omitempty"`
	Website     *string   `json:"website,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Public returns the publicly visible view of the user.
func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		Location:    u.Location,
		Bio:         u.Bio,
		CompanyName: u.CompanyName,
		CompanyLogo: u.CompanyLogo,
		Website:     u.Website,
		CreatedAt:   u.CreatedAt,
	}
}

// ProfileUpdate carries the fields a user may change on their own profile.
// Nil means "leave untouched".
type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Location    *string
	Bio         *string
	ResumeURL   *string
	CompanyName *string
	CompanyLogo *string
	Website     *string
}

// RegisterInput is the validated registration payload handed to the usecase.
type RegisterInput struct {
	Email       string
	Password    string
	Role        string
	FirstName   string
	LastName    string
	PhoneNumber string
	Location    string
	Bio         string
	CompanyName string
	Website     string
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id string, update *ProfileUpdate) (*User, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}

type UserUsecase interface {
	UpdateProfile(ctx context.Context, userID string, update *ProfileUpdate) (*User, error)
	GetPublicProfile(ctx context.Context, id string) (*PublicProfile, error)
}
