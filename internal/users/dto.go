package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/simplishare/simplishare-server/pkg/db/models"
)

// UserDTO is the transport shape that omits credentials and challenge state.
type UserDTO struct {
	ID                   uuid.UUID `json:"id"`
	Email                string    `json:"email"`
	Username             *string   `json:"username,omitempty"`
	IsEmailVerified      bool      `json:"is_email_verified"`
	FirstName            *string   `json:"first_name,omitempty"`
	LastName             *string   `json:"last_name,omitempty"`
	Profession           *string   `json:"profession,omitempty"`
	CompanyName          *string   `json:"company_name,omitempty"`
	Industry             *string   `json:"industry,omitempty"`
	TeamSize             *string   `json:"team_size,omitempty"`
	LookingFor           *string   `json:"looking_for,omitempty"`
	IsOnboardingComplete bool      `json:"is_onboarding_complete"`
	InstagramConnected   bool      `json:"instagram_connected"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email           string
	Username        *string
	PasswordHash    string
	Roles           []string
	IsEmailVerified bool
	EmailVerifiedAt *time.Time
}

// VerificationChallengeDTO carries the persisted OTP challenge state.
type VerificationChallengeDTO struct {
	TokenHash string
	OTP       string
	ExpiresAt time.Time
}

// OnboardingDTO is the sparse profile merge applied after signup.
type OnboardingDTO struct {
	FirstName            *string
	LastName             *string
	Profession           *string
	CompanyName          *string
	Industry             *string
	TeamSize             *string
	LookingFor           *string
	IsOnboardingComplete *bool
	InstagramConnected   *bool
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:                   u.ID,
		Email:                u.Email,
		Username:             u.Username,
		IsEmailVerified:      u.IsEmailVerified,
		FirstName:            u.FirstName,
		LastName:             u.LastName,
		Profession:           u.Profession,
		CompanyName:          u.CompanyName,
		Industry:             u.Industry,
		TeamSize:             u.TeamSize,
		LookingFor:           u.LookingFor,
		IsOnboardingComplete: u.IsOnboardingComplete,
		InstagramConnected:   u.InstagramConnected,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	roles := c.Roles
	if len(roles) == 0 {
		roles = []string{"user"}
	}

	return &models.User{
		Email:           c.Email,
		Username:        c.Username,
		PasswordHash:    c.PasswordHash,
		Roles:           pq.StringArray(roles),
		IsEmailVerified: c.IsEmailVerified,
		EmailVerifiedAt: c.EmailVerifiedAt,
	}
}
