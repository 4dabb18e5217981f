package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User represents the canonical identity entity.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string         `gorm:"type:text;not null;uniqueIndex"`
	Username     *string        `gorm:"column:username;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Roles        pq.StringArray `gorm:"column:roles;type:text[];not null;default:'{user}'"`

	IsEmailVerified        bool       `gorm:"column:is_email_verified;not null;default:false"`
	EmailVerificationOTP   *string    `gorm:"column:email_verification_otp"`
	EmailVerificationToken *string    `gorm:"column:email_verification_token"`
	EmailVerificationExp   *time.Time `gorm:"column:email_verification_expires"`
	EmailVerifiedAt        *time.Time `gorm:"column:email_verified_at"`

	ResetPasswordToken      *string    `gorm:"column:reset_password_token"`
	ResetTokenExpires       *time.Time `gorm:"column:reset_token_expires"`
	ResetPasswordVerifiedAt *time.Time `gorm:"column:reset_password_verified_at"`

	FirstName            *string `gorm:"column:first_name"`
	LastName             *string `gorm:"column:last_name"`
	Profession           *string `gorm:"column:profession"`
	CompanyName          *string `gorm:"column:company_name"`
	Industry             *string `gorm:"column:industry"`
	TeamSize             *string `gorm:"column:team_size"`
	LookingFor           *string `gorm:"column:looking_for"`
	IsOnboardingComplete bool    `gorm:"column:is_onboarding_complete;not null;default:false"`
	InstagramConnected   bool    `gorm:"column:instagram_connected;not null;default:false"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
