package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simplishare/simplishare-server/pkg/db/models"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetVerificationChallenge overwrites the user's pending OTP challenge.
func (r *Repository) SetVerificationChallenge(ctx context.Context, id uuid.UUID, dto VerificationChallengeDTO) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"email_verification_token":   dto.TokenHash,
			"email_verification_otp":     dto.OTP,
			"email_verification_expires": dto.ExpiresAt,
		}).Error
}

// MarkEmailVerified flips the verified flag and clears the challenge fields.
func (r *Repository) MarkEmailVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"is_email_verified":          true,
			"email_verified_at":          at,
			"email_verification_token":   nil,
			"email_verification_otp":     nil,
			"email_verification_expires": nil,
		}).Error
}

// ApplyOnboarding sparse-merges the profile payload; nil fields are untouched.
// The completion flag comes from the payload, not this method.
func (r *Repository) ApplyOnboarding(ctx context.Context, id uuid.UUID, dto OnboardingDTO) (*models.User, error) {
	updates := map[string]any{}
	if dto.IsOnboardingComplete != nil {
		updates["is_onboarding_complete"] = *dto.IsOnboardingComplete
	}
	if dto.FirstName != nil {
		updates["first_name"] = *dto.FirstName
	}
	if dto.LastName != nil {
		updates["last_name"] = *dto.LastName
	}
	if dto.Profession != nil {
		updates["profession"] = *dto.Profession
	}
	if dto.CompanyName != nil {
		updates["company_name"] = *dto.CompanyName
	}
	if dto.Industry != nil {
		updates["industry"] = *dto.Industry
	}
	if dto.TeamSize != nil {
		updates["team_size"] = *dto.TeamSize
	}
	if dto.LookingFor != nil {
		updates["looking_for"] = *dto.LookingFor
	}
	if dto.InstagramConnected != nil {
		updates["instagram_connected"] = *dto.InstagramConnected
	}
	if len(updates) == 0 {
		return r.FindByID(ctx, id)
	}

	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumns(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByID(ctx, id)
}
