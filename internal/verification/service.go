package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simplishare/simplishare-server/internal/users"
	"github.com/simplishare/simplishare-server/pkg/config"
	"github.com/simplishare/simplishare-server/pkg/db/models"
	"github.com/simplishare/simplishare-server/pkg/email"
	pkgerrors "github.com/simplishare/simplishare-server/pkg/errors"
	"github.com/simplishare/simplishare-server/pkg/logger"
	"github.com/simplishare/simplishare-server/pkg/security"
)

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	SetVerificationChallenge(ctx context.Context, id uuid.UUID, dto users.VerificationChallengeDTO) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID, at time.Time) error
}

// ChallengeDTO is returned to the client after an OTP send. Token is the
// plaintext secret; only its digest is stored.
type ChallengeDTO struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// Service drives the email verification challenge lifecycle. A challenge
// can only be reissued here; the initial one is minted elsewhere.
type Service interface {
	SendOTP(ctx context.Context, emailAddr, clientToken string) (*ChallengeDTO, error)
	VerifyOTP(ctx context.Context, emailAddr, clientToken, otp string) error
}

type service struct {
	users  userRepository
	sender email.Sender
	cfg    config.VerificationConfig
	logg   *logger.Logger
	now    func() time.Time
}

// NewService builds a verification service with the provided dependencies.
func NewService(usersRepo userRepository, sender email.Sender, cfg config.VerificationConfig, logg *logger.Logger) (Service, error) {
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if sender == nil {
		return nil, fmt.Errorf("email sender required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.ChallengeTTL <= 0 {
		cfg.ChallengeTTL = 5 * time.Minute
	}
	if cfg.OTPLength <= 0 {
		cfg.OTPLength = 8
	}
	return &service{
		users:  usersRepo,
		sender: sender,
		cfg:    cfg,
		logg:   logg,
		now:    time.Now,
	}, nil
}

func (s *service) SendOTP(ctx context.Context, emailAddr, clientToken string) (*ChallengeDTO, error) {
	user, err := s.loadUser(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	if user.EmailVerificationToken == nil || user.EmailVerificationOTP == nil || user.EmailVerificationExp == nil {
		return nil, userDataNotFound()
	}
	if *user.EmailVerificationToken != security.HashToken(clientToken) {
		return nil, invalidToken()
	}

	// an unexpired challenge is returned as-is, no new mail
	if s.now().Before(*user.EmailVerificationExp) {
		return &ChallengeDTO{Email: user.Email, Token: clientToken}, nil
	}

	if user.IsEmailVerified {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is already verified").
			WithAppCode(pkgerrors.AppEmailAlreadyVerified)
	}

	token, err := security.GenerateVerifyToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate verify token")
	}
	otp, err := security.GenerateOTP(s.cfg.OTPLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate otp")
	}

	if err := s.sender.Send(ctx, email.VerificationMessage(user.Email, otp)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send verification email").
			WithAppCode(pkgerrors.AppEmailSendFailed)
	}

	expires := s.now().Add(s.cfg.ChallengeTTL)
	if err := s.users.SetVerificationChallenge(ctx, user.ID, users.VerificationChallengeDTO{
		TokenHash: security.HashToken(token),
		OTP:       otp,
		ExpiresAt: expires,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist challenge")
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "verification otp reissued")
	return &ChallengeDTO{Email: user.Email, Token: token}, nil
}

func (s *service) VerifyOTP(ctx context.Context, emailAddr, clientToken, otp string) error {
	user, err := s.loadUser(ctx, emailAddr)
	if err != nil {
		return err
	}

	if user.EmailVerificationExp != nil && s.now().After(*user.EmailVerificationExp) {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "verification code has expired").
			WithAppCode(pkgerrors.AppExpiredToken)
	}
	if user.EmailVerificationToken == nil || user.EmailVerificationOTP == nil || user.EmailVerificationExp == nil {
		return userDataNotFound()
	}
	if *user.EmailVerificationToken != security.HashToken(clientToken) {
		return invalidToken()
	}
	if *user.EmailVerificationOTP != otp {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid verification code").
			WithAppCode(pkgerrors.AppInvalidOTP)
	}

	if err := s.users.MarkEmailVerified(ctx, user.ID, s.now()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark email verified")
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "email verified")
	return nil
}

func (s *service) loadUser(ctx context.Context, emailAddr string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found").
				WithAppCode(pkgerrors.AppUserNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	return user, nil
}

func userDataNotFound() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, "verification data not found").
		WithAppCode(pkgerrors.AppUserDataNotFound)
}

func invalidToken() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid verification token").
		WithAppCode(pkgerrors.AppInvalidToken)
}
