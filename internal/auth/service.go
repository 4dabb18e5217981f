package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simplishare/simplishare-server/internal/users"
	pkgAuth "github.com/simplishare/simplishare-server/pkg/auth"
	"github.com/simplishare/simplishare-server/pkg/config"
	"github.com/simplishare/simplishare-server/pkg/db"
	"github.com/simplishare/simplishare-server/pkg/db/models"
	pkgerrors "github.com/simplishare/simplishare-server/pkg/errors"
	"github.com/simplishare/simplishare-server/pkg/security"
)

const (
	redirectHome       = "./home"
	redirectOnboarding = "/onboarding"
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Onboard(ctx context.Context, userID uuid.UUID, req OnboardingRequest) (*users.UserDTO, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ApplyOnboarding(ctx context.Context, id uuid.UUID, dto users.OnboardingDTO) (*models.User, error)
}

type service struct {
	users       userRepository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{
		users:       params.UserRepo,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	now := time.Now().UTC()
	username := strings.TrimSpace(req.Username)
	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:           email,
		Username:        &username,
		PasswordHash:    hash,
		IsEmailVerified: true,
		EmailVerifiedAt: &now,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "an account with this email or username already exists").
				WithAppCode(pkgerrors.AppDuplicateEntry)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	return &RegisterResponse{Email: user.Email}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("no account found for %s", email)).
				WithAppCode(pkgerrors.AppUserNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	valid, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials").
			WithAppCode(pkgerrors.AppInvalidCredentials)
	}

	token, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now(), user.ID, user.Email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	redirect := redirectOnboarding
	if user.IsOnboardingComplete {
		redirect = redirectHome
	}

	return &LoginResponse{AccessToken: token, Redirect: redirect}, nil
}

func (s *service) Onboard(ctx context.Context, userID uuid.UUID, req OnboardingRequest) (*users.UserDTO, error) {
	user, err := s.users.ApplyOnboarding(ctx, userID, users.OnboardingDTO{
		FirstName:            &req.FirstName,
		LastName:             &req.LastName,
		Profession:           &req.Profession,
		CompanyName:          &req.CompanyName,
		Industry:             &req.Industry,
		TeamSize:             &req.TeamSize,
		LookingFor:           &req.LookingFor,
		IsOnboardingComplete: req.IsOnboardingComplete,
		InstagramConnected:   req.InstagramConnected,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found").
				WithAppCode(pkgerrors.AppUserNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply onboarding")
	}

	return users.FromModel(user), nil
}
