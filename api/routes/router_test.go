package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/simplishare/simplishare-server/internal/auth"
	"github.com/simplishare/simplishare-server/internal/offers"
	"github.com/simplishare/simplishare-server/internal/stores"
	"github.com/simplishare/simplishare-server/internal/users"
	"github.com/simplishare/simplishare-server/internal/verification"
	pkgAuth "github.com/simplishare/simplishare-server/pkg/auth"
	"github.com/simplishare/simplishare-server/pkg/blob"
	"github.com/simplishare/simplishare-server/pkg/config"
	pkgerrors "github.com/simplishare/simplishare-server/pkg/errors"
	"github.com/simplishare/simplishare-server/pkg/types"
)

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
	return &auth.RegisterResponse{Email: req.Email}, nil
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "tok", Redirect: "./home"}, nil
}

func (stubAuthService) Onboard(ctx context.Context, userID uuid.UUID, req auth.OnboardingRequest) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

type stubVerificationService struct{}

func (stubVerificationService) SendOTP(ctx context.Context, email, token string) (*verification.ChallengeDTO, error) {
	return &verification.ChallengeDTO{Email: email, Token: "fresh"}, nil
}

func (stubVerificationService) VerifyOTP(ctx context.Context, email, token, otp string) error {
	return nil
}

type stubStoreService struct{}

func (stubStoreService) Create(ctx context.Context, ownerID uuid.UUID, dto stores.CreateStoreDTO) (*stores.StoreDTO, error) {
	return &stores.StoreDTO{ID: uuid.New(), UserID: ownerID, StoreName: dto.StoreName}, nil
}

func (stubStoreService) List(ctx context.Context, ownerID uuid.UUID) ([]stores.StoreDTO, error) {
	return []stores.StoreDTO{}, nil
}

func (stubStoreService) Update(ctx context.Context, ownerID, storeID uuid.UUID, input stores.UpdateStoreInput) (*stores.StoreDTO, error) {
	return &stores.StoreDTO{ID: storeID, UserID: ownerID}, nil
}

func (stubStoreService) Delete(ctx context.Context, ownerID, storeID uuid.UUID) error {
	return nil
}

type stubOfferService struct{}

func (stubOfferService) Create(ctx context.Context, ownerID uuid.UUID, dto offers.CreateOfferDTO, images []offers.ImageFile) (*offers.OfferDTO, error) {
	return &offers.OfferDTO{ID: uuid.New(), StoreID: dto.StoreID}, nil
}

func (stubOfferService) List(ctx context.Context, ownerID uuid.UUID) ([]offers.OfferDTO, error) {
	return []offers.OfferDTO{}, nil
}

func (stubOfferService) Update(ctx context.Context, ownerID, offerID uuid.UUID, input offers.UpdateOfferInput, images []offers.ImageFile) (*offers.OfferDTO, error) {
	return &offers.OfferDTO{ID: offerID}, nil
}

func (stubOfferService) Delete(ctx context.Context, ownerID, offerID uuid.UUID) error {
	return nil
}

type stubImageOpener struct{}

func (stubImageOpener) Open(ctx context.Context, key string) (*blob.Object, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "image not found").WithAppCode(pkgerrors.AppNotFound)
}

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: "development", Port: "8080"},
		JWT:  config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60},
		Blob: config.BlobConfig{MaxUploadMB: 32},
	}
}

func newTestRouter() http.Handler {
	return NewRouter(testConfig(), nil, nil, nil,
		stubAuthService{}, stubVerificationService{}, stubStoreService{}, stubOfferService{}, stubImageOpener{})
}

func TestRouterUnmatchedRoute(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.ErrorCode != int(pkgerrors.AppRouteNotFound) {
		t.Fatalf("expected errorCode %d got %d", pkgerrors.AppRouteNotFound, envelope.ErrorCode)
	}
	if envelope.RequestID < 100000 || envelope.RequestID > 999999 {
		t.Fatalf("expected six-digit requestId got %d", envelope.RequestID)
	}
}

func TestRouterRegisterIsPublic(t *testing.T) {
	router := newTestRouter()

	body := strings.NewReader(`{"username":"ab1","email":"a@b.com","password":"12345678"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterStoresRequireAuth(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestRouterStoresWithToken(t *testing.T) {
	cfg := testConfig()
	router := NewRouter(cfg, nil, nil, nil,
		stubAuthService{}, stubVerificationService{}, stubStoreService{}, stubOfferService{}, stubImageOpener{})

	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), uuid.New(), "a@b.com")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterImageRouteIsPublic(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/offers/image/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// The stub opener reports not-found; what matters is the route does
	// not demand credentials.
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
