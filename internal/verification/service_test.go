package verification

import (
	"context"
	"errors"
	"testing"
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

type stubUserRepo struct {
	user    *models.User
	findErr error

	challenge  *users.VerificationChallengeDTO
	verifiedID uuid.UUID
	verifiedAt time.Time
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.user, nil
}

func (s *stubUserRepo) SetVerificationChallenge(ctx context.Context, id uuid.UUID, dto users.VerificationChallengeDTO) error {
	s.challenge = &dto
	return nil
}

func (s *stubUserRepo) MarkEmailVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.verifiedID = id
	s.verifiedAt = at
	return nil
}

type stubSender struct {
	sent    []email.Message
	sendErr error
}

func (s *stubSender) Send(ctx context.Context, msg email.Message) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, msg)
	return nil
}

const clientToken = "client-held-token"

func challengedUser(expires time.Time, verified bool) *models.User {
	hash := security.HashToken(clientToken)
	otp := "12345678"
	return &models.User{
		ID:                     uuid.New(),
		Email:                  "person@example.com",
		IsEmailVerified:        verified,
		EmailVerificationToken: &hash,
		EmailVerificationOTP:   &otp,
		EmailVerificationExp:   &expires,
	}
}

func newTestService(t *testing.T, repo *stubUserRepo, sender *stubSender) *service {
	t.Helper()
	svc, err := NewService(repo, sender, config.VerificationConfig{
		ChallengeTTL: 5 * time.Minute,
		OTPLength:    8,
	}, logger.New(logger.Options{ServiceName: "verification-test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc.(*service)
}

func expectAppCode(t *testing.T, err error, want pkgerrors.AppCode) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.AppCode() != want {
		t.Fatalf("expected app code %d, got %d", want, typed.AppCode())
	}
}

func TestSendOTPUserNotFound(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{findErr: gorm.ErrRecordNotFound}, &stubSender{})

	_, err := svc.SendOTP(context.Background(), "missing@example.com", clientToken)
	expectAppCode(t, err, pkgerrors.AppUserNotFound)
}

func TestSendOTPWithoutChallengeState(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "fresh@example.com"}
	svc := newTestService(t, &stubUserRepo{user: user}, &stubSender{})

	_, err := svc.SendOTP(context.Background(), user.Email, clientToken)
	expectAppCode(t, err, pkgerrors.AppUserDataNotFound)
}

func TestSendOTPTokenMismatch(t *testing.T) {
	user := challengedUser(time.Now().Add(-time.Minute), false)
	svc := newTestService(t, &stubUserRepo{user: user}, &stubSender{})

	_, err := svc.SendOTP(context.Background(), user.Email, "someone-elses-token")
	expectAppCode(t, err, pkgerrors.AppInvalidToken)
}

func TestSendOTPUnexpiredIsIdempotent(t *testing.T) {
	user := challengedUser(time.Now().Add(3*time.Minute), false)
	repo := &stubUserRepo{user: user}
	sender := &stubSender{}
	svc := newTestService(t, repo, sender)

	dto, err := svc.SendOTP(context.Background(), user.Email, clientToken)
	if err != nil {
		t.Fatalf("send otp: %v", err)
	}
	if dto.Token != clientToken {
		t.Fatalf("expected same token back, got %q", dto.Token)
	}
	if len(sender.sent) != 0 {
		t.Fatal("no mail may be sent while the challenge is unexpired")
	}
	if repo.challenge != nil {
		t.Fatal("challenge must not be rewritten while unexpired")
	}
}

func TestSendOTPAlreadyVerified(t *testing.T) {
	user := challengedUser(time.Now().Add(-time.Minute), true)
	svc := newTestService(t, &stubUserRepo{user: user}, &stubSender{})

	_, err := svc.SendOTP(context.Background(), user.Email, clientToken)
	expectAppCode(t, err, pkgerrors.AppEmailAlreadyVerified)
}

func TestSendOTPReissuesExpiredChallenge(t *testing.T) {
	user := challengedUser(time.Now().Add(-time.Minute), false)
	repo := &stubUserRepo{user: user}
	sender := &stubSender{}
	svc := newTestService(t, repo, sender)

	dto, err := svc.SendOTP(context.Background(), user.Email, clientToken)
	if err != nil {
		t.Fatalf("send otp: %v", err)
	}
	if dto.Token == "" || dto.Token == clientToken {
		t.Fatalf("expected a fresh token, got %q", dto.Token)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(sender.sent))
	}
	if sender.sent[0].To != user.Email {
		t.Fatalf("mail sent to %s", sender.sent[0].To)
	}

	if repo.challenge == nil {
		t.Fatal("expected challenge to be persisted")
	}
	if repo.challenge.TokenHash != security.HashToken(dto.Token) {
		t.Fatal("persisted hash must match the returned token")
	}
	if len(repo.challenge.OTP) != 8 {
		t.Fatalf("expected 8-digit otp, got %q", repo.challenge.OTP)
	}
	wantExp := time.Now().Add(5 * time.Minute)
	if repo.challenge.ExpiresAt.Before(wantExp.Add(-10*time.Second)) || repo.challenge.ExpiresAt.After(wantExp.Add(10*time.Second)) {
		t.Fatalf("unexpected expiry %v", repo.challenge.ExpiresAt)
	}
}

func TestSendOTPMailFailure(t *testing.T) {
	user := challengedUser(time.Now().Add(-time.Minute), false)
	repo := &stubUserRepo{user: user}
	sender := &stubSender{sendErr: errors.New("smtp down")}
	svc := newTestService(t, repo, sender)

	_, err := svc.SendOTP(context.Background(), user.Email, clientToken)
	expectAppCode(t, err, pkgerrors.AppEmailSendFailed)
	if repo.challenge != nil {
		t.Fatal("challenge must not be persisted when the mail fails")
	}
}

func TestVerifyOTPSuccessClearsChallenge(t *testing.T) {
	user := challengedUser(time.Now().Add(3*time.Minute), false)
	repo := &stubUserRepo{user: user}
	svc := newTestService(t, repo, &stubSender{})

	if err := svc.VerifyOTP(context.Background(), user.Email, clientToken, "12345678"); err != nil {
		t.Fatalf("verify otp: %v", err)
	}
	if repo.verifiedID != user.ID {
		t.Fatal("expected user to be marked verified")
	}
}

func TestVerifyOTPExpired(t *testing.T) {
	user := challengedUser(time.Now().Add(-time.Minute), false)
	svc := newTestService(t, &stubUserRepo{user: user}, &stubSender{})

	err := svc.VerifyOTP(context.Background(), user.Email, clientToken, "12345678")
	expectAppCode(t, err, pkgerrors.AppExpiredToken)
}

func TestVerifyOTPAfterVerificationFailsUserDataNotFound(t *testing.T) {
	// challenge fields are cleared once verified, so a repeat call has
	// nothing to compare against
	user := &models.User{ID: uuid.New(), Email: "done@example.com", IsEmailVerified: true}
	svc := newTestService(t, &stubUserRepo{user: user}, &stubSender{})

	err := svc.VerifyOTP(context.Background(), user.Email, clientToken, "12345678")
	expectAppCode(t, err, pkgerrors.AppUserDataNotFound)
}

func TestVerifyOTPTokenMismatch(t *testing.T) {
	user := challengedUser(time.Now().Add(3*time.Minute), false)
	svc := newTestService(t, &stubUserRepo{user: user}, &stubSender{})

	err := svc.VerifyOTP(context.Background(), user.Email, "wrong-token", "12345678")
	expectAppCode(t, err, pkgerrors.AppInvalidToken)
}

func TestVerifyOTPCodeMismatch(t *testing.T) {
	user := challengedUser(time.Now().Add(3*time.Minute), false)
	svc := newTestService(t, &stubUserRepo{user: user}, &stubSender{})

	err := svc.VerifyOTP(context.Background(), user.Email, clientToken, "00000000")
	expectAppCode(t, err, pkgerrors.AppInvalidOTP)
}
