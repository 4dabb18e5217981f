package security_test

import (
	"testing"

	"github.com/simplishare/simplishare-server/pkg/security"
)

func TestGenerateVerifyToken(t *testing.T) {
	first, err := security.GenerateVerifyToken()
	if err != nil {
		t.Fatalf("GenerateVerifyToken returned error: %v", err)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}

	second, err := security.GenerateVerifyToken()
	if err != nil {
		t.Fatalf("GenerateVerifyToken returned error: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct tokens")
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	a := security.HashToken("abc123")
	b := security.HashToken("abc123")
	if a != b {
		t.Fatal("expected identical digests for identical input")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == security.HashToken("abc124") {
		t.Fatal("expected different digests for different input")
	}
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp, err := security.GenerateOTP(8)
		if err != nil {
			t.Fatalf("GenerateOTP returned error: %v", err)
		}
		if len(otp) != 8 {
			t.Fatalf("expected 8 digits, got %q", otp)
		}
		if otp[0] == '0' {
			t.Fatalf("leading zero in otp %q", otp)
		}
	}
}

func TestGenerateOTPRejectsBadLength(t *testing.T) {
	if _, err := security.GenerateOTP(2); err == nil {
		t.Fatal("expected error for too-short otp")
	}
	if _, err := security.GenerateOTP(12); err == nil {
		t.Fatal("expected error for too-long otp")
	}
}
