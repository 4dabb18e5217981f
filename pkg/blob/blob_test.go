package blob

import (
	"context"
	"testing"

	apperrors "github.com/simplishare/simplishare-server/pkg/errors"
)

func TestOpenRejectsMalformedKey(t *testing.T) {
	store := &Store{bucket: "test"}

	_, err := store.Open(context.Background(), "not-a-uuid")
	if err == nil {
		t.Fatal("expected error for malformed key")
	}

	appErr := apperrors.As(err)
	if appErr == nil {
		t.Fatalf("expected typed error, got %T", err)
	}
	if appErr.Code() != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", appErr.Code())
	}
}

func TestDeleteIgnoresEmptyKey(t *testing.T) {
	store := &Store{bucket: "test"}
	// must not touch the client at all
	store.Delete(context.Background(), "")
}
