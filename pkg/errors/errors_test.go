package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code    Code
		status  int
		appCode AppCode
	}{
		{CodeValidation, http.StatusBadRequest, AppInvalidFieldFormat},
		{CodeUnauthorized, http.StatusUnauthorized, AppUnauthorizedAccess},
		{CodeForbidden, http.StatusForbidden, AppAccessDenied},
		{CodeNotFound, http.StatusNotFound, AppNotFound},
		{CodeConflict, http.StatusConflict, AppDuplicateEntry},
		{CodeInternal, http.StatusInternalServerError, AppServerError},
	}

	for _, tc := range tests {
		meta := MetadataFor(tc.code)
		if meta.HTTPStatus != tc.status {
			t.Fatalf("%s: expected status %d got %d", tc.code, tc.status, meta.HTTPStatus)
		}
		if meta.DefaultAppCode != tc.appCode {
			t.Fatalf("%s: expected default app code %d got %d", tc.code, tc.appCode, meta.DefaultAppCode)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500 fallback, got %d", meta.HTTPStatus)
	}
}

func TestAppCodeDefaultsFromCategory(t *testing.T) {
	err := New(CodeNotFound, "missing")
	if got := err.AppCode(); got != AppNotFound {
		t.Fatalf("expected %d got %d", AppNotFound, got)
	}
}

func TestAppCodeExplicitOverride(t *testing.T) {
	err := New(CodeNotFound, "store missing").WithAppCode(AppStoreNotFound)
	if got := err.AppCode(); got != AppStoreNotFound {
		t.Fatalf("expected %d got %d", AppStoreNotFound, got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "db unavailable")
	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	inner := New(CodeConflict, "duplicate").WithAppCode(AppDuplicateEntry)
	outer := fmt.Errorf("handler: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.AppCode() != AppDuplicateEntry {
		t.Fatalf("unexpected app code %d", typed.AppCode())
	}
}

func TestAsReturnsNilForUntypedError(t *testing.T) {
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("expected nil for untyped error")
	}
	if As(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	cause := stdErrors.New("root")
	err := Wrap(CodeInternal, cause, "wrapped")

	d := Dump(err)
	if d.TopMessage == "" {
		t.Fatal("expected top message")
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected at least two chain entries, got %d", len(d.Chain))
	}
	if d.Code != CodeInternal {
		t.Fatalf("unexpected code %s", d.Code)
	}
	if d.AppCode != AppServerError {
		t.Fatalf("unexpected app code %d", d.AppCode)
	}
}
