package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/simplishare/simplishare-server/pkg/errors"
	"github.com/simplishare/simplishare-server/pkg/requestid"
	"github.com/simplishare/simplishare-server/pkg/types"
)

func TestWriteSuccessEchoesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	ctx := requestid.With(context.Background(), 123456)
	WriteSuccess(ctx, w, "fetched", map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode success envelope: %v", err)
	}
	if !body.Success {
		t.Fatalf("expected success=true")
	}
	if body.Message != "fetched" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.RequestID != 123456 {
		t.Fatalf("unexpected requestId %d", body.RequestID)
	}
	if body.Data.(map[string]any)["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	ctx := requestid.With(context.Background(), 654321)
	err := pkgerrors.New(pkgerrors.CodeValidation, "bad input").
		WithDetails([]map[string]any{{"field": "email"}})
	WriteError(ctx, nil, w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Success {
		t.Fatalf("expected success=false")
	}
	if body.Message != "bad input" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.ErrorCode != int(pkgerrors.AppInvalidFieldFormat) {
		t.Fatalf("unexpected errorCode %d", body.ErrorCode)
	}
	if body.RequestID != 654321 {
		t.Fatalf("unexpected requestId %d", body.RequestID)
	}
	if body.Error == nil {
		t.Fatalf("expected details in public payload")
	}
}

func TestWriteErrorUsesExplicitAppCode(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeNotFound, "store not found").
		WithAppCode(pkgerrors.AppStoreNotFound)
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusNotFound {
		t.Fatalf("expected status 404 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.ErrorCode != int(pkgerrors.AppStoreNotFound) {
		t.Fatalf("unexpected errorCode %d", body.ErrorCode)
	}
}

func TestWriteErrorExposesUntypedMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Message != "boom" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.ErrorCode != int(pkgerrors.AppServerError) {
		t.Fatalf("unexpected errorCode %d", body.ErrorCode)
	}
	if body.Error != nil {
		t.Fatalf("details should be omitted for internal errors")
	}
}
