package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/simplishare/simplishare-server/pkg/requestid"
)

func TestRequestIDMintsSixDigitID(t *testing.T) {
	var captured int
	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = requestid.From(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if captured < 100000 || captured > 999999 {
		t.Fatalf("expected six-digit id got %d", captured)
	}

	header := resp.Header().Get(requestIDHeader)
	if header != strconv.Itoa(captured) {
		t.Fatalf("header %q does not echo context id %d", header, captured)
	}
}

func TestRequestIDIgnoresClientHeader(t *testing.T) {
	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "spoofed")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Header().Get(requestIDHeader) == "spoofed" {
		t.Fatal("client-supplied request id must not be trusted")
	}
}
