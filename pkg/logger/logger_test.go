package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggerCarriesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: zerolog.DebugLevel, Output: buf})

	ctx := log.WithRequestID(context.Background(), 123456)
	ctx = log.WithUserID(ctx, "user-1")

	log.Info(ctx, "hello")

	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte(`"request_id":123456`)) {
		t.Fatalf("expected request_id in entry: %s", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"user_id":"user-1"`)) {
		t.Fatalf("expected user_id in entry: %s", out)
	}
}

func TestLoggerErrorIncludesErrAndStack(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: zerolog.DebugLevel, Output: buf})

	log.Error(context.Background(), "boom", errors.New("kaput"))

	if !bytes.Contains(buf.Bytes(), []byte(`"error":"kaput"`)) {
		t.Fatalf("expected error field: %s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"stack"`)) {
		t.Fatalf("expected stack field: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Fatal("expected debug level")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatal("expected info fallback for empty string")
	}
	if ParseLevel("garbage") != zerolog.InfoLevel {
		t.Fatal("expected info fallback for unknown level")
	}
}
