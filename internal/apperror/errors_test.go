package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/TimeAway/blog-design/internal/database"
)

func TestValidationError(t *testing.T) {
	err := Validation("type", "unknown alert type")
	if err.Type != TypeValidation {
		t.Errorf("expected TypeValidation, got %d", err.Type)
	}
	if err.Field != "type" {
		t.Errorf("expected field 'type', got %q", err.Field)
	}
	if err.Error() != "unknown alert type" {
		t.Errorf("expected Error() 'unknown alert type', got %q", err.Error())
	}
}

func TestNotFoundError(t *testing.T) {
	err := NotFound("alert", "disk-space")
	if err.Type != TypeNotFound {
		t.Errorf("expected TypeNotFound, got %d", err.Type)
	}
	if err.Message != `alert "disk-space" not found` {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestInternalErrorWraps(t *testing.T) {
	underlying := errors.New("database is locked")
	err := Internal("Failed to record dismissal", underlying)
	if err.Type != TypeInternal {
		t.Errorf("expected TypeInternal, got %d", err.Type)
	}
	if !errors.Is(err, underlying) {
		t.Error("expected errors.Is to find underlying error")
	}
	if err.Error() != "Failed to record dismissal: database is locked" {
		t.Errorf("unexpected Error(): %q", err.Error())
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		errType  Type
		wantCode int
	}{
		{TypeValidation, http.StatusBadRequest},
		{TypeNotFound, http.StatusNotFound},
		{TypeConflict, http.StatusConflict},
		{TypeInternal, http.StatusInternalServerError},
		{Type(99), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		err := &Error{Type: tt.errType, Message: "test"}
		got := HTTPStatus(err)
		if got != tt.wantCode {
			t.Errorf("HTTPStatus(%d) = %d, want %d", tt.errType, got, tt.wantCode)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	ve := &ValidationErrors{}
	if ve.HasErrors() {
		t.Error("expected no errors initially")
	}
	if ve.Err() != nil {
		t.Error("expected nil Err() when empty")
	}

	ve.Add("alerts[0].message", "message is required")
	ve.Add("alerts[1].type", "unknown alert type \"danger\"")

	if !ve.HasErrors() {
		t.Error("expected errors after Add")
	}
	if len(ve.Errors) != 2 {
		t.Errorf("expected 2 errors, got %d", len(ve.Errors))
	}
	want := `alerts[0].message: message is required; alerts[1].type: unknown alert type "danger"`
	if ve.Error() != want {
		t.Errorf("Error() = %q, want %q", ve.Error(), want)
	}
}

func TestIsUniqueConstraintViolation(t *testing.T) {
	if IsUniqueConstraintViolation(nil) {
		t.Error("expected false for nil error")
	}
	if IsUniqueConstraintViolation(errors.New("something else")) {
		t.Error("expected false for non-constraint error")
	}

	constraintErr := errors.New("constraint failed: UNIQUE constraint failed: alert_instances.id (1555)")
	if !IsUniqueConstraintViolation(constraintErr) {
		t.Error("expected true for unique constraint error")
	}
}

func TestIsUniqueConstraintViolationFromDriver(t *testing.T) {
	sqlDB, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer sqlDB.Close()

	if _, err := sqlDB.Exec(`CREATE TABLE t (id TEXT PRIMARY KEY, name TEXT UNIQUE)`); err != nil {
		t.Fatalf("creating table: %v", err)
	}
	if _, err := sqlDB.Exec(`INSERT INTO t (id, name) VALUES ('a', 'x')`); err != nil {
		t.Fatalf("inserting: %v", err)
	}

	_, pkErr := sqlDB.Exec(`INSERT INTO t (id, name) VALUES ('a', 'y')`)
	if !IsUniqueConstraintViolation(pkErr) {
		t.Errorf("expected primary key violation to match, got %v", pkErr)
	}
	_, uniqueErr := sqlDB.Exec(`INSERT INTO t (id, name) VALUES ('b', 'x')`)
	if !IsUniqueConstraintViolation(uniqueErr) {
		t.Errorf("expected unique violation to match, got %v", uniqueErr)
	}
	_, otherErr := sqlDB.Exec(`INSERT INTO missing (id) VALUES ('c')`)
	if IsUniqueConstraintViolation(otherErr) {
		t.Errorf("expected unrelated driver error not to match, got %v", otherErr)
	}
}
