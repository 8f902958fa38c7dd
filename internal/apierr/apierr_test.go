package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", NotFound("question %s missing", "x"), http.StatusNotFound, "not_found"},
		{"invalid input", InvalidInput("bad"), http.StatusBadRequest, "invalid_input"},
		{"unauthorized", Unauthorized("nope"), http.StatusUnauthorized, "unauthorized"},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError, "internal"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal"},
		{"wrapped", fmt.Errorf("context: %w", NotFound("gone")), http.StatusNotFound, "not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := StatusOf(tc.err)
			if status != tc.wantStatus || code != tc.wantCode {
				t.Fatalf("StatusOf = (%d, %q), want (%d, %q)", status, code, tc.wantStatus, tc.wantCode)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := NotFound("user %s not found", "alice")
	if err.Error() != "user alice not found" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !errors.Is(errors.Unwrap(err), err.Err) {
		t.Fatal("Unwrap did not return the wrapped error")
	}
}
