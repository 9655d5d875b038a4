package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFrom(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"typed", New(http.StatusBadRequest, "invalid_limit", errors.New("limit")), http.StatusBadRequest, "invalid_limit"},
		{"wrapped typed", fmt.Errorf("handler: %w", New(http.StatusConflict, "conflict", nil)), http.StatusConflict, "conflict"},
		{"not found", fmt.Errorf("load course: %w", ErrNotFound), http.StatusNotFound, "not_found"},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"invalid", ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
		{"other", errors.New("db down"), http.StatusInternalServerError, "recommendations_failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := From(tc.err, "recommendations_failed")
			if got.Status != tc.status || got.Code != tc.code {
				t.Fatalf("From: got=(%d,%q) want=(%d,%q)", got.Status, got.Code, tc.status, tc.code)
			}
		})
	}
	if From(nil, "x") != nil {
		t.Fatalf("From(nil) should be nil")
	}
}
