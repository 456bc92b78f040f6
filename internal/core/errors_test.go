package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"malformed snapshot", ErrMalformedSnapshot, "SNAP001"},
		{"wrapped malformed snapshot", fmt.Errorf("decode: %w", ErrMalformedSnapshot), "SNAP001"},
		{"no matching record", ErrNoMatchingRecord, "MATCH001"},
		{"ambiguous query", ErrAmbiguousQuery, "QRY001"},
		{"unknown error", errors.New("disk on fire"), "GEN001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := MapError(tt.err)
			if msg.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, msg.Code, tt.wantCode)
			}
			if msg.Message == "" {
				t.Error("empty user message")
			}
		})
	}
}

// Internal details must never surface through MapError.
func TestMapError_UnknownErrorDoesNotLeak(t *testing.T) {
	msg := MapError(errors.New("pq: password authentication failed"))
	if msg.Message == "pq: password authentication failed" {
		t.Error("MapError leaked the raw error text to the user message")
	}
}
