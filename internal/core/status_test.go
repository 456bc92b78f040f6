package core

import (
	"testing"
	"time"
)

func TestClassify_Boundaries(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry string
		want   SubscriptionStatus
	}{
		{"exactly plus seven days", "2024-01-08T00:00:00Z", StatusActive},
		{"one second inside the window", "2024-01-07T23:59:59Z", StatusExpiring},
		{"equal to now", "2024-01-01T00:00:00Z", StatusExpiring},
		{"strictly before now", "2023-12-31T00:00:00Z", StatusExpired},
		{"one second before now", "2023-12-31T23:59:59Z", StatusExpired},
		{"far future", "2099-01-01", StatusActive},
		{"unparseable", "not-a-date", StatusUnknown},
		{"empty", "", StatusUnknown},
		{"whitespace", "   ", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.expiry, now, ExpiringWindow)
			if got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.expiry, got, tt.want)
			}
		})
	}
}

func TestClassify_CustomWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// A 1-day window leaves +2d active where the default window would
	// report expiring.
	got := Classify("2024-01-03", now, 24*time.Hour)
	if got != StatusActive {
		t.Errorf("Classify(+2d, 1d window) = %q, want %q", got, StatusActive)
	}
}

func TestParseExpiry_Layouts(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-06-15", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"2024/06/15", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"6/15/2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"Jun 15, 2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"15 Jun 2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-06-15T12:30:00Z", time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseExpiry(tt.input)
			if !ok {
				t.Fatalf("ParseExpiry(%q) failed", tt.input)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseExpiry(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseExpiry_Invalid(t *testing.T) {
	for _, input := range []string{"", "not-a-date", "2024-13-40", "someday"} {
		if _, ok := ParseExpiry(input); ok {
			t.Errorf("ParseExpiry(%q) succeeded, want failure", input)
		}
	}
}
