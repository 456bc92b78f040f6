package core

import "testing"

func TestNormalize_Email(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase passthrough", "a@x.com", "a@x.com"},
		{"case folded", "A@X.Com", "a@x.com"},
		{"trimmed", "  a@x.com  ", "a@x.com"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(FieldEmail, tt.input)
			if got != tt.want {
				t.Errorf("Normalize(email, %q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Phone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"digits passthrough", "0501234567", "0501234567"},
		{"hyphens stripped", "050-123-4567", "0501234567"},
		{"spaces stripped", "050 123 4567", "0501234567"},
		{"mixed formatting", " 050-123 4567 ", "0501234567"},
		{"plus preserved", "+972-50-1234567", "+972501234567"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(FieldPhone, tt.input)
			if got != tt.want {
				t.Errorf("Normalize(phone, %q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Stripped forms are compared literally downstream; the normalizer must not
// fold country-code and leading-zero forms into each other.
func TestNormalize_Phone_CountryCodeFormsStayDistinct(t *testing.T) {
	international := Normalize(FieldPhone, "+972501234567")
	local := Normalize(FieldPhone, "0501234567")
	if international == local {
		t.Errorf("expected %q and %q to stay distinct, both normalized to %q",
			"+972501234567", "0501234567", international)
	}
}

func TestNormalize_Username(t *testing.T) {
	got := Normalize(FieldUsername, "  ALICE ")
	if got != "alice" {
		t.Errorf("Normalize(username) = %q, want %q", got, "alice")
	}
}
