package core

import (
	"errors"
	"reflect"
	"testing"
)

const sampleSnapshot = "email,phone,username,expire date\n" +
	"a@x.com,0501234567,alice,2099-01-01\n" +
	"b@x.com,0507654321,bob,2020-01-01\n"

func TestDecodeSnapshot_Headers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain headers lower-cased",
			text: "Email,Phone,Username\n",
			want: []string{"email", "phone", "username"},
		},
		{
			name: "quoted headers stripped",
			text: `"email","phone","username"` + "\n",
			want: []string{"email", "phone", "username"},
		},
		{
			name: "expire date alias folded",
			text: "email,expire date\n",
			want: []string{"email", "expiry"},
		},
		{
			name: "expiredate alias folded",
			text: "email,ExpireDate\n",
			want: []string{"email", "expiry"},
		},
		{
			name: "expire_date alias folded",
			text: "email,expire_date\n",
			want: []string{"email", "expiry"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := DecodeSnapshot(tt.text)
			if err != nil {
				t.Fatalf("DecodeSnapshot() error = %v", err)
			}
			if !reflect.DeepEqual(snap.Headers, tt.want) {
				t.Errorf("Headers = %v, want %v", snap.Headers, tt.want)
			}
		})
	}
}

func TestDecodeSnapshot_Records(t *testing.T) {
	snap, err := DecodeSnapshot(sampleSnapshot)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}

	if len(snap.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(snap.Records))
	}

	first := snap.Records[0]
	if first.RowIndex != 1 {
		t.Errorf("RowIndex = %d, want 1", first.RowIndex)
	}
	if got := first.Field(ColEmail); got != "a@x.com" {
		t.Errorf("email = %q, want %q", got, "a@x.com")
	}
	if got := first.Field(ColExpiry); got != "2099-01-01" {
		t.Errorf("expiry = %q, want %q", got, "2099-01-01")
	}

	if snap.Records[1].RowIndex != 2 {
		t.Errorf("second RowIndex = %d, want 2", snap.Records[1].RowIndex)
	}
}

func TestDecodeSnapshot_ShortRowPadsEmpty(t *testing.T) {
	snap, err := DecodeSnapshot("email,phone,username\na@x.com,0501234567\n")
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if got := snap.Records[0].Field(ColUsername); got != "" {
		t.Errorf("missing trailing field = %q, want empty", got)
	}
}

func TestDecodeSnapshot_LongRowTruncates(t *testing.T) {
	snap, err := DecodeSnapshot("email,phone\na@x.com,0501234567,extra,cells\n")
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if got := len(snap.Records[0].Fields); got != 2 {
		t.Errorf("field count = %d, want 2", got)
	}
}

func TestDecodeSnapshot_SkipsBlankLines(t *testing.T) {
	text := "\nemail,username\n\n  \na@x.com,alice\n\n"
	snap, err := DecodeSnapshot(text)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if len(snap.Records) != 1 {
		t.Errorf("expected 1 record, got %d", len(snap.Records))
	}
}

func TestDecodeSnapshot_CRLF(t *testing.T) {
	snap, err := DecodeSnapshot("email,username\r\na@x.com,alice\r\n")
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if got := snap.Records[0].Field(ColUsername); got != "alice" {
		t.Errorf("username = %q, want %q (trailing CR not stripped?)", got, "alice")
	}
}

func TestDecodeSnapshot_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"blank lines only", "\n\n   \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSnapshot(tt.text)
			if !errors.Is(err, ErrMalformedSnapshot) {
				t.Errorf("DecodeSnapshot() error = %v, want ErrMalformedSnapshot", err)
			}
		})
	}
}

// Decoding the same text twice must yield identical record sequences.
func TestDecodeSnapshot_Deterministic(t *testing.T) {
	a, err := DecodeSnapshot(sampleSnapshot)
	if err != nil {
		t.Fatalf("first decode: %v", err)
	}
	b, err := DecodeSnapshot(sampleSnapshot)
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("decoding the same snapshot twice produced different results")
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"quoted"`, "quoted"},
		{"  padded  ", "padded"},
		{"\"padded quoted\" ", "padded quoted"},
		{"plain", "plain"},
		{`half"quote`, "halfquote"},
		{"", ""},
	}

	for _, tt := range tests {
		got := CleanCell(tt.input)
		if got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
