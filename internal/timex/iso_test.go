package timex

import (
	"testing"
	"time"
)

func TestParseISO_Time(t *testing.T) {
	want := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	got, err := ParseISO(want)
	if err != nil {
		t.Fatalf("ParseISO error: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestParseISO_String(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"rfc3339", "2024-05-01T12:30:00Z"},
		{"rfc3339_nano", "2024-05-01T12:30:00.000000Z"},
		{"no_zone", "2024-05-01T12:30:00"},
		{"space_separator", "2024-05-01 12:30:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISO(tt.in)
			if err != nil {
				t.Fatalf("ParseISO(%q) error: %v", tt.in, err)
			}
			if got.Hour() != 12 || got.Minute() != 30 {
				t.Fatalf("ParseISO(%q) = %v", tt.in, got)
			}
		})
	}
}

func TestParseISO_Bytes(t *testing.T) {
	got, err := ParseISO([]byte("2024-05-01T12:30:00Z"))
	if err != nil {
		t.Fatalf("ParseISO error: %v", err)
	}
	if got.IsZero() {
		t.Fatalf("got zero time")
	}
}

func TestParseISO_Invalid(t *testing.T) {
	if _, err := ParseISO("yesterday"); err == nil {
		t.Fatalf("expected error for invalid timestamp")
	}
	if _, err := ParseISO(42); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

func TestFormatISO_RoundTrip(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	original := time.Date(2024, 5, 1, 15, 30, 45, 987654321, loc)

	s := FormatISO(original)

	parsed, err := ParseISO(s)
	if err != nil {
		t.Fatalf("ParseISO(%q) error: %v", s, err)
	}
	if !parsed.Equal(original.Truncate(time.Second)) {
		t.Fatalf("round trip mismatch: wrote %v, read %v", original, parsed)
	}
	if FormatISO(parsed) != s {
		t.Fatalf("second format differs: %q vs %q", FormatISO(parsed), s)
	}
}
