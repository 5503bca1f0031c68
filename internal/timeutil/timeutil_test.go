package timeutil

import (
	"testing"
	"time"
)

func TestFormatElapsed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input time.Duration
		want  string
	}{
		{input: 0, want: "0:00:00"},
		{input: 70 * time.Minute, want: "1:10:00"},
		{input: 105 * time.Minute, want: "1:45:00"},
		{input: 12*time.Hour + 59*time.Minute + 5*time.Second, want: "12:59:05"},
		{input: -5 * time.Minute, want: "-0:05:00"},
	}

	for _, tc := range tests {
		if got := FormatElapsed(tc.input); got != tc.want {
			t.Fatalf("FormatElapsed(%s): want %q, got %q", tc.input, tc.want, got)
		}
	}
}

func TestHoursFrom(t *testing.T) {
	t.Parallel()

	if got := HoursFrom(90 * time.Minute); got != 1.5 {
		t.Fatalf("expected 1.5, got %v", got)
	}
}
