package application

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	t.Run("accepts the fixed layout", func(t *testing.T) {
		got, err := ParseTimestamp("start", " 2024-06-01 10:00 ")
		if err != nil {
			t.Fatalf("ParseTimestamp returned error: %v", err)
		}
		want := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		for _, input := range []string{"not-a-date", "2024-06-01", "2024-06-01T10:00", "01/06/2024 10:00", "2024-13-01 10:00", "2024-06-01 25:00", ""} {
			_, err := ParseTimestamp("end", input)
			if !errors.Is(err, ErrInvalidFormat) {
				t.Fatalf("expected ErrInvalidFormat for %q, got %v", input, err)
			}
			var fErr *FormatError
			if !errors.As(err, &fErr) || fErr.Field != "end" || fErr.Input != input || fErr.Pattern != TimestampPattern {
				t.Fatalf("unexpected FormatError for %q: %#v", input, fErr)
			}
		}
	})
}

func TestFormatWindow(t *testing.T) {
	start := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	if got := FormatWindow(start, start.Add(time.Hour)); got != "2024-06-01T10:00–2024-06-01T11:00" {
		t.Fatalf("unexpected window %q", got)
	}
	if got := FormatTimestamp(start); got != "2024-06-01T10:00" {
		t.Fatalf("unexpected timestamp %q", got)
	}
}
