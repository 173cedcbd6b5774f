package application

import (
	"strings"
	"time"
)

const (
	// TimestampLayout is the only accepted input layout for booking windows.
	TimestampLayout = "2006-01-02 15:04"
	// TimestampPattern is TimestampLayout as shown to users.
	TimestampPattern = "YYYY-MM-DD HH:MM"
	// DisplayLayout renders stored windows.
	DisplayLayout = "2006-01-02T15:04"
)

// ParseTimestamp parses text with TimestampLayout. Surrounding blanks are
// ignored; the result carries no zone information beyond UTC.
func ParseTimestamp(field, text string) (time.Time, error) {
	trimmed := strings.TrimSpace(text)
	parsed, err := time.Parse(TimestampLayout, trimmed)
	if err != nil {
		return time.Time{}, &FormatError{Field: field, Input: text, Pattern: TimestampPattern}
	}
	return parsed, nil
}

// FormatTimestamp renders t with DisplayLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(DisplayLayout)
}

// FormatWindow renders a start/end pair as "start–end".
func FormatWindow(start, end time.Time) string {
	return FormatTimestamp(start) + "–" + FormatTimestamp(end)
}
