package utils

import (
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = time.RFC3339
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(layoutDate, strings.TrimSpace(s))
}

// ParseDateTime parses an RFC3339 timestamp.
func ParseDateTime(s string) (time.Time, error) {
	return time.Parse(layoutDateTime, strings.TrimSpace(s))
}

// FormatDateTime formats a timestamp for PDF documents and logs.
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
