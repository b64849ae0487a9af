package validators

import (
	"fmt"
	"strings"
	"time"
)

// ISOMillisLayout is the layout JavaScript's Date.prototype.toISOString produces
// Example: 2025-11-10T14:30:00.123Z
const ISOMillisLayout = "2006-01-02T15:04:05.000Z"

// FormatISOTimestamp renders t in UTC with millisecond precision and a Z suffix
func FormatISOTimestamp(t time.Time) string {
	return t.UTC().Format(ISOMillisLayout)
}

// ParseISOTimestamp parses an ISO-8601 UTC timestamp with optional fractional seconds
// Offsets other than Z are rejected so that all API timestamps stay in one zone
func ParseISOTimestamp(timestamp string) (time.Time, error) {
	if timestamp == "" {
		return time.Time{}, NewValidationError("timestamp", "timestamp is required")
	}
	if !strings.HasSuffix(timestamp, "Z") {
		return time.Time{}, NewValidationError("timestamp", fmt.Sprintf("timestamp must be UTC with Z suffix (got: %s)", timestamp))
	}

	// RFC3339Nano accepts any number of fractional digits, including none
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return time.Time{}, NewValidationError("timestamp", fmt.Sprintf("invalid ISO-8601 timestamp: %s", timestamp))
	}

	return t.UTC(), nil
}

// IsValidISOTimestamp reports whether ParseISOTimestamp accepts timestamp
func IsValidISOTimestamp(timestamp string) bool {
	_, err := ParseISOTimestamp(timestamp)
	return err == nil
}
