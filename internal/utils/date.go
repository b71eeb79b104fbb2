package utils

import "time"

const DateLayout = "2006-01-02"

// ParseDate converts a date-only request field that has already passed
// datetime validation. Empty strings map to nil.
func ParseDate(value string) *time.Time {
	if value == "" {
		return nil
	}

	parsed, err := time.Parse(DateLayout, value)

	if err != nil {
		return nil
	}

	return &parsed
}
