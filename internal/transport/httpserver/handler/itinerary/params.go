package itinerary

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func parseUintParam(value string) (uint, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("id is required")
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return uint(parsed), nil
}

func parseDateRequired(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	return time.Parse("2006-01-02", value)
}

func parseDateOptional(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := parseDateRequired(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseTimeOfDay validates an HH:MM wall-clock string and returns it
// normalized, or nil for an absent value.
func parseTimeOfDay(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse("15:04", trimmed)
	if err != nil {
		return nil, err
	}
	normalized := parsed.Format("15:04")
	return &normalized, nil
}

func formatDate(value time.Time) string {
	return value.Format("2006-01-02")
}
