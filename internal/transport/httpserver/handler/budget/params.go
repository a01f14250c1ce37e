package budget

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

func formatDate(value time.Time) string {
	return value.Format("2006-01-02")
}
