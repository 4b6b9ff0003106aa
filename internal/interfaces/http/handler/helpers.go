package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
)

// dateLayout is the wire format for calendar dates
const dateLayout = "2006-01-02"

// parseIDParam parses a numeric path parameter into an int64 ID
func parseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

// parseDate parses a YYYY-MM-DD date string
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// parseOptionalDate parses a YYYY-MM-DD date string, returning nil for empty input
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseMoney converts a decimal amount string into Money
func parseMoney(value string) (valueobject.Money, error) {
	m, err := valueobject.NewMoneyUSDFromString(value)
	if err != nil {
		return valueobject.Money{}, fmt.Errorf("invalid amount %q", value)
	}
	return m, nil
}

// formatTimestamp renders a timestamp in RFC3339
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// formatDate renders a date in the wire format
func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// formatOptionalDate renders an optional date, empty when absent
func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
