package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes a client supplied direction to ASC or
// DESC, defaulting to DESC. Anything else would be interpolated into
// ORDER BY, so only the two literals ever come back.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns the field when the whitelist allows it and
// defaultField otherwise. Column names cannot be bound as parameters,
// hence the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CustomerSortFields are the columns customer lists may sort by.
var CustomerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
}

// PropertySortFields are the columns property lists may sort by.
var PropertySortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"customer_id": true,
	"label":       true,
}

// InvoiceSortFields are the columns invoice lists may sort by.
var InvoiceSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"customer_id": true,
	"property_id": true,
	"status":      true,
	"issued_date": true,
	"due_date":    true,
	"total":       true,
}
