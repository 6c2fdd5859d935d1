package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// ValidateTicketID checks that a ticket id is positive
func ValidateTicketID(fieldName string, id int) error {
	if id <= 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be positive, got: %d", formatFieldName(fieldName), id),
		}
	}
	return nil
}

// ValidateLabelName rejects names that collide with the synthetic bucket
func ValidateLabelName(fieldName, name string) error {
	if err := ValidateRequired(fieldName, name); err != nil {
		return err
	}
	if strings.TrimSpace(name) == UnlabeledBucket {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%q is reserved", UnlabeledBucket),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "ticketID" -> "ticket ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"ticketID":  "ticket ID",
		"labelName": "label name",
		"filePath":  "file path",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}
