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

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "sourceURI" -> "source URI")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"sourceURI": "source URI",
		"path":      "path",
		"table":     "table name",
		"bucket":    "bucket",
		"key":       "object key",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateIdentifier checks that a SQL identifier is a plain word, so it can
// be interpolated into a query.
func ValidateIdentifier(fieldName, value string) error {
	if err := ValidateRequired(fieldName, value); err != nil {
		return err
	}
	for i, r := range value {
		ok := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9')
		if !ok {
			return &ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("%s must be a plain identifier, got: %s", formatFieldName(fieldName), value),
			}
		}
	}
	return nil
}
