package domain

import "strings"

// StringOrEmpty dereferences an optional string.
func StringOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// FirstNonEmpty returns the first set, non-blank value.
func FirstNonEmpty(values ...*string) string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			return *v
		}
	}
	return ""
}

// OptionalString returns nil for blank input.
func OptionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
