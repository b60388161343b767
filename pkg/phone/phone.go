// Package phone normalizes member-entered phone numbers.
package phone

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// Normalize parses phone against defaultRegion and returns it in E.164
// format. Invalid or unparseable numbers return an error; callers decide
// whether to keep the raw input or reject it.
func Normalize(phone, defaultRegion string) (string, error) {
	if phone == "" {
		return "", fmt.Errorf("phone number cannot be empty")
	}
	if defaultRegion == "" {
		defaultRegion = "US"
	}

	parsed, err := phonenumbers.Parse(phone, defaultRegion)
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("invalid phone number")
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

// Valid reports whether phone parses as a valid number for defaultRegion.
func Valid(phone, defaultRegion string) bool {
	_, err := Normalize(phone, defaultRegion)
	return err == nil
}
