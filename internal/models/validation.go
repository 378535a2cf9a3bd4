package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Email validation regex pattern
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// Phone number validation regex (optional +, 2-15 digits, no leading zero)
var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// First integer or decimal number inside free text
var numberRegex = regexp.MustCompile(`\d+(?:\.\d+)?`)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// ErrNoNumericValue is returned when free text does not contain a number
var ErrNoNumericValue = errors.New("no numeric value found")

// IsValidEmail validates the local@domain.tld format
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone validates an international phone number
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ExtractNumericValue pulls the first number out of user text like "below 2000 rupees"
func ExtractNumericValue(value string) (float64, error) {
	match := numberRegex.FindString(value)
	if match == "" {
		return 0, fmt.Errorf("%w in %q", ErrNoNumericValue, value)
	}

	number, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %q: %w", match, err)
	}

	return number, nil
}

// SanitizeString removes extra whitespace and trims the string
func SanitizeString(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}
