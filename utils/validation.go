// utils/validation.go
package utils

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks basic email address shape
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// ParseAmount accepts a JSON number or numeric string. Clients send money
// fields both ways, so amounts are bound as interface{} and parsed here.
func ParseAmount(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, errors.New("invalid amount: " + v)
		}
		return parsed, nil
	case nil:
		return 0, errors.New("amount is required")
	default:
		return 0, errors.New("invalid amount type")
	}
}
