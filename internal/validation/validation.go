// Package validation holds field checks shared by the controllers.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Column bounds: DECIMAL(12,2) prices and TEXT columns.
const (
	MaxPrice     = 9999999999.99
	MaxTextBytes = 65535
)

var validate = validator.New()

// FitsText reports whether s fits a TEXT column.
func FitsText(s string) bool {
	return len(s) <= MaxTextBytes
}

// IsEmail reports whether s is a single well-formed email address.
func IsEmail(s string) bool {
	return validate.Var(s, "required,email,max=150") == nil
}

// NormalizePhone strips common separators and returns the number as "+"
// followed by 10 to 15 digits.
func NormalizePhone(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "+")

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", false
		}
	}

	digits := b.String()
	if len(digits) < 10 || len(digits) > 15 {
		return "", false
	}
	return "+" + digits, true
}
