package domain

import (
	"errors"
	"strings"
)

const maxPersonalNumberDigits = 12

var ErrInvalidPersonalNumber = errors.New("invalid personal number")

// ParsePersonalNumber strips the optional "-" separator (as in
// "19900101-1234") and accepts the remainder only if it is 1 to 12 digits.
func ParsePersonalNumber(raw string) (string, error) {
	stripped := strings.ReplaceAll(raw, "-", "")
	if stripped == "" || len(stripped) > maxPersonalNumberDigits {
		return "", ErrInvalidPersonalNumber
	}
	for i := 0; i < len(stripped); i++ {
		if stripped[i] < '0' || stripped[i] > '9' {
			return "", ErrInvalidPersonalNumber
		}
	}
	return stripped, nil
}
