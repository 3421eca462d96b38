package validator

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

const (
	MaxAmountDecimals  = 8
	MaxAmountMagnitude = 1_000_000_000.0
)

var amountRegex = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// ValidateAmount checks a financial amount string: positive, at most 8 decimal
// places, and below the supported magnitude.
func ValidateAmount(amount string) error {
	amount = strings.TrimSpace(amount)
	if !amountRegex.MatchString(amount) {
		return errors.New("Amount must be a positive number.")
	}
	if dot := strings.IndexByte(amount, '.'); dot >= 0 {
		if len(amount)-dot-1 > MaxAmountDecimals {
			return errors.New("Amount can have at most 8 decimal places.")
		}
	}
	val, err := strconv.ParseFloat(amount, 64)
	if err != nil || val <= 0 {
		return errors.New("Amount must be greater than zero.")
	}
	if val >= MaxAmountMagnitude {
		return errors.New("Amount exceeds the supported maximum.")
	}
	return nil
}

// ParseAmount validates and parses a financial amount string.
func ParseAmount(amount string) (float64, error) {
	if err := ValidateAmount(amount); err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(amount), 64)
}
