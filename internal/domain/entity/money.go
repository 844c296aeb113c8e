package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
)

// Monetary values are carried as int64 cents everywhere inside the domain.
// Strings with two decimal places ("12.34") are the only external form.

// MaxDecimalPlaces defines the maximum number of decimal places accepted for amounts
const MaxDecimalPlaces = 2

// ReaderSharePercent is the reader's cut of every settled session amount.
// The platform keeps the remainder.
const ReaderSharePercent = 70

// ParseAmount validates a decimal string amount and converts it to cents.
// Accepts "10", "10.5" and "10.50"; rejects negatives, empty values and
// more than two decimal places.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(amount, "-") {
		return 0, errs.ErrNegativeAmount
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var digits string
	if len(parts) == 1 {
		digits = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			digits = parts[0] + "00"
		case 1:
			digits = parts[0] + parts[1] + "0"
		case 2:
			digits = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	return value, nil
}

// FormatCents renders cents as a decimal string with exactly two decimal
// places. 1015 becomes "10.15", -700 becomes "-7.00".
func FormatCents(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	s := strconv.FormatInt(cents, 10)
	for len(s) < 3 {
		s = "0" + s
	}

	whole, frac := s[:len(s)-2], s[len(s)-2:]
	if negative {
		return "-" + whole + "." + frac
	}
	return whole + "." + frac
}

// SplitRevenue divides a settled session amount between reader and platform.
// The reader share is floored to whole cents; the platform fee is the exact
// remainder, so the two always sum to totalCents.
func SplitRevenue(totalCents int64) (readerEarnings, platformFee int64) {
	readerEarnings = totalCents * ReaderSharePercent / 100
	platformFee = totalCents - readerEarnings
	return readerEarnings, platformFee
}
