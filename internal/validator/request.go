// Package validator checks feed request inputs before any network call is made.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"time"
)

// DateLayout is the only accepted date format.
const DateLayout = "2006-01-02"

// Request validation errors.
var (
	ErrInvalidDateFormat  = errors.New("dates must be in YYYY-MM-DD format")
	ErrInvalidDateRange   = errors.New("start date must be on or before end date")
	ErrInvalidRecordLimit = errors.New("record limit must be a positive integer")
)

// ValidateDateFormat reports whether text is a real calendar date written as
// exactly four year digits, two month digits and two day digits separated by hyphens.
func ValidateDateFormat(text string) bool {
	if len(text) != len(DateLayout) {
		return false
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		if i == 4 || i == 7 {
			if c != '-' {
				return false
			}

			continue
		}

		if c < '0' || c > '9' {
			return false
		}
	}

	// time.Parse rejects out-of-range months and days, including Feb 29 on non-leap years.
	_, err := time.Parse(DateLayout, text)

	return err == nil
}

// ValidateRecordLimit reports whether value is an integer strictly greater than zero.
// Values of any other type are rejected.
func ValidateRecordLimit(value any) bool {
	if value == nil {
		return false
	}

	v := reflect.ValueOf(value)

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() > 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() > 0
	default:
		return false
	}
}

// ValidateRequest checks a feed request and returns the first violation found.
// Dates are checked before their order, and the order before the limit.
func ValidateRequest(start, end string, limit any) error {
	if !ValidateDateFormat(start) {
		return fmt.Errorf("%w: start date %q", ErrInvalidDateFormat, start)
	}

	if !ValidateDateFormat(end) {
		return fmt.Errorf("%w: end date %q", ErrInvalidDateFormat, end)
	}

	// Fixed-width zero-padded dates order lexically.
	if start > end {
		return fmt.Errorf("%w: %s > %s", ErrInvalidDateRange, start, end)
	}

	if !ValidateRecordLimit(limit) {
		return fmt.Errorf("%w: got %v", ErrInvalidRecordLimit, limit)
	}

	return nil
}

// RecordLimit converts a limit that passed ValidateRecordLimit to an int.
// Values that do not fit are clamped to the largest int.
func RecordLimit(value any) int {
	v := reflect.ValueOf(value)

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		if n > int64(maxInt) {
			return maxInt
		}

		return int(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := v.Uint()
		if n > uint64(maxInt) {
			return maxInt
		}

		return int(n)
	default:
		return 0
	}
}

const maxInt = int(^uint(0) >> 1)
