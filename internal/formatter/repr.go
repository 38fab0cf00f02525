package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ReprString renders s as a quoted literal: single quotes unless s contains a
// single quote and no double quote.
func ReprString(s string) string {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var sb strings.Builder

	sb.Grow(len(s) + 2)
	sb.WriteByte(quote)

	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == rune(quote):
			sb.WriteByte('\\')
			sb.WriteByte(quote)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case !unicode.IsPrint(r) && r != ' ':
			switch {
			case r <= 0xff:
				fmt.Fprintf(&sb, `\x%02x`, r)
			case r <= 0xffff:
				fmt.Fprintf(&sb, `\u%04x`, r)
			default:
				fmt.Fprintf(&sb, `\U%08x`, r)
			}
		default:
			sb.WriteRune(r)
		}
	}

	sb.WriteByte(quote)

	return sb.String()
}

// ReprFloat renders f with the shortest digits that round-trip. Decimal
// exponents in [-4, 16) use fixed notation with at least one fractional
// digit; others use exponent notation with a sign and at least two digits.
func ReprFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}

		return "0.0"
	}

	// 'e' with -1 precision gives shortest digits and a two-digit minimum exponent.
	sci := strconv.FormatFloat(f, 'e', -1, 64)

	mantissa, expPart, _ := strings.Cut(sci, "e")

	exp, err := strconv.Atoi(expPart)
	if err != nil {
		return sci
	}

	if exp < -4 || exp >= 16 {
		return mantissa + "e" + expPart
	}

	fixed := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(fixed, '.') {
		fixed += ".0"
	}

	return fixed
}

// ReprBool renders b as True or False.
func ReprBool(b bool) string {
	if b {
		return "True"
	}

	return "False"
}
