package assembler

import "strconv"

// looksNumeric reports whether value is shaped like a numeric literal
// rather than an identifier, so resolution failures can be attributed
// to the right error kind (undefined symbol vs. invalid number).
func looksNumeric(value string) bool {
	if value == "" {
		return false
	}
	if value[0] == '-' || value[0] == '+' {
		return len(value) > 1 && isASCIIDigit(value[1])
	}
	return isASCIIDigit(value[0])
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseNumber parses a decimal, 0x-hex, or 0b-binary literal, with an
// optional leading sign.
func parseNumber(value string) (int64, error) {
	s := value
	negative := false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}

	var n int64
	var err error
	switch {
	case len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X"):
		n, err = strconv.ParseInt(s[2:], 16, 64)
	case len(s) > 2 && (s[:2] == "0b" || s[:2] == "0B"):
		n, err = strconv.ParseInt(s[2:], 2, 64)
	default:
		n, err = strconv.ParseInt(s, 10, 64)
	}
	if err != nil {
		return 0, err
	}
	if negative {
		n = -n
	}
	return n, nil
}
