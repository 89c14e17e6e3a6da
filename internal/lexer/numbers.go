package lexer

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrIntRange is returned for integer literals above math.MaxInt64.
var ErrIntRange = errors.New("integer literal does not fit in 64-bit signed integer")

var errFloatRange = errors.New("float literal is out of range")

// ParseInt converts the text of an IntLit token to its value.
// Underscores and 0x/0o/0b prefixes are accepted.
func ParseInt(text string) (int64, error) {
	s := strings.ReplaceAll(text, "_", "")
	base := 10
	if len(s) > 2 && s[0] == '0' {
		if r := radixOf(s[1]); r != 0 {
			base = r
			s = s[2:]
		}
	}
	u, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, ErrIntRange
		}
		return 0, err
	}
	if u > math.MaxInt64 {
		return 0, ErrIntRange
	}
	return int64(u), nil
}

// IsMinIntMagnitude reports whether an IntLit text denotes 2^63, the
// magnitude of math.MinInt64. Such a literal is only valid right after
// a unary minus.
func IsMinIntMagnitude(text string) bool {
	s := strings.ReplaceAll(text, "_", "")
	base := 10
	if len(s) > 2 && s[0] == '0' {
		if r := radixOf(s[1]); r != 0 {
			base = r
			s = s[2:]
		}
	}
	u, err := strconv.ParseUint(s, base, 64)
	return err == nil && u == 1<<63
}

// ParseFloat converts the text of a FloatLit token to its value.
func ParseFloat(text string) (float64, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, errFloatRange
		}
		return 0, err
	}
	return f, nil
}
