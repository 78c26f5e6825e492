package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Paise is a rupee amount in paise (1/100 INR).
type Paise int64

var ErrInvalidAmount = errors.New("invalid money amount")

// ParsePaise parses a non-negative decimal string ("40", "10.5", "10.50")
// into paise. More than two fractional digits is an error.
func ParsePaise(s string) (Paise, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		// The fraction must be 1 or 2 plain digits; ParseInt alone would
		// also take a sign ("10.-5") or an empty string ("10.").
		if frac == "" || len(frac) > 2 || !allDigits(frac) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}
	if whole == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	rupees, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	paise := int64(0)
	if frac != "" {
		p, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		if len(frac) == 1 {
			p *= 10
		}
		paise = p
	}

	return Paise(rupees*100 + paise), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String formats the amount as a decimal rupee string with two fractional
// digits, e.g. 4000 -> "40.00". Negative amounts keep a single leading sign.
func (p Paise) String() string {
	v := int64(p)
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (p Paise) Value() (driver.Value, error) {
	return int64(p), nil
}

// Mul returns the amount multiplied by a quantity.
func (p Paise) Mul(quantity int) Paise {
	return p * Paise(quantity)
}
