package domain

import (
	"regexp"
	"strings"
	"unicode"
)

const spainPrefix = "+34"

var phonePattern = regexp.MustCompile(`^(\+34|0034|34)?[6-9][0-9]{8}$`)

// stripPhoneNoise drops any Unicode space (NBSP, \v and \f included) and
// the separators people type between digit groups.
func stripPhoneNoise(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		switch r {
		case '-', '(', ')', '.':
			return -1
		}
		return r
	}, raw)
}

// Phone is a Spanish number stored as +34 followed by nine digits.
type Phone struct {
	value string
}

// NewPhone accepts national numbers and +34, 0034 or 34 prefixed numbers,
// with spaces, dashes, dots and parentheses anywhere.
func NewPhone(raw string) (Phone, error) {
	if strings.TrimSpace(raw) == "" {
		return Phone{}, Validation("Phone cannot be empty")
	}

	national := stripPhoneNoise(raw)
	switch {
	case strings.HasPrefix(national, "+34"):
		national = national[3:]
	case strings.HasPrefix(national, "0034"):
		national = national[4:]
	case strings.HasPrefix(national, "34") && len(national) == 11:
		national = national[2:]
	}

	normalized := spainPrefix + national
	if !phonePattern.MatchString(normalized) {
		return Phone{}, Validation("Invalid Spanish phone number format")
	}
	return Phone{value: normalized}, nil
}

func (p Phone) String() string { return p.value }

func (p Phone) Equal(other Phone) bool { return p.value == other.value }

func (p Phone) International() string { return p.value }

func (p Phone) National() string { return strings.TrimPrefix(p.value, spainPrefix) }

// FormattedDisplay groups the national number as "612 345 678".
func (p Phone) FormattedDisplay() string {
	n := p.National()
	if len(n) != 9 {
		return n
	}
	return n[:3] + " " + n[3:6] + " " + n[6:]
}

func (p Phone) IsZero() bool { return p.value == "" }
