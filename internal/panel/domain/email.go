package domain

import (
	"regexp"
	"strings"
)

const maxEmailLength = 254

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is a trimmed, lower-cased address.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case v == "":
		return Email{}, Validation("Email cannot be empty")
	case !emailPattern.MatchString(v):
		return Email{}, Validation("Invalid email format")
	case len(v) > maxEmailLength:
		return Email{}, Validation("Email cannot exceed 254 characters")
	}
	return Email{value: v}, nil
}

func (e Email) String() string { return e.value }

func (e Email) Equal(other Email) bool { return e.value == other.value }

// LocalPart is everything before the last '@'.
func (e Email) LocalPart() string {
	i := strings.LastIndexByte(e.value, '@')
	if i < 0 {
		return e.value
	}
	return e.value[:i]
}

func (e Email) Domain() string {
	i := strings.LastIndexByte(e.value, '@')
	if i < 0 {
		return ""
	}
	return e.value[i+1:]
}

func (e Email) IsZero() bool { return e.value == "" }
