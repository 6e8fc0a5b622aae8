package domain

import (
	"regexp"
	"strings"
)

// NIF: eight digits and a control letter. CIF: organisation letter, seven
// digits and a control digit or letter. The control character is not
// recomputed.
var taxIDPattern = regexp.MustCompile(`^[0-9]{8}[TRWAGMYFPDXBNJZSQVHLCKE]$|^[ABCDEFGHJNPQRSUVW][0-9]{7}[0-9A-J]$`)

// NormalizeTaxID trims and upper-cases raw and checks it is a NIF or CIF.
func NormalizeTaxID(raw string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if v == "" {
		return "", Validation("Tax ID cannot be empty")
	}
	if !taxIDPattern.MatchString(v) {
		return "", Validation("Invalid Tax ID format")
	}
	return v, nil
}
