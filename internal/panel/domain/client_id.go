package domain

import (
	"strings"

	"github.com/google/uuid"
)

// ClientID is the canonical lower-case UUID of a client.
type ClientID string

func NewClientID() ClientID {
	return ClientID(uuid.NewString())
}

// ParseClientID accepts only the 36 character hyphenated form of a
// version 1-5, RFC 4122 UUID.
func ParseClientID(raw string) (ClientID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Validation("ClientId cannot be empty")
	}
	if len(raw) != 36 {
		return "", Validation("ClientId must be a valid UUID")
	}

	u, err := uuid.Parse(raw)
	if err != nil || u.Variant() != uuid.RFC4122 || u.Version() < 1 || u.Version() > 5 {
		return "", Validation("ClientId must be a valid UUID")
	}
	return ClientID(u.String()), nil
}

func (id ClientID) String() string { return string(id) }

func (id ClientID) Equal(other ClientID) bool { return id == other }
