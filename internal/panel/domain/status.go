package domain

import "strings"

type ClientStatus string

const (
	StatusActive   ClientStatus = "active"
	StatusInactive ClientStatus = "inactive"
	StatusDeleted  ClientStatus = "deleted"
)

// AllStatuses in display order.
var AllStatuses = []ClientStatus{StatusActive, StatusInactive, StatusDeleted}

var statusLabels = map[ClientStatus]string{
	StatusActive:   "Activo",
	StatusInactive: "Inactivo",
	StatusDeleted:  "Eliminado",
}

func ParseClientStatus(raw string) (ClientStatus, error) {
	s := ClientStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", Validation("Invalid status: " + raw)
	}
	return s, nil
}

func (s ClientStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the dashboard text for s.
func (s ClientStatus) Label() string { return statusLabels[s] }

func (s ClientStatus) String() string { return string(s) }

type transition uint8

const (
	transitionDenied transition = iota
	transitionAllowed
	transitionNoop
)

// Deleted is terminal. Re-entering the current state is allowed except
// for deleted, which is a silent no-op.
var transitions = map[ClientStatus]map[ClientStatus]transition{
	StatusActive: {
		StatusActive:   transitionAllowed,
		StatusInactive: transitionAllowed,
		StatusDeleted:  transitionAllowed,
	},
	StatusInactive: {
		StatusActive:   transitionAllowed,
		StatusInactive: transitionAllowed,
		StatusDeleted:  transitionAllowed,
	},
	StatusDeleted: {
		StatusActive:   transitionDenied,
		StatusInactive: transitionDenied,
		StatusDeleted:  transitionNoop,
	},
}

// CanTransitionTo reports whether moving from s to next is permitted.
// A no-op counts as permitted.
func (s ClientStatus) CanTransitionTo(next ClientStatus) bool {
	return transitions[s][next] != transitionDenied
}
