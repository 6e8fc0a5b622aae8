package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	minNameLength    = 2
	maxNameLength    = 100
	minAddressLength = 5
	maxAddressLength = 200
)

// Now is the clock used for client timestamps.
var Now = func() time.Time { return time.Now().UTC() }

// Client is the aggregate root for customer records. Its fields are only
// changed through its methods.
type Client struct {
	id        ClientID
	name      string
	email     Email
	phone     Phone
	address   string
	taxID     string
	status    ClientStatus
	createdAt time.Time
	updatedAt time.Time
}

// NewClientProps is raw, untrusted input for NewClient.
type NewClientProps struct {
	Name    string
	Email   string
	Phone   string
	Address string
	TaxID   string
}

// ClientSnapshot is the primitive view of a Client used for persistence
// and serialization.
type ClientSnapshot struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Address   string       `json:"address"`
	TaxID     string       `json:"taxId"`
	Status    ClientStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// NewClient validates props and returns an active client with a fresh id.
func NewClient(p NewClientProps) (*Client, error) {
	name, err := validateName(p.Name)
	if err != nil {
		return nil, err
	}
	email, err := NewEmail(p.Email)
	if err != nil {
		return nil, err
	}
	phone, err := NewPhone(p.Phone)
	if err != nil {
		return nil, err
	}
	address, err := validateAddress(p.Address)
	if err != nil {
		return nil, err
	}
	taxID, err := NormalizeTaxID(p.TaxID)
	if err != nil {
		return nil, err
	}

	now := stamp()
	return &Client{
		id:        NewClientID(),
		name:      name,
		email:     email,
		phone:     phone,
		address:   address,
		taxID:     taxID,
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// RestoreClient rebuilds a client from stored values without validating
// or normalizing them.
func RestoreClient(s ClientSnapshot) *Client {
	return &Client{
		id:        ClientID(s.ID),
		name:      s.Name,
		email:     Email{value: s.Email},
		phone:     Phone{value: s.Phone},
		address:   s.Address,
		taxID:     s.TaxID,
		status:    s.Status,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
	}
}

func (c *Client) ID() ClientID           { return c.id }
func (c *Client) Name() string           { return c.name }
func (c *Client) Email() Email           { return c.email }
func (c *Client) Phone() Phone           { return c.phone }
func (c *Client) Address() string        { return c.address }
func (c *Client) TaxID() string          { return c.taxID }
func (c *Client) Status() ClientStatus   { return c.status }
func (c *Client) CreatedAt() time.Time   { return c.createdAt }
func (c *Client) UpdatedAt() time.Time   { return c.updatedAt }
func (c *Client) IsActive() bool         { return c.status == StatusActive }
func (c *Client) CanCreateInvoice() bool { return c.IsActive() && c.taxID != "" }

// UpdatePersonalInfo replaces the contact fields. Deleted clients may
// still be corrected.
func (c *Client) UpdatePersonalInfo(name string, email Email, phone Phone, address string) error {
	n, err := validateName(name)
	if err != nil {
		return err
	}
	a, err := validateAddress(address)
	if err != nil {
		return err
	}
	if email.IsZero() {
		return Validation("Email cannot be empty")
	}
	if phone.IsZero() {
		return Validation("Phone cannot be empty")
	}

	c.name = n
	c.email = email
	c.phone = phone
	c.address = a
	c.touch()
	return nil
}

func (c *Client) UpdateTaxID(raw string) error {
	taxID, err := NormalizeTaxID(raw)
	if err != nil {
		return err
	}
	c.taxID = taxID
	c.touch()
	return nil
}

func (c *Client) Activate() error {
	return c.moveTo(StatusActive, "Cannot activate a deleted client")
}

func (c *Client) Deactivate() error {
	return c.moveTo(StatusInactive, "Cannot deactivate a deleted client")
}

// Delete soft-deletes the client. Deleting twice is a no-op.
func (c *Client) Delete() error {
	return c.moveTo(StatusDeleted, "Client cannot be deleted")
}

// ChangeStatus dispatches to Activate, Deactivate or Delete.
func (c *Client) ChangeStatus(s ClientStatus) error {
	switch s {
	case StatusActive:
		return c.Activate()
	case StatusInactive:
		return c.Deactivate()
	case StatusDeleted:
		return c.Delete()
	default:
		return Validation("Invalid status: " + string(s))
	}
}

func (c *Client) Snapshot() ClientSnapshot {
	return ClientSnapshot{
		ID:        c.id.String(),
		Name:      c.name,
		Email:     c.email.String(),
		Phone:     c.phone.String(),
		Address:   c.address,
		TaxID:     c.taxID,
		Status:    c.status,
		CreatedAt: c.createdAt,
		UpdatedAt: c.updatedAt,
	}
}

func (c *Client) moveTo(next ClientStatus, deniedMsg string) error {
	switch transitions[c.status][next] {
	case transitionNoop:
		return nil
	case transitionAllowed:
		c.status = next
		c.touch()
		return nil
	default:
		return Rule(deniedMsg)
	}
}

// touch keeps updatedAt strictly increasing even when the clock has not
// advanced past the stored value.
func (c *Client) touch() {
	now := stamp()
	if !now.After(c.updatedAt) {
		now = c.updatedAt.Add(time.Microsecond)
	}
	c.updatedAt = now
}

// Microsecond precision survives a round-trip through either database.
func stamp() time.Time {
	return Now().UTC().Truncate(time.Microsecond)
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	switch n := utf8.RuneCountInString(name); {
	case n < minNameLength:
		return "", Validation("Client name must have at least 2 characters")
	case n > maxNameLength:
		return "", Validation("Client name cannot exceed 100 characters")
	}
	return name, nil
}

func validateAddress(raw string) (string, error) {
	address := strings.TrimSpace(raw)
	switch n := utf8.RuneCountInString(address); {
	case n < minAddressLength:
		return "", Validation("Address must have at least 5 characters")
	case n > maxAddressLength:
		return "", Validation("Address cannot exceed 200 characters")
	}
	return address, nil
}
