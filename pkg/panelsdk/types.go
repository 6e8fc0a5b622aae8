package panelsdk

import (
	"time"
)

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

// ============================================================================
// Auth
// ============================================================================

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`

	// OTP is the six digit code, required once the user enrolled TOTP.
	OTP string `json:"otp,omitempty"`
}

type LoginResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserInfo  `json:"user"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

type ProfileResponse struct {
	Success bool     `json:"success"`
	User    UserInfo `json:"user"`
}

type ValidateResponse struct {
	Success bool     `json:"success"`
	Valid   bool     `json:"valid"`
	User    UserInfo `json:"user"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type BootstrapRequest struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

type BootstrapResponse struct {
	Success bool     `json:"success"`
	User    UserInfo `json:"user"`
}

// ============================================================================
// Clients
// ============================================================================

type CreateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	TaxID   string `json:"taxId"`
}

// UpdateClientRequest is partial; omitted fields keep their value.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	TaxID   *string `json:"taxId,omitempty"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

type Client struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	PhoneDisplay     string    `json:"phoneDisplay"`
	Address          string    `json:"address"`
	TaxID            string    `json:"taxId"`
	Status           string    `json:"status"`
	StatusLabel      string    `json:"statusLabel"`
	CanCreateInvoice bool      `json:"canCreateInvoice"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

type ClientList struct {
	Clients    []Client   `json:"clients"`
	Pagination Pagination `json:"pagination"`
}

type ClientStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Deleted  int `json:"deleted"`
}

// ListClientsParams are sent as query parameters. Zero values are omitted.
type ListClientsParams struct {
	Status        string
	Search        string
	CreatedAfter  time.Time
	CreatedBefore time.Time
	Page          int
	Limit         int
	SortBy        string
	SortOrder     string
}
