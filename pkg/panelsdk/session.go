package panelsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Session is a logged in user. There is no refresh; once ExpiresAt has
// passed the caller has to log in again.
type Session struct {
	client    *SDKClient
	token     string
	user      UserInfo
	expiresAt time.Time
}

func (s *Session) Token() string        { return s.token }
func (s *Session) User() UserInfo       { return s.user }
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

func (s *Session) do(ctx context.Context, method, path string, body, out any, expect int) error {
	headers := map[string]string{"Authorization": "Bearer " + s.token}
	return s.client.doJSON(ctx, method, path, headers, body, out, expect)
}

// Logout ends every session of the user on the server.
func (s *Session) Logout(ctx context.Context) error {
	return s.do(ctx, http.MethodPost, "/auth/logout", nil, nil, http.StatusOK)
}

func (s *Session) Profile(ctx context.Context) (*UserInfo, error) {
	var out ProfileResponse
	if err := s.do(ctx, http.MethodGet, "/auth/profile", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (s *Session) Validate(ctx context.Context) (*ValidateResponse, error) {
	var out ValidateResponse
	if err := s.do(ctx, http.MethodGet, "/auth/validate", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Clients
// ============================================================================

func (s *Session) CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error) {
	var out Client
	if err := s.do(ctx, http.MethodPost, "/clients", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetClient(ctx context.Context, id string) (*Client, error) {
	var out Client
	if err := s.do(ctx, http.MethodGet, "/clients/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (*Client, error) {
	var out Client
	if err := s.do(ctx, http.MethodPut, "/clients/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteClient(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/clients/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

func (s *Session) ChangeClientStatus(ctx context.Context, id, status string) (*Client, error) {
	var out Client
	path := "/clients/" + url.PathEscape(id) + "/status"
	if err := s.do(ctx, http.MethodPatch, path, ChangeStatusRequest{Status: status}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListClients(ctx context.Context, p ListClientsParams) (*ClientList, error) {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("status", p.Status)
	set("search", p.Search)
	set("sortBy", p.SortBy)
	set("sortOrder", p.SortOrder)
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if !p.CreatedAfter.IsZero() {
		q.Set("createdAfter", p.CreatedAfter.UTC().Format(time.RFC3339))
	}
	if !p.CreatedBefore.IsZero() {
		q.Set("createdBefore", p.CreatedBefore.UTC().Format(time.RFC3339))
	}

	path := "/clients"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out ClientList
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ClientStats(ctx context.Context) (*ClientStats, error) {
	var out ClientStats
	if err := s.do(ctx, http.MethodGet, "/clients/stats", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ClientDuplicates(ctx context.Context, id string) ([]Client, error) {
	var out []Client
	path := "/clients/" + url.PathEscape(id) + "/duplicates"
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}
