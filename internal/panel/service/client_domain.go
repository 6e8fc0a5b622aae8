package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
	"github.com/aussiebroadwan/panel/internal/panel/store"
	"golang.org/x/sync/errgroup"
)

const duplicateNamePrefix = 5

// ClientStats counts clients per status. Total is the sum of the three.
type ClientStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Deleted  int `json:"deleted"`
}

// ClientDomainService holds the rules that span more than one client.
type ClientDomainService struct {
	Clients store.Clients
}

// ValidateEmailUniqueness fails with a conflict when a client other than
// excludeID already uses email. Pass an empty excludeID on creation.
func (s *ClientDomainService) ValidateEmailUniqueness(ctx context.Context, email domain.Email, excludeID domain.ClientID) error {
	existing, err := s.Clients.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find client by email: %w", err)
	}
	if excludeID != "" && existing.ID().Equal(excludeID) {
		return nil
	}
	return domain.Conflictf("Client with email %s already exists", email)
}

func (s *ClientDomainService) ValidateTaxIDUniqueness(ctx context.Context, taxID string, excludeID domain.ClientID) error {
	existing, err := s.Clients.FindByTaxID(ctx, taxID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find client by tax id: %w", err)
	}
	if excludeID != "" && existing.ID().Equal(excludeID) {
		return nil
	}
	return domain.Conflictf("Client with Tax ID %s already exists", strings.ToUpper(strings.TrimSpace(taxID)))
}

// CanDeleteClient is false for unknown clients.
func (s *ClientDomainService) CanDeleteClient(ctx context.Context, id domain.ClientID) (bool, error) {
	c, err := s.Clients.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find client: %w", err)
	}
	return s.CanBeDeleted(c), nil
}

// CanBeDeleted is where invoice or budget constraints will plug in.
func (s *ClientDomainService) CanBeDeleted(*domain.Client) bool {
	return true
}

// ClientStats runs one count per status concurrently.
func (s *ClientDomainService) ClientStats(ctx context.Context) (ClientStats, error) {
	counts := make([]int, len(domain.AllStatuses))

	g, gctx := errgroup.WithContext(ctx)
	for i, status := range domain.AllStatuses {
		g.Go(func() error {
			n, err := s.Clients.CountByStatus(gctx, status)
			if err != nil {
				return fmt.Errorf("count %s clients: %w", status, err)
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ClientStats{}, err
	}

	stats := ClientStats{Active: counts[0], Inactive: counts[1], Deleted: counts[2]}
	stats.Total = stats.Active + stats.Inactive + stats.Deleted
	return stats, nil
}

// FindPotentialDuplicates returns other clients whose name contains the
// first five letters of c's name. It is a rough heuristic.
func (s *ClientDomainService) FindPotentialDuplicates(ctx context.Context, c *domain.Client) ([]*domain.Client, error) {
	term := []rune(strings.ToLower(c.Name()))
	if len(term) > duplicateNamePrefix {
		term = term[:duplicateNamePrefix]
	}
	needle := string(term)

	matches, err := s.Clients.Search(ctx, needle)
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}

	out := make([]*domain.Client, 0, len(matches))
	for _, m := range matches {
		if m.ID().Equal(c.ID()) || !strings.Contains(strings.ToLower(m.Name()), needle) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
