package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
	"github.com/aussiebroadwan/panel/internal/panel/store"
	"github.com/aussiebroadwan/panel/pkg/slogx"
	gocache "github.com/patrickmn/go-cache"
)

const statsCacheKey = "client-stats"

type CreateClientInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	TaxID   string
}

// UpdateClientInput is a partial update: nil fields keep their value.
type UpdateClientInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	TaxID   *string
}

type ListClientsInput struct {
	Status        string
	Search        string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Page          int
	Limit         int
	SortBy        string
	SortOrder     string
}

// ClientService implements the client use cases on top of the store.
type ClientService struct {
	Store  store.Store
	Domain *ClientDomainService

	stats *gocache.Cache

	// statsGen counts invalidations so a Stats call that raced a write does
	// not cache the counts it read before the write.
	statsMu  sync.Mutex
	statsGen uint64
}

// NewClientService caches stats for statsTTL. A non-positive TTL disables
// the cache.
func NewClientService(st store.Store, statsTTL time.Duration) *ClientService {
	s := &ClientService{
		Store:  st,
		Domain: &ClientDomainService{Clients: st.Clients()},
	}
	if statsTTL > 0 {
		s.stats = gocache.New(statsTTL, 2*statsTTL)
	}
	return s
}

func clientNotFound(id string) error {
	return domain.NotFoundf("Client with ID %s not found", id)
}

func (s *ClientService) Create(ctx context.Context, in CreateClientInput) (*domain.Client, error) {
	l := slogx.FromContext(ctx)

	email, err := domain.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	taxID, err := domain.NormalizeTaxID(in.TaxID)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, email, taxID, ""); err != nil {
		return nil, err
	}

	c, err := domain.NewClient(domain.NewClientProps{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
		TaxID:   in.TaxID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Store.Clients().Save(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with a concurrent insert.
			if cerr := s.checkUnique(ctx, email, taxID, ""); cerr != nil {
				return nil, cerr
			}
			return nil, domain.Conflictf("Client already exists")
		}
		l.Error("failed to save client", slog.Any("error", err))
		return nil, fmt.Errorf("save client: %w", err)
	}

	s.invalidateStats()
	l.Info("client created", slog.String("client_id", c.ID().String()))
	return c, nil
}

func (s *ClientService) Get(ctx context.Context, rawID string) (*domain.Client, error) {
	id, err := domain.ParseClientID(rawID)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

func (s *ClientService) Update(ctx context.Context, rawID string, in UpdateClientInput) (*domain.Client, error) {
	id, err := domain.ParseClientID(rawID)
	if err != nil {
		return nil, err
	}
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	email := c.Email()
	if in.Email != nil {
		if email, err = domain.NewEmail(*in.Email); err != nil {
			return nil, err
		}
		if !email.Equal(c.Email()) {
			if err := s.Domain.ValidateEmailUniqueness(ctx, email, id); err != nil {
				return nil, err
			}
		}
	}

	if in.TaxID != nil {
		taxID, err := domain.NormalizeTaxID(*in.TaxID)
		if err != nil {
			return nil, err
		}
		if taxID != c.TaxID() {
			if err := s.Domain.ValidateTaxIDUniqueness(ctx, taxID, id); err != nil {
				return nil, err
			}
		}
	}

	phone := c.Phone()
	if in.Phone != nil {
		if phone, err = domain.NewPhone(*in.Phone); err != nil {
			return nil, err
		}
	}

	name, address := c.Name(), c.Address()
	if in.Name != nil {
		name = *in.Name
	}
	if in.Address != nil {
		address = *in.Address
	}

	if err := c.UpdatePersonalInfo(name, email, phone, address); err != nil {
		return nil, err
	}
	if in.TaxID != nil {
		if err := c.UpdateTaxID(*in.TaxID); err != nil {
			return nil, err
		}
	}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	slogx.FromContext(ctx).Info("client updated", slog.String("client_id", c.ID().String()))
	return c, nil
}

// Delete soft deletes the client. Deleting twice is not an error.
func (s *ClientService) Delete(ctx context.Context, rawID string) error {
	id, err := domain.ParseClientID(rawID)
	if err != nil {
		return err
	}
	c, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	ok, err := s.Domain.CanDeleteClient(ctx, c.ID())
	if err != nil {
		return err
	}
	if !ok {
		return domain.Rule("Client cannot be deleted due to business constraints (e.g., has active invoices)")
	}
	if err := c.Delete(); err != nil {
		return err
	}
	if err := s.save(ctx, c); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("client deleted", slog.String("client_id", c.ID().String()))
	return nil
}

func (s *ClientService) ChangeStatus(ctx context.Context, rawID, rawStatus string) (*domain.Client, error) {
	id, err := domain.ParseClientID(rawID)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseClientStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	from := c.Status()
	if err := c.ChangeStatus(status); err != nil {
		return nil, err
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	slogx.FromContext(ctx).Info("client status changed",
		slog.String("client_id", c.ID().String()),
		slog.String("from", from.String()),
		slog.String("to", c.Status().String()),
	)
	return c, nil
}

func (s *ClientService) List(ctx context.Context, in ListClientsInput) (store.Page[*domain.Client], error) {
	var f store.ClientFilter
	if in.Status != "" {
		status, err := domain.ParseClientStatus(in.Status)
		if err != nil {
			return store.Page[*domain.Client]{}, err
		}
		f.Status = &status
	}
	f.Search = in.Search
	f.CreatedAfter = in.CreatedAfter
	f.CreatedBefore = in.CreatedBefore

	return s.Store.Clients().Find(ctx, f, store.Pagination{
		Page:      in.Page,
		Limit:     in.Limit,
		SortBy:    in.SortBy,
		SortOrder: in.SortOrder,
	})
}

// Duplicates lists clients with a similar name to the given one.
func (s *ClientService) Duplicates(ctx context.Context, rawID string) ([]*domain.Client, error) {
	c, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}
	return s.Domain.FindPotentialDuplicates(ctx, c)
}

func (s *ClientService) Stats(ctx context.Context) (ClientStats, error) {
	if s.stats != nil {
		if v, ok := s.stats.Get(statsCacheKey); ok {
			return v.(ClientStats), nil
		}
	}
	gen := s.statsGeneration()
	stats, err := s.Domain.ClientStats(ctx)
	if err != nil {
		return ClientStats{}, err
	}
	if s.stats != nil {
		s.statsMu.Lock()
		if s.statsGen == gen {
			s.stats.SetDefault(statsCacheKey, stats)
		}
		s.statsMu.Unlock()
	}
	return stats, nil
}

func (s *ClientService) find(ctx context.Context, id domain.ClientID) (*domain.Client, error) {
	c, err := s.Store.Clients().FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, clientNotFound(id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	return c, nil
}

func (s *ClientService) save(ctx context.Context, c *domain.Client) error {
	err := s.Store.Clients().Update(ctx, c)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return clientNotFound(c.ID().String())
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.Conflictf("Client with the same email or Tax ID already exists")
	case err != nil:
		slogx.FromContext(ctx).Error("failed to update client", slog.Any("error", err))
		return fmt.Errorf("update client: %w", err)
	}
	s.invalidateStats()
	return nil
}

func (s *ClientService) checkUnique(ctx context.Context, email domain.Email, taxID string, exclude domain.ClientID) error {
	if err := s.Domain.ValidateEmailUniqueness(ctx, email, exclude); err != nil {
		return err
	}
	return s.Domain.ValidateTaxIDUniqueness(ctx, taxID, exclude)
}

func (s *ClientService) statsGeneration() uint64 {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.statsGen
}

func (s *ClientService) invalidateStats() {
	if s.stats == nil {
		return
	}
	s.statsMu.Lock()
	s.statsGen++
	s.stats.Delete(statsCacheKey)
	s.statsMu.Unlock()
}
