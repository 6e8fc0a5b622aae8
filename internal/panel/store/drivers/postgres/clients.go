package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
	"github.com/aussiebroadwan/panel/internal/panel/store"
	"github.com/jackc/pgx/v5"
)

type clientsRepo struct {
	db DBTX
}

const selectClients = `SELECT ` + store.ClientColumns + ` FROM clients`

func (r *clientsRepo) Save(ctx context.Context, c *domain.Client) error {
	s := c.Snapshot()
	_, err := r.db.Exec(ctx, `
		INSERT INTO clients (`+store.ClientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.Name, s.Email, s.Phone, s.Address, s.TaxID, string(s.Status), s.CreatedAt, s.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *clientsRepo) FindByID(ctx context.Context, id domain.ClientID) (*domain.Client, error) {
	return r.one(ctx, selectClients+` WHERE id = $1`, id.String())
}

func (r *clientsRepo) FindByEmail(ctx context.Context, email domain.Email) (*domain.Client, error) {
	return r.one(ctx, selectClients+` WHERE email = $1`, email.String())
}

func (r *clientsRepo) FindByTaxID(ctx context.Context, taxID string) (*domain.Client, error) {
	return r.one(ctx, selectClients+` WHERE tax_id = $1`, strings.ToUpper(strings.TrimSpace(taxID)))
}

func (r *clientsRepo) Find(ctx context.Context, f store.ClientFilter, p store.Pagination) (store.Page[*domain.Client], error) {
	p, err := p.Normalize()
	if err != nil {
		return store.Page[*domain.Client]{}, err
	}

	q := store.BuildClientQuery(f, store.PostgresDialect)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clients`+q.Where, q.Args...).Scan(&total); err != nil {
		return store.Page[*domain.Client]{}, err
	}

	tail, args := q.Page(p)
	clients, err := r.many(ctx, selectClients+tail, args...)
	if err != nil {
		return store.Page[*domain.Client]{}, err
	}
	return store.NewPage(clients, total, p), nil
}

func (r *clientsRepo) Update(ctx context.Context, c *domain.Client) error {
	s := c.Snapshot()
	return requireRow(r.db.Exec(ctx, `
		UPDATE clients
		SET name = $1, email = $2, phone = $3, address = $4, tax_id = $5, status = $6, updated_at = $7
		WHERE id = $8`,
		s.Name, s.Email, s.Phone, s.Address, s.TaxID, string(s.Status), s.UpdatedAt, s.ID,
	))
}

func (r *clientsRepo) Delete(ctx context.Context, id domain.ClientID) error {
	return requireRow(r.db.Exec(ctx,
		`UPDATE clients SET status = $1, updated_at = $2 WHERE id = $3`,
		string(domain.StatusDeleted), time.Now().UTC().Truncate(time.Microsecond), id.String(),
	))
}

func (r *clientsRepo) FindActive(ctx context.Context) ([]*domain.Client, error) {
	return r.FindByStatus(ctx, domain.StatusActive)
}

func (r *clientsRepo) FindByStatus(ctx context.Context, status domain.ClientStatus) ([]*domain.Client, error) {
	return r.many(ctx, selectClients+` WHERE status = $1 ORDER BY created_at DESC`, string(status))
}

func (r *clientsRepo) Search(ctx context.Context, term string) ([]*domain.Client, error) {
	q := store.BuildClientQuery(store.ClientFilter{Search: term}, store.PostgresDialect)
	return r.many(ctx, selectClients+q.Where+` ORDER BY created_at DESC`, q.Args...)
}

func (r *clientsRepo) CountByStatus(ctx context.Context, status domain.ClientStatus) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE status = $1`, string(status)).Scan(&n)
	return n, err
}

func (r *clientsRepo) ExistsByEmail(ctx context.Context, email domain.Email) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE email = $1)`, email.String())
}

func (r *clientsRepo) ExistsByTaxID(ctx context.Context, taxID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE tax_id = $1)`, strings.ToUpper(strings.TrimSpace(taxID)))
}

func (r *clientsRepo) one(ctx context.Context, query string, args ...any) (*domain.Client, error) {
	c, err := store.ScanClient(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return c, nil
}

func (r *clientsRepo) many(ctx context.Context, query string, args ...any) ([]*domain.Client, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Client, error) {
		return store.ScanClient(row)
	})
}

func (r *clientsRepo) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, query, arg).Scan(&ok)
	return ok, err
}
