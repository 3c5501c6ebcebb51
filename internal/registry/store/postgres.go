package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"tally/internal/registry/models"
	"tally/pkg/domain"
	"tally/pkg/platform/sentinel"
)

// PostgresStore persists identities in PostgreSQL. Sequential ids come from
// per-kind sequences so they stay gapless under the single-writer model and
// monotonic regardless.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed registry store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the registry tables when they do not exist yet.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS registry_donors (
	id            BIGSERIAL PRIMARY KEY,
	address       TEXT NOT NULL UNIQUE,
	registered_at BIGINT NOT NULL
);
CREATE TABLE IF NOT EXISTS registry_campaigns (
	id            BIGSERIAL PRIMARY KEY,
	address       TEXT NOT NULL UNIQUE,
	registered_at BIGINT NOT NULL
);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate registry schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateDonor(ctx context.Context, addr domain.Address, tick domain.Tick) (*models.DonorIdentity, error) {
	var id uint64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO registry_donors (address, registered_at) VALUES ($1, $2) RETURNING id`,
		string(addr), uint64(tick),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, sentinel.ErrConflict
		}
		return nil, fmt.Errorf("create donor: %w", err)
	}
	return &models.DonorIdentity{ID: domain.DonorID(id), Address: addr, RegisteredAt: tick}, nil
}

func (s *PostgresStore) CreateCampaign(ctx context.Context, addr domain.Address, tick domain.Tick) (*models.CampaignIdentity, error) {
	var id uint64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO registry_campaigns (address, registered_at) VALUES ($1, $2) RETURNING id`,
		string(addr), uint64(tick),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, sentinel.ErrConflict
		}
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return &models.CampaignIdentity{ID: domain.CampaignID(id), Address: addr, RegisteredAt: tick}, nil
}

func (s *PostgresStore) DonorByAddress(ctx context.Context, addr domain.Address) (*models.DonorIdentity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, address, registered_at FROM registry_donors WHERE address = $1`, string(addr))
	return scanDonor(row)
}

func (s *PostgresStore) DonorByID(ctx context.Context, id domain.DonorID) (*models.DonorIdentity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, address, registered_at FROM registry_donors WHERE id = $1`, uint64(id))
	return scanDonor(row)
}

func (s *PostgresStore) CampaignByAddress(ctx context.Context, addr domain.Address) (*models.CampaignIdentity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, address, registered_at FROM registry_campaigns WHERE address = $1`, string(addr))
	return scanCampaign(row)
}

func (s *PostgresStore) CampaignByID(ctx context.Context, id domain.CampaignID) (*models.CampaignIdentity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, address, registered_at FROM registry_campaigns WHERE id = $1`, uint64(id))
	return scanCampaign(row)
}

func (s *PostgresStore) Counts(ctx context.Context) (models.Counts, error) {
	var counts models.Counts
	err := s.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM registry_donors), (SELECT COUNT(*) FROM registry_campaigns)`,
	).Scan(&counts.Donors, &counts.Campaigns)
	if err != nil {
		return models.Counts{}, fmt.Errorf("count identities: %w", err)
	}
	return counts, nil
}

func scanDonor(row *sql.Row) (*models.DonorIdentity, error) {
	var (
		id   uint64
		addr string
		tick uint64
	)
	if err := row.Scan(&id, &addr, &tick); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan donor: %w", err)
	}
	return &models.DonorIdentity{
		ID:           domain.DonorID(id),
		Address:      domain.Address(addr),
		RegisteredAt: domain.Tick(tick),
	}, nil
}

func scanCampaign(row *sql.Row) (*models.CampaignIdentity, error) {
	var (
		id   uint64
		addr string
		tick uint64
	)
	if err := row.Scan(&id, &addr, &tick); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan campaign: %w", err)
	}
	return &models.CampaignIdentity{
		ID:           domain.CampaignID(id),
		Address:      domain.Address(addr),
		RegisteredAt: domain.Tick(tick),
	}, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
