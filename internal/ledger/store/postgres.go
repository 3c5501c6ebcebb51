package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tally/internal/ledger/models"
	"tally/pkg/domain"
	"tally/pkg/platform/sentinel"
)

// PostgresStore persists the ledger in PostgreSQL. Donation ids come from a
// single counter row updated inside the append transaction, not a sequence,
// because sequences leave gaps on rollback and the ledger guarantees gapless
// ids.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed ledger store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the ledger tables when they do not exist yet.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS ledger_donations (
	id          BIGINT PRIMARY KEY,
	donor_id    BIGINT NOT NULL,
	campaign_id BIGINT NOT NULL,
	amount      BIGINT NOT NULL,
	tick        BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS ledger_donations_donor_idx ON ledger_donations (donor_id, id);
CREATE INDEX IF NOT EXISTS ledger_donations_campaign_idx ON ledger_donations (campaign_id, id);
CREATE TABLE IF NOT EXISTS ledger_counter (
	singleton BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
	next_id   BIGINT NOT NULL
);
INSERT INTO ledger_counter (next_id) VALUES (0) ON CONFLICT DO NOTHING;`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate ledger schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, donor domain.DonorID, campaign domain.CampaignID, amount int64, tick domain.Tick) (domain.DonationID, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	// Locking the counter row serializes appends, so the cap checks below
	// see a consistent view.
	var id uint64
	err = tx.QueryRowContext(ctx,
		`UPDATE ledger_counter SET next_id = next_id + 1 RETURNING next_id - 1`,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("claim donation id: %w", err)
	}

	var donorCount, campaignCount int
	err = tx.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM ledger_donations WHERE donor_id = $1),
			(SELECT COUNT(*) FROM ledger_donations WHERE campaign_id = $2)`,
		uint64(donor), uint64(campaign),
	).Scan(&donorCount, &campaignCount)
	if err != nil {
		return 0, fmt.Errorf("count ledger entries: %w", err)
	}
	if donorCount >= models.MaxListEntries || campaignCount >= models.MaxListEntries {
		// Rolling back also returns the claimed id, keeping ids gapless.
		return 0, sentinel.ErrCapacity
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ledger_donations (id, donor_id, campaign_id, amount, tick) VALUES ($1, $2, $3, $4, $5)`,
		id, uint64(donor), uint64(campaign), amount, uint64(tick),
	)
	if err != nil {
		return 0, fmt.Errorf("insert donation: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit append: %w", err)
	}
	return domain.DonationID(id), nil
}

func (s *PostgresStore) DonationsByDonor(ctx context.Context, donor domain.DonorID, start, limit int) ([]models.DonationEntry, int, error) {
	total, err := s.CountByDonor(ctx, donor)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT campaign_id, amount, tick, id FROM ledger_donations
		 WHERE donor_id = $1 ORDER BY id OFFSET $2 LIMIT $3`,
		uint64(donor), start, limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query donor donations: %w", err)
	}
	defer rows.Close()

	items := make([]models.DonationEntry, 0, limit)
	for rows.Next() {
		var (
			entry      models.DonationEntry
			campaignID uint64
			tick       uint64
			id         uint64
		)
		if err := rows.Scan(&campaignID, &entry.Amount, &tick, &id); err != nil {
			return nil, 0, fmt.Errorf("scan donor donation: %w", err)
		}
		entry.Campaign = domain.CampaignID(campaignID)
		entry.Tick = domain.Tick(tick)
		entry.Donation = domain.DonationID(id)
		items = append(items, entry)
	}
	return items, total, rows.Err()
}

func (s *PostgresStore) DonationsByCampaign(ctx context.Context, campaign domain.CampaignID, start, limit int) ([]models.CampaignDonationEntry, int, error) {
	total, err := s.CountByCampaign(ctx, campaign)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT donor_id, amount, tick, id FROM ledger_donations
		 WHERE campaign_id = $1 ORDER BY id OFFSET $2 LIMIT $3`,
		uint64(campaign), start, limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query campaign donations: %w", err)
	}
	defer rows.Close()

	items := make([]models.CampaignDonationEntry, 0, limit)
	for rows.Next() {
		var (
			entry   models.CampaignDonationEntry
			donorID uint64
			tick    uint64
			id      uint64
		)
		if err := rows.Scan(&donorID, &entry.Amount, &tick, &id); err != nil {
			return nil, 0, fmt.Errorf("scan campaign donation: %w", err)
		}
		entry.Donor = domain.DonorID(donorID)
		entry.Tick = domain.Tick(tick)
		entry.Donation = domain.DonationID(id)
		items = append(items, entry)
	}
	return items, total, rows.Err()
}

func (s *PostgresStore) Detail(ctx context.Context, id domain.DonationID) (*models.DonationDetail, error) {
	var (
		donorID    uint64
		campaignID uint64
		amount     int64
		tick       uint64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT donor_id, campaign_id, amount, tick FROM ledger_donations WHERE id = $1`,
		uint64(id),
	).Scan(&donorID, &campaignID, &amount, &tick)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("query donation detail: %w", err)
	}
	return &models.DonationDetail{
		ID:       id,
		Donor:    domain.DonorID(donorID),
		Campaign: domain.CampaignID(campaignID),
		Amount:   amount,
		Tick:     domain.Tick(tick),
	}, nil
}

func (s *PostgresStore) TotalByDonor(ctx context.Context, donor domain.DonorID) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM ledger_donations WHERE donor_id = $1`,
		uint64(donor),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum donor donations: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) TotalByCampaign(ctx context.Context, campaign domain.CampaignID) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM ledger_donations WHERE campaign_id = $1`,
		uint64(campaign),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum campaign donations: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) CountByDonor(ctx context.Context, donor domain.DonorID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ledger_donations WHERE donor_id = $1`, uint64(donor),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count donor donations: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) CountByCampaign(ctx context.Context, campaign domain.CampaignID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ledger_donations WHERE campaign_id = $1`, uint64(campaign),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count campaign donations: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) Stats(ctx context.Context) (models.Stats, error) {
	var nextID uint64
	err := s.db.QueryRowContext(ctx, `SELECT next_id FROM ledger_counter`).Scan(&nextID)
	if err != nil {
		return models.Stats{}, fmt.Errorf("query ledger counter: %w", err)
	}
	stats := models.Stats{TotalDonations: nextID}
	if nextID > 0 {
		stats.LatestID = domain.DonationID(nextID - 1)
		stats.HasDonations = true
	}
	return stats, nil
}
