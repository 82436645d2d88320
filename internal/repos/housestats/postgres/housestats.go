package housestats

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gorclawd/dumpter-dive/internal/repos/housestats"
)

var _ housestats.HouseStats = (*houseStatsRepo)(nil)

type houseStatsRepo struct{ db *sql.DB }

func New(db *sql.DB) *houseStatsRepo {
	return &houseStatsRepo{db: db}
}

// The migration seeds exactly one row with id = 1.

func (r *houseStatsRepo) Get(ctx context.Context) (housestats.Stats, error) {
	var stats housestats.Stats

	err := r.db.QueryRowContext(ctx, `
		SELECT total_bets, total_wagered, pnl
		FROM house_stats
		WHERE id = 1
	`).Scan(&stats.TotalBets, &stats.TotalWagered, &stats.PnL)
	if err != nil {
		return housestats.Stats{}, fmt.Errorf("get house stats: %w", err)
	}

	return stats, nil
}

func (r *houseStatsRepo) RecordBet(tx *sql.Tx, amount int64) error {
	_, err := tx.Exec(`
		UPDATE house_stats
		SET total_bets = total_bets + 1,
		    total_wagered = total_wagered + $1
		WHERE id = 1
	`, amount)
	if err != nil {
		return fmt.Errorf("record bet: %w", err)
	}

	return nil
}

func (r *houseStatsRepo) AddPnL(tx *sql.Tx, delta int64) error {
	_, err := tx.Exec(`
		UPDATE house_stats
		SET pnl = pnl + $1
		WHERE id = 1
	`, delta)
	if err != nil {
		return fmt.Errorf("add pnl: %w", err)
	}

	return nil
}
