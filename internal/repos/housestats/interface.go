// Package housestats holds the aggregate house counters: bets placed,
// amount wagered, and the house's signed profit/loss.
package housestats

import (
	"context"
	"database/sql"
)

// Stats amounts are lamports. PnL is positive when the house is ahead.
type Stats struct {
	TotalBets    int64 `json:"totalBets"`
	TotalWagered int64 `json:"totalWagered"`
	PnL          int64 `json:"housePnl"`
}

type HouseStats interface {
	Get(ctx context.Context) (Stats, error)

	// RecordBet bumps the bet counter and adds amount to the wagered total.
	RecordBet(tx *sql.Tx, amount int64) error

	// AddPnL shifts the house profit/loss by delta (negative on a payout).
	AddPnL(tx *sql.Tx, delta int64) error
}
