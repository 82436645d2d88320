package accounts

import (
	"context"
	"database/sql"
	"errors"
)

var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrAccountNotFound = errors.New("account not found")

// Account is one user's ledger record, keyed by wallet address.
// Balance and Wagered are lamports.
type Account struct {
	Address string
	Balance int64
	Wagered int64
	Wins    int64
	Losses  int64
}

type Accounts interface {
	Get(ctx context.Context, address string) (Account, error)
	LockAndGet(tx *sql.Tx, address string) (Account, error)
	CreateIfAbsent(tx *sql.Tx, address string) error
	Increase(tx *sql.Tx, address string, amount int64) error
	Decrease(tx *sql.Tx, address string, amount int64) error
	AddWagered(tx *sql.Tx, address string, amount int64) error
	RecordWin(tx *sql.Tx, address string) error
	RecordLoss(tx *sql.Tx, address string) error
	TopWagerers(ctx context.Context, limit int) ([]Account, error)
}
