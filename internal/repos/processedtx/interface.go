// Package processedtx tracks which chain signatures have already been
// credited. It is the deduplication record that makes deposit crediting
// exactly-once across repeated scans.
package processedtx

import (
	"context"
	"database/sql"
	"errors"
)

var ErrAlreadyProcessed = errors.New("transaction already processed")

type ProcessedTransactions interface {
	// Seen reports whether the signature has been credited already.
	Seen(ctx context.Context, signature string) (bool, error)

	// Insert records a credited signature. It must run in the same
	// database transaction as the credit itself; a duplicate insert
	// returns ErrAlreadyProcessed so the caller rolls the credit back.
	Insert(tx *sql.Tx, signature, account string, amount int64) error

	// Trim drops the oldest entries, keeping at most keep signatures.
	Trim(tx *sql.Tx, keep int) error
}
