package processedtx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gorclawd/dumpter-dive/internal/repos/processedtx"
)

var _ processedtx.ProcessedTransactions = (*processedTxRepo)(nil)

type processedTxRepo struct{ db *sql.DB }

func New(db *sql.DB) *processedTxRepo {
	return &processedTxRepo{db: db}
}

func (r *processedTxRepo) Seen(ctx context.Context, signature string) (bool, error) {
	var seen bool

	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM processed_transactions WHERE signature = $1)
	`, signature).Scan(&seen)
	if err != nil {
		return false, fmt.Errorf("check signature seen: %w", err)
	}

	return seen, nil
}

func (r *processedTxRepo) Insert(tx *sql.Tx, signature, account string, amount int64) error {
	_, err := tx.Exec(`
		INSERT INTO processed_transactions (signature, account, amount)
		VALUES ($1, $2, $3)
	`, signature, account, amount)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return processedtx.ErrAlreadyProcessed
			}
		}

		return fmt.Errorf("insert processed transaction: %w", err)
	}

	return nil
}

func (r *processedTxRepo) Trim(tx *sql.Tx, keep int) error {
	_, err := tx.Exec(`
		DELETE FROM processed_transactions
		WHERE id NOT IN (
			SELECT id
			FROM processed_transactions
			ORDER BY id DESC
			LIMIT $1
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("trim processed transactions: %w", err)
	}

	return nil
}
