package accounts

import (
	"database/sql"
	"fmt"

	"github.com/gorclawd/dumpter-dive/internal/repos/accounts"
)

func (r *accountsRepo) CreateIfAbsent(tx *sql.Tx, address string) error {
	_, err := tx.Exec(`
		INSERT INTO accounts (address)
		VALUES ($1)
		ON CONFLICT (address) DO NOTHING
	`, address)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

func (r *accountsRepo) Increase(tx *sql.Tx, address string, amount int64) error {
	_, err := tx.Exec(`
		UPDATE accounts
		SET balance = balance + $2
		WHERE address = $1
	`, address, amount)
	if err != nil {
		return fmt.Errorf("increase balance: %w", err)
	}

	return nil
}

// Decrease only applies when the balance covers the amount; the guard is
// what keeps balances non-negative under concurrent mutation.
func (r *accountsRepo) Decrease(tx *sql.Tx, address string, amount int64) error {
	res, err := tx.Exec(`
		UPDATE accounts
		SET balance = balance - $2
		WHERE address = $1
		  AND balance >= $2
	`, address, amount)
	if err != nil {
		return fmt.Errorf("decrease balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return accounts.ErrInsufficientFunds
	}

	return nil
}

func (r *accountsRepo) AddWagered(tx *sql.Tx, address string, amount int64) error {
	_, err := tx.Exec(`
		UPDATE accounts
		SET wagered = wagered + $2
		WHERE address = $1
	`, address, amount)
	if err != nil {
		return fmt.Errorf("add wagered: %w", err)
	}

	return nil
}

func (r *accountsRepo) RecordWin(tx *sql.Tx, address string) error {
	_, err := tx.Exec(`
		UPDATE accounts
		SET wins = wins + 1
		WHERE address = $1
	`, address)
	if err != nil {
		return fmt.Errorf("record win: %w", err)
	}

	return nil
}

func (r *accountsRepo) RecordLoss(tx *sql.Tx, address string) error {
	_, err := tx.Exec(`
		UPDATE accounts
		SET losses = losses + 1
		WHERE address = $1
	`, address)
	if err != nil {
		return fmt.Errorf("record loss: %w", err)
	}

	return nil
}
