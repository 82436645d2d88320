package accounts

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/gorclawd/dumpter-dive/internal/repos/accounts"
)

func (r *accountsRepo) LockAndGet(tx *sql.Tx, address string) (accounts.Account, error) {
	acct := accounts.Account{Address: address}

	err := tx.QueryRow(`
		SELECT balance, wagered, wins, losses
		FROM accounts
		WHERE address = $1
		FOR UPDATE
	`, address).Scan(&acct.Balance, &acct.Wagered, &acct.Wins, &acct.Losses)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Account{}, accounts.ErrAccountNotFound
		}

		return accounts.Account{}, fmt.Errorf("lock/get account: %w", err)
	}

	return acct, nil
}
