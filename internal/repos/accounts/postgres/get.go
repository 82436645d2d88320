package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gorclawd/dumpter-dive/internal/repos/accounts"
)

func (r *accountsRepo) Get(ctx context.Context, address string) (accounts.Account, error) {
	acct := accounts.Account{Address: address}

	err := r.db.QueryRowContext(ctx, `
		SELECT balance, wagered, wins, losses
		FROM accounts
		WHERE address = $1
	`, address).Scan(&acct.Balance, &acct.Wagered, &acct.Wins, &acct.Losses)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Account{}, accounts.ErrAccountNotFound
		}

		return accounts.Account{}, fmt.Errorf("get account: %w", err)
	}

	return acct, nil
}
