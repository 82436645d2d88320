package accounts

import (
	"context"
	"fmt"

	"github.com/gorclawd/dumpter-dive/internal/repos/accounts"
)

// TopWagerers returns accounts with at least one resolved bet, biggest
// wagered total first.
func (r *accountsRepo) TopWagerers(ctx context.Context, limit int) ([]accounts.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT address, balance, wagered, wins, losses
		FROM accounts
		WHERE wins + losses > 0
		ORDER BY wagered DESC, address
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top wagerers: %w", err)
	}
	defer rows.Close()

	var out []accounts.Account

	for rows.Next() {
		var acct accounts.Account

		err = rows.Scan(&acct.Address, &acct.Balance, &acct.Wagered, &acct.Wins, &acct.Losses)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}

		out = append(out, acct)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return out, nil
}
