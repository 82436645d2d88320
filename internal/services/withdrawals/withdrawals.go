// Package withdrawals pays out ledger balances as real on-chain transfers.
// The ledger is debited only after the network confirms the payment.
package withdrawals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gorclawd/dumpter-dive/internal/chain"
	"github.com/gorclawd/dumpter-dive/internal/gor"
	"github.com/gorclawd/dumpter-dive/internal/infra/metrics"
	"github.com/gorclawd/dumpter-dive/internal/infra/pgutils"
	"github.com/gorclawd/dumpter-dive/internal/repos/accounts"
	pgaccounts "github.com/gorclawd/dumpter-dive/internal/repos/accounts/postgres"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBelowMinimum        = errors.New("below minimum withdrawal")

	// ErrHouseLowOnFunds is transient: nothing was mutated, retry later.
	ErrHouseLowOnFunds = errors.New("house temporarily low on funds")

	// ErrWithdrawalFailed covers any gateway failure. The ledger is left
	// untouched so the withdrawal can be retried.
	ErrWithdrawalFailed = errors.New("withdrawal failed")
)

type Service struct {
	db       *sql.DB
	gw       chain.Gateway
	accounts accounts.Accounts
}

func New(db *sql.DB, gw chain.Gateway) *Service {
	return &Service{
		db:       db,
		gw:       gw,
		accounts: pgaccounts.New(db),
	}
}

// Withdraw sends lamports to the player's wallet and debits the ledger on
// confirmed success. No database transaction is held across the network
// calls; the debit itself is conditional on the balance still covering the
// amount.
func (s *Service) Withdraw(ctx context.Context, wallet string, amount int64) (string, int64, error) {
	acct, err := s.accounts.Get(ctx, wallet)
	if err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			return "", 0, ErrInsufficientBalance
		}

		return "", 0, fmt.Errorf("get account: %w", err)
	}

	if acct.Balance < amount {
		return "", 0, ErrInsufficientBalance
	}

	if amount < gor.MinWithdraw {
		return "", 0, ErrBelowMinimum
	}

	houseBalance, err := s.gw.GetLiveBalance(ctx, s.gw.HouseAddress())
	if err != nil {
		return "", 0, fmt.Errorf("%w: query house balance: %v", ErrWithdrawalFailed, err)
	}

	if houseBalance < uint64(amount)+gor.FeeReserve {
		return "", 0, ErrHouseLowOnFunds
	}

	sig, err := s.gw.SubmitTransfer(ctx, wallet, uint64(amount))
	if err != nil {
		return "", 0, fmt.Errorf("%w: submit transfer: %v", ErrWithdrawalFailed, err)
	}

	err = s.gw.AwaitConfirmation(ctx, sig)
	if err != nil {
		// The transfer was submitted but never confirmed. It may still
		// have landed on-chain, so the ledger is left uncharged and the
		// signature is recorded for manual reconciliation.
		slog.Error("withdrawal submitted but unconfirmed, reconcile manually",
			"wallet", wallet,
			"lamports", amount,
			"signature", sig,
			"error", err,
		)

		return "", 0, fmt.Errorf("%w: confirm transfer: %v", ErrWithdrawalFailed, err)
	}

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.accounts.Decrease(tx, wallet, amount)
	})
	if err != nil {
		if errors.Is(err, accounts.ErrInsufficientFunds) {
			// The balance was spent while the transfer confirmed. The
			// payment is already out the door; flag it.
			slog.Error("confirmed withdrawal could not be debited, reconcile manually",
				"wallet", wallet,
				"lamports", amount,
				"signature", sig,
			)

			return sig, 0, ErrInsufficientBalance
		}

		return sig, 0, fmt.Errorf("debit ledger: %w", err)
	}

	metrics.WithdrawalsPaid.Inc()

	slog.Info("withdrawal paid",
		"wallet", wallet,
		"gor", gor.ToGOR(amount),
		"signature", sig,
	)

	acct, err = s.accounts.Get(ctx, wallet)
	if err != nil {
		return sig, 0, fmt.Errorf("reload account: %w", err)
	}

	return sig, acct.Balance, nil
}
