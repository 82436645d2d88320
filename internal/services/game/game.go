// Package game settles wagers against the ledger. One round: stake three
// bags, pick one, double or nothing.
package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/gorclawd/dumpter-dive/internal/gor"
	"github.com/gorclawd/dumpter-dive/internal/infra/metrics"
	"github.com/gorclawd/dumpter-dive/internal/infra/pgutils"
	"github.com/gorclawd/dumpter-dive/internal/repos/accounts"
	pgaccounts "github.com/gorclawd/dumpter-dive/internal/repos/accounts/postgres"
	"github.com/gorclawd/dumpter-dive/internal/repos/housestats"
	pghousestats "github.com/gorclawd/dumpter-dive/internal/repos/housestats/postgres"
)

var (
	ErrNoBalance           = errors.New("no balance, deposit first")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBetBelowMinimum     = errors.New("bet below minimum")
	ErrBetAboveMaximum     = errors.New("bet above maximum")
)

// Result is the outcome of one settled wager. Payout is zero on a loss.
type Result struct {
	Won        bool
	WinningBag int
	Payout     int64
	NewBalance int64
	Stats      accounts.Account
}

type Service struct {
	db       *sql.DB
	accounts accounts.Accounts
	stats    housestats.HouseStats

	// pick draws the winning bag uniformly from [0, n). Injectable so
	// tests can force outcomes.
	pick func(n int) int
}

func New(db *sql.DB) *Service {
	return &Service{
		db:       db,
		accounts: pgaccounts.New(db),
		stats:    pghousestats.New(db),
		pick:     rand.IntN,
	}
}

// Play validates and settles one wager. The whole settlement is a single
// database transaction serialized on the player's row lock: either every
// effect (stake debit, counters, house stats, payout) commits, or none do.
func (s *Service) Play(ctx context.Context, wallet string, bet int64, chosenBag int) (Result, error) {
	var result Result

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		acct, err := s.accounts.LockAndGet(tx, wallet)
		if err != nil {
			if errors.Is(err, accounts.ErrAccountNotFound) {
				return ErrNoBalance
			}

			return fmt.Errorf("lock account: %w", err)
		}

		switch {
		case bet > acct.Balance:
			return ErrInsufficientBalance
		case bet < gor.MinBet:
			return ErrBetBelowMinimum
		case bet > gor.MaxBet:
			return ErrBetAboveMaximum
		}

		err = s.accounts.Decrease(tx, wallet, bet)
		if err != nil {
			return fmt.Errorf("deduct stake: %w", err)
		}

		err = s.accounts.AddWagered(tx, wallet, bet)
		if err != nil {
			return fmt.Errorf("add wagered: %w", err)
		}

		err = s.stats.RecordBet(tx, bet)
		if err != nil {
			return fmt.Errorf("record bet: %w", err)
		}

		acct.Balance -= bet
		acct.Wagered += bet

		winningBag := s.pick(gor.BagCount)
		won := chosenBag == winningBag

		var payout int64

		if won {
			payout = bet * gor.Multiplier

			err = s.accounts.Increase(tx, wallet, payout)
			if err != nil {
				return fmt.Errorf("credit payout: %w", err)
			}

			err = s.accounts.RecordWin(tx, wallet)
			if err != nil {
				return fmt.Errorf("record win: %w", err)
			}

			err = s.stats.AddPnL(tx, -(payout - bet))
			if err != nil {
				return fmt.Errorf("debit house pnl: %w", err)
			}

			acct.Balance += payout
			acct.Wins++
		} else {
			err = s.accounts.RecordLoss(tx, wallet)
			if err != nil {
				return fmt.Errorf("record loss: %w", err)
			}

			err = s.stats.AddPnL(tx, bet)
			if err != nil {
				return fmt.Errorf("credit house pnl: %w", err)
			}

			acct.Losses++
		}

		result = Result{
			Won:        won,
			WinningBag: winningBag,
			Payout:     payout,
			NewBalance: acct.Balance,
			Stats:      acct,
		}

		return nil
	})
	if err != nil {
		return Result{}, err
	}

	metrics.BetsPlaced.Inc()
	metrics.WageredLamports.Add(float64(bet))

	return result, nil
}
