// Package deposits reconciles the internal ledger against the chain: it
// scans the house wallet's recent history, attributes inbound transfers to
// their senders, and credits each transfer exactly once.
package deposits

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
	"github.com/gorclawd/dumpter-dive/internal/repos/processedtx"
	pgprocessedtx "github.com/gorclawd/dumpter-dive/internal/repos/processedtx/postgres"
)

type Service struct {
	db        *sql.DB
	gw        chain.Gateway
	accounts  accounts.Accounts
	processed processedtx.ProcessedTransactions
}

func New(db *sql.DB, gw chain.Gateway) *Service {
	return &Service{
		db:        db,
		gw:        gw,
		accounts:  pgaccounts.New(db),
		processed: pgprocessedtx.New(db),
	}
}

// CheckDeposits runs a scan pass over the house wallet's recent history and
// then returns the wallet's current account record. Scan failures are
// logged, not surfaced: the caller always gets the best-known balance. A
// wallet with no account yet gets a zero record.
func (s *Service) CheckDeposits(ctx context.Context, wallet string) (accounts.Account, error) {
	err := s.scan(ctx)
	if err != nil {
		slog.Error("deposit scan aborted", "error", err)
	}

	acct, err := s.accounts.Get(ctx, wallet)
	if err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			return accounts.Account{Address: wallet}, nil
		}

		return accounts.Account{}, fmt.Errorf("get account: %w", err)
	}

	return acct, nil
}

// scan walks the most recent page of signatures. Each new inbound transfer
// is credited in its own database transaction, so an abort partway through
// never loses credits already applied.
func (s *Service) scan(ctx context.Context) error {
	house := s.gw.HouseAddress()

	sigs, err := s.gw.ListRecentSignatures(ctx, house, gor.ScanPageSize)
	if err != nil {
		return fmt.Errorf("list recent signatures: %w", err)
	}

	for _, sig := range sigs {
		seen, err := s.processed.Seen(ctx, sig)
		if err != nil {
			return fmt.Errorf("check processed: %w", err)
		}

		if seen {
			continue
		}

		ptx, err := s.gw.GetParsedTransaction(ctx, sig)
		if err != nil {
			// Tolerate per-transaction fetch failures; the signature
			// stays unmarked and is retried on the next scan.
			slog.Error("fetch transaction", "signature", sig, "error", err)
			continue
		}

		if ptx == nil || !ptx.Success {
			continue
		}

		sender, amount, ok := matchDeposit(ptx, house)
		if !ok {
			continue
		}

		err = s.credit(ctx, sig, sender, amount)
		if err != nil {
			if errors.Is(err, processedtx.ErrAlreadyProcessed) {
				// A concurrent scan got there first.
				continue
			}

			slog.Error("credit deposit", "signature", sig, "error", err)

			continue
		}

		metrics.DepositsCredited.Inc()
		metrics.DepositedLamports.Add(float64(amount))

		slog.Info("deposit credited",
			"sender", sender,
			"gor", gor.ToGOR(amount),
			"signature", sig,
		)
	}

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.processed.Trim(tx, gor.ProcessedRetention)
	})
	if err != nil {
		return fmt.Errorf("trim processed set: %w", err)
	}

	return nil
}

// credit applies one deposit. The balance increase and the processed-set
// insert commit together; a duplicate signature rolls the whole credit
// back, which is what makes crediting exactly-once.
func (s *Service) credit(ctx context.Context, sig, sender string, amount int64) error {
	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.accounts.CreateIfAbsent(tx, sender)
		if err != nil {
			return fmt.Errorf("ensure account: %w", err)
		}

		err = s.accounts.Increase(tx, sender, amount)
		if err != nil {
			return fmt.Errorf("increase balance: %w", err)
		}

		err = s.processed.Insert(tx, sig, sender, amount)
		if err != nil {
			return fmt.Errorf("mark processed: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("credit deposit: %w", err)
	}

	return nil
}
