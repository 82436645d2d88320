// Package leaderboard is a read-only projection over the ledger: top
// wagerers with masked addresses, plus the aggregate house stats.
package leaderboard

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gorclawd/dumpter-dive/internal/gor"
	"github.com/gorclawd/dumpter-dive/internal/repos/accounts"
	pgaccounts "github.com/gorclawd/dumpter-dive/internal/repos/accounts/postgres"
	"github.com/gorclawd/dumpter-dive/internal/repos/housestats"
	pghousestats "github.com/gorclawd/dumpter-dive/internal/repos/housestats/postgres"
)

type Entry struct {
	Wallet  string `json:"wallet"`
	Wagered int64  `json:"wagered"`
	Wins    int64  `json:"wins"`
	Losses  int64  `json:"losses"`
}

type Board struct {
	Leaderboard []Entry          `json:"leaderboard"`
	HouseStats  housestats.Stats `json:"houseStats"`
}

type Service struct {
	accounts accounts.Accounts
	stats    housestats.HouseStats
}

func New(db *sql.DB) *Service {
	return &Service{
		accounts: pgaccounts.New(db),
		stats:    pghousestats.New(db),
	}
}

func (s *Service) Top(ctx context.Context) (Board, error) {
	top, err := s.accounts.TopWagerers(ctx, gor.LeaderboardSize)
	if err != nil {
		return Board{}, fmt.Errorf("top wagerers: %w", err)
	}

	entries := make([]Entry, 0, len(top))
	for _, acct := range top {
		entries = append(entries, Entry{
			Wallet:  maskAddress(acct.Address),
			Wagered: acct.Wagered,
			Wins:    acct.Wins,
			Losses:  acct.Losses,
		})
	}

	stats, err := s.stats.Get(ctx)
	if err != nil {
		return Board{}, fmt.Errorf("house stats: %w", err)
	}

	return Board{Leaderboard: entries, HouseStats: stats}, nil
}

// maskAddress shortens a wallet address for display: first and last four
// characters. Addresses too short to mask are returned as-is.
func maskAddress(addr string) string {
	if len(addr) <= 8 {
		return addr
	}

	return addr[:4] + "..." + addr[len(addr)-4:]
}
