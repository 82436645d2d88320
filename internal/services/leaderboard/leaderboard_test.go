package leaderboard

import (
	"testing"

	"github.com/gorclawd/dumpter-dive/internal/infra/pgtestutil"
)

func TestMaskAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		addr string
		want string
	}{
		{
			name: "long_address",
			addr: "AbCdEfGhIjKlMnOpQrStUvWxYz1234567890abcd",
			want: "AbCd...abcd",
		},
		{name: "short_address_unmasked", addr: "AbCdEfGh", want: "AbCdEfGh"},
		{name: "empty", addr: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := maskAddress(tt.addr)
			if got != tt.want {
				t.Fatalf("maskAddress(%q): want %q, got %q", tt.addr, tt.want, got)
			}
		})
	}
}

func TestTop_RanksByWageredAndFiltersIdleAccounts(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seed := []struct {
		address string
		wagered int64
		wins    int64
		losses  int64
	}{
		{"WalletSmallRoller111111111111111111111111111", 100, 1, 0},
		{"WalletHighRoller2222222222222222222222222222", 5000, 3, 7},
		// Deposited but never played: must not appear.
		{"WalletIdleDepositor3333333333333333333333333", 0, 0, 0},
		{"WalletMidRoller44444444444444444444444444444", 800, 0, 2},
	}

	for _, s := range seed {
		_, err := db.Exec(`
			INSERT INTO accounts (address, wagered, wins, losses)
			VALUES ($1, $2, $3, $4)
		`, s.address, s.wagered, s.wins, s.losses)
		if err != nil {
			t.Fatalf("seed account: %v", err)
		}
	}

	_, err := db.Exec(`UPDATE house_stats SET total_bets = 13, total_wagered = 5900, pnl = 420 WHERE id = 1`)
	if err != nil {
		t.Fatalf("seed house stats: %v", err)
	}

	svc := New(db)

	board, err := svc.Top(t.Context())
	if err != nil {
		t.Fatalf("top: %v", err)
	}

	if len(board.Leaderboard) != 3 {
		t.Fatalf("entries: want 3, got %d", len(board.Leaderboard))
	}

	wantOrder := []int64{5000, 800, 100}
	for i, want := range wantOrder {
		if board.Leaderboard[i].Wagered != want {
			t.Fatalf("rank %d: want wagered %d, got %d", i, want, board.Leaderboard[i].Wagered)
		}
	}

	// Addresses come back masked.
	if got := board.Leaderboard[0].Wallet; got != "Wall...2222" {
		t.Fatalf("masked wallet: want Wall...2222, got %s", got)
	}

	if board.HouseStats.TotalBets != 13 || board.HouseStats.TotalWagered != 5900 || board.HouseStats.PnL != 420 {
		t.Fatalf("house stats: got %+v", board.HouseStats)
	}
}
