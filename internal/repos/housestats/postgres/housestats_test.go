package housestats

import (
	"database/sql"
	"testing"

	"github.com/gorclawd/dumpter-dive/internal/infra/pgtestutil"
)

func inTx(t *testing.T, db *sql.DB, fn func(tx *sql.Tx) error) {
	t.Helper()

	tx, err := db.BeginTx(t.Context(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	err = fn(tx)
	if err != nil {
		_ = tx.Rollback()
		t.Fatalf("apply: %v", err)
	}

	err = tx.Commit()
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestHouseStats_SeededRowStartsAtZero(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	stats, err := repo.Get(t.Context())
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if stats.TotalBets != 0 || stats.TotalWagered != 0 || stats.PnL != 0 {
		t.Fatalf("fresh stats not zero: %+v", stats)
	}
}

func TestHouseStats_RecordBetAndPnL(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	inTx(t, db, func(tx *sql.Tx) error {
		if err := repo.RecordBet(tx, 1000); err != nil {
			return err
		}
		return repo.AddPnL(tx, 1000)
	})

	inTx(t, db, func(tx *sql.Tx) error {
		if err := repo.RecordBet(tx, 500); err != nil {
			return err
		}
		// A 500 win at 2x pays 1000: the house is down the stake.
		return repo.AddPnL(tx, -500)
	})

	stats, err := repo.Get(t.Context())
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if stats.TotalBets != 2 || stats.TotalWagered != 1500 || stats.PnL != 500 {
		t.Fatalf("stats: got %+v", stats)
	}
}
