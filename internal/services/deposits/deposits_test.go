package deposits

import (
	"testing"

	"github.com/gorclawd/dumpter-dive/internal/chain/chaintest"
	"github.com/gorclawd/dumpter-dive/internal/gor"
	"github.com/gorclawd/dumpter-dive/internal/infra/pgtestutil"
)

const sender = "SenderWallet1111111111111111111111111111111"

func TestCheckDeposits_CreditsExactlyOnce(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	fake := &chaintest.Fake{House: house}
	fake.AddDeposit("sig-1", sender, 20*gor.LamportsPerGOR)

	svc := New(db, fake)

	ctx := t.Context()

	acct, err := svc.CheckDeposits(ctx, sender)
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}

	if acct.Balance != 20*gor.LamportsPerGOR {
		t.Fatalf("after deposit: want %d, got %d", 20*gor.LamportsPerGOR, acct.Balance)
	}

	// Re-scanning the same history must credit nothing.
	acct, err = svc.CheckDeposits(ctx, sender)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}

	if acct.Balance != 20*gor.LamportsPerGOR {
		t.Fatalf("after rescan: want %d, got %d", 20*gor.LamportsPerGOR, acct.Balance)
	}
}

func TestCheckDeposits_SkipsFailedAndForeignTransactions(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	fake := &chaintest.Fake{House: house}
	fake.AddDeposit("sig-ok", sender, 15*gor.LamportsPerGOR)
	fake.AddDeposit("sig-failed", sender, 99*gor.LamportsPerGOR)
	fake.Transactions["sig-failed"].Success = false

	// A signature the node has no record of stays unprocessed.
	fake.Signatures = append(fake.Signatures, "sig-unknown")

	svc := New(db, fake)

	acct, err := svc.CheckDeposits(t.Context(), sender)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	if acct.Balance != 15*gor.LamportsPerGOR {
		t.Fatalf("balance: want %d, got %d", 15*gor.LamportsPerGOR, acct.Balance)
	}
}

func TestCheckDeposits_GatewayErrorStillReturnsBalance(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	// Credit once with a working gateway.
	fake := &chaintest.Fake{House: house}
	fake.AddDeposit("sig-1", sender, 10*gor.LamportsPerGOR)

	svc := New(db, fake)

	_, err := svc.CheckDeposits(t.Context(), sender)
	if err != nil {
		t.Fatalf("initial scan: %v", err)
	}

	// Then break listing: the call still returns the best-known balance.
	fake.ListErr = chaintest.ErrFakeGateway

	acct, err := svc.CheckDeposits(t.Context(), sender)
	if err != nil {
		t.Fatalf("scan with broken gateway: %v", err)
	}

	if acct.Balance != 10*gor.LamportsPerGOR {
		t.Fatalf("balance: want %d, got %d", 10*gor.LamportsPerGOR, acct.Balance)
	}
}

func TestCheckDeposits_UnknownWalletGetsZeroRecord(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	svc := New(db, &chaintest.Fake{House: house})

	acct, err := svc.CheckDeposits(t.Context(), "NeverDeposited111111111111111111111111111111")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	if acct.Balance != 0 || acct.Wins != 0 || acct.Losses != 0 || acct.Wagered != 0 {
		t.Fatalf("expected zero record, got %+v", acct)
	}
}
