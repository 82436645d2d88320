// Package chaintest provides a scriptable in-memory chain.Gateway for
// service tests, playing the role pgtestutil plays for the store side.
package chaintest

import (
	"context"
	"errors"
	"sync"

	"github.com/gorclawd/dumpter-dive/internal/chain"
)

// Fake is a Gateway whose answers are set up by tests. The zero value is
// usable; unset fields mean "empty chain". All methods are safe for
// concurrent use.
type Fake struct {
	mu sync.Mutex

	House        string
	Signatures   []string
	Transactions map[string]*chain.ParsedTransaction
	LiveBalance  uint64

	// ListErr, SubmitErr and ConfirmErr, when set, fail the matching call.
	ListErr    error
	SubmitErr  error
	ConfirmErr error

	// NextSignature is returned by SubmitTransfer on success.
	NextSignature string

	// Submitted records every successful SubmitTransfer call.
	Submitted []Transfer
}

type Transfer struct {
	To       string
	Lamports uint64
}

var _ chain.Gateway = (*Fake)(nil)

func (f *Fake) HouseAddress() string {
	return f.House
}

func (f *Fake) ListRecentSignatures(_ context.Context, _ string, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ListErr != nil {
		return nil, f.ListErr
	}

	sigs := f.Signatures
	if len(sigs) > limit {
		sigs = sigs[:limit]
	}

	out := make([]string, len(sigs))
	copy(out, sigs)

	return out, nil
}

func (f *Fake) GetParsedTransaction(_ context.Context, signature string) (*chain.ParsedTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tx, ok := f.Transactions[signature]
	if !ok {
		return nil, nil
	}

	return tx, nil
}

func (f *Fake) GetLiveBalance(_ context.Context, _ string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.LiveBalance, nil
}

func (f *Fake) SubmitTransfer(_ context.Context, to string, lamports uint64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SubmitErr != nil {
		return "", f.SubmitErr
	}

	f.Submitted = append(f.Submitted, Transfer{To: to, Lamports: lamports})

	sig := f.NextSignature
	if sig == "" {
		sig = "fake-signature"
	}

	return sig, nil
}

func (f *Fake) AwaitConfirmation(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ConfirmErr != nil {
		return f.ConfirmErr
	}

	return nil
}

// AddDeposit scripts one successful inbound transfer of lamports from
// sender to the house wallet under the given signature.
func (f *Fake) AddDeposit(signature, sender string, lamports uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Transactions == nil {
		f.Transactions = map[string]*chain.ParsedTransaction{}
	}

	const senderStart = 1_000_000_000_000

	f.Transactions[signature] = &chain.ParsedTransaction{
		Success:      true,
		Accounts:     []string{sender, f.House},
		PreBalances:  []uint64{senderStart, 0},
		PostBalances: []uint64{senderStart - lamports, lamports},
	}
	f.Signatures = append([]string{signature}, f.Signatures...)
}

// ErrFakeGateway is a generic failure tests can plug into the error hooks.
var ErrFakeGateway = errors.New("fake gateway failure")
