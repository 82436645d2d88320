// Package chain defines the boundary to the external ledger network.
// The rest of the system only talks to the network through Gateway.
package chain

import (
	"context"
	"errors"
)

var (
	// ErrConfirmationFailed means a submitted transfer could not be
	// confirmed in time. The transfer may still have landed on-chain.
	ErrConfirmationFailed = errors.New("transfer confirmation failed")
)

// ParsedTransaction is the balance-level view of one chain transaction.
// Accounts, PreBalances and PostBalances are index-aligned.
type ParsedTransaction struct {
	Success      bool
	Accounts     []string
	PreBalances  []uint64
	PostBalances []uint64
}

// Gateway abstracts the chain node used for deposit discovery and payouts.
type Gateway interface {
	// HouseAddress returns the custodial wallet address.
	HouseAddress() string

	// ListRecentSignatures returns up to limit signatures that touched
	// address, newest first.
	ListRecentSignatures(ctx context.Context, address string, limit int) ([]string, error)

	// GetParsedTransaction fetches balance details for a signature.
	// It returns (nil, nil) when the node has no record of it.
	GetParsedTransaction(ctx context.Context, signature string) (*ParsedTransaction, error)

	// GetLiveBalance returns the current on-chain balance in lamports.
	GetLiveBalance(ctx context.Context, address string) (uint64, error)

	// SubmitTransfer builds, signs and submits a transfer from the house
	// wallet and returns its signature. Submission alone does not mean
	// the transfer is final; callers must AwaitConfirmation.
	SubmitTransfer(ctx context.Context, to string, lamports uint64) (string, error)

	// AwaitConfirmation blocks until the signature is confirmed, the
	// network reports it failed, or the bounded wait runs out.
	AwaitConfirmation(ctx context.Context, signature string) error
}
