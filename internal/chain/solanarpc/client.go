// Package solanarpc implements chain.Gateway against a Solana-compatible
// JSON-RPC node.
package solanarpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/gorclawd/dumpter-dive/internal/chain"
)

const (
	defaultConfirmTimeout = 45 * time.Second
	defaultPollInterval   = 2 * time.Second
)

type Client struct {
	rpc      *rpc.Client
	houseKey solana.PrivateKey

	confirmTimeout time.Duration
	pollInterval   time.Duration
}

var _ chain.Gateway = (*Client)(nil)

// New connects a client to the given RPC endpoint. housePrivateKey is the
// base58-encoded secret key of the custodial wallet.
func New(rpcURL, housePrivateKey string) (*Client, error) {
	key, err := solana.PrivateKeyFromBase58(housePrivateKey)
	if err != nil {
		return nil, fmt.Errorf("decode house private key: %w", err)
	}

	return &Client{
		rpc:            rpc.New(rpcURL),
		houseKey:       key,
		confirmTimeout: defaultConfirmTimeout,
		pollInterval:   defaultPollInterval,
	}, nil
}

func (c *Client) HouseAddress() string {
	return c.houseKey.PublicKey().String()
}

func (c *Client) ListRecentSignatures(ctx context.Context, address string, limit int) ([]string, error) {
	pub, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("parse address: %w", err)
	}

	out, err := c.rpc.GetSignaturesForAddressWithOpts(ctx, pub, &rpc.GetSignaturesForAddressOpts{
		Limit:      &limit,
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return nil, fmt.Errorf("get signatures for address: %w", err)
	}

	sigs := make([]string, 0, len(out))
	for _, s := range out {
		sigs = append(sigs, s.Signature.String())
	}

	return sigs, nil
}

func (c *Client) GetParsedTransaction(ctx context.Context, signature string) (*chain.ParsedTransaction, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return nil, fmt.Errorf("parse signature: %w", err)
	}

	maxVersion := uint64(0)

	res, err := c.rpc.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     rpc.CommitmentConfirmed,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("get transaction: %w", err)
	}

	if res == nil || res.Meta == nil {
		return nil, nil
	}

	tx, err := res.Transaction.GetTransaction()
	if err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}

	accounts := make([]string, 0, len(tx.Message.AccountKeys))
	for _, key := range tx.Message.AccountKeys {
		accounts = append(accounts, key.String())
	}

	return &chain.ParsedTransaction{
		Success:      res.Meta.Err == nil,
		Accounts:     accounts,
		PreBalances:  res.Meta.PreBalances,
		PostBalances: res.Meta.PostBalances,
	}, nil
}

func (c *Client) GetLiveBalance(ctx context.Context, address string) (uint64, error) {
	pub, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return 0, fmt.Errorf("parse address: %w", err)
	}

	res, err := c.rpc.GetBalance(ctx, pub, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}

	return res.Value, nil
}

func (c *Client) SubmitTransfer(ctx context.Context, to string, lamports uint64) (string, error) {
	toPub, err := solana.PublicKeyFromBase58(to)
	if err != nil {
		return "", fmt.Errorf("parse recipient: %w", err)
	}

	recent, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return "", fmt.Errorf("get latest blockhash: %w", err)
	}

	housePub := c.houseKey.PublicKey()

	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(lamports, housePub, toPub).Build(),
		},
		recent.Value.Blockhash,
		solana.TransactionPayer(housePub),
	)
	if err != nil {
		return "", fmt.Errorf("build transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(housePub) {
			return &c.houseKey
		}

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}

	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return "", fmt.Errorf("send transaction: %w", err)
	}

	return sig.String(), nil
}

// AwaitConfirmation polls signature status until the transfer is confirmed
// or finalized. The wait is bounded; on timeout the outcome is unknown to
// the caller, which must treat it as a failure.
func (c *Client) AwaitConfirmation(ctx context.Context, signature string) error {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return fmt.Errorf("parse signature: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		res, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
		if err == nil && res != nil && len(res.Value) > 0 && res.Value[0] != nil {
			status := res.Value[0]

			if status.Err != nil {
				return fmt.Errorf("%w: transaction failed on-chain: %v", chain.ErrConfirmationFailed, status.Err)
			}

			if status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
				status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", chain.ErrConfirmationFailed, ctx.Err())
		case <-ticker.C:
		}
	}
}
