package deposits

import "github.com/gorclawd/dumpter-dive/internal/chain"

// matchDeposit decides whether a parsed transaction is an inbound transfer
// to the house wallet and attributes it to a sender. The sender is the
// first other account whose balance dropped by at least the house's gain;
// first in transaction account order wins ties. This is a deliberately
// simple heuristic and is not robust for multi-party transactions.
func matchDeposit(tx *chain.ParsedTransaction, house string) (sender string, amount int64, ok bool) {
	houseIdx := -1

	for i, addr := range tx.Accounts {
		if addr == house {
			houseIdx = i
			break
		}
	}

	if houseIdx < 0 || houseIdx >= len(tx.PreBalances) || houseIdx >= len(tx.PostBalances) {
		return "", 0, false
	}

	received := int64(tx.PostBalances[houseIdx]) - int64(tx.PreBalances[houseIdx])
	if received <= 0 {
		return "", 0, false
	}

	for i, addr := range tx.Accounts {
		if i == houseIdx || i >= len(tx.PreBalances) || i >= len(tx.PostBalances) {
			continue
		}

		sent := int64(tx.PreBalances[i]) - int64(tx.PostBalances[i])
		if sent >= received {
			return addr, received, true
		}
	}

	return "", 0, false
}
