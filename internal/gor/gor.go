// Package gor holds native-amount conversions and the wagering limits.
// All ledger amounts are lamports (smallest native unit, 10^-9 GOR).
package gor

const (
	Decimals       = 9
	LamportsPerGOR = 1_000_000_000

	// MinDeposit doubles as the minimum bet and minimum withdrawal,
	// matching the deployed house rules.
	MinDeposit  = 10 * LamportsPerGOR
	MinBet      = MinDeposit
	MinWithdraw = MinDeposit
	MaxBet      = 1000 * LamportsPerGOR

	// Multiplier is the even-money payout on a win: stake times two.
	Multiplier = 2

	// BagCount is the number of bags a player can pick from.
	BagCount = 3

	// FeeReserve is kept on top of any withdrawal so the house can
	// still pay the network fee.
	FeeReserve = 5000

	// ScanPageSize is how many recent signatures one deposit scan reads.
	ScanPageSize = 50

	// ProcessedRetention caps the processed-signature set. It must stay
	// well above ScanPageSize or trimmed signatures could be re-credited.
	ProcessedRetention = 1000

	LeaderboardSize = 10
)

// ToGOR converts lamports to whole-GOR display units.
func ToGOR(lamports int64) float64 {
	return float64(lamports) / LamportsPerGOR
}
