package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorclawd/dumpter-dive/internal/gor"
	"github.com/gorclawd/dumpter-dive/internal/repos/accounts"
	"github.com/gorclawd/dumpter-dive/internal/services/deposits"
	"github.com/gorclawd/dumpter-dive/internal/services/game"
	"github.com/gorclawd/dumpter-dive/internal/services/leaderboard"
	"github.com/gorclawd/dumpter-dive/internal/services/withdrawals"
)

// HandlerProvider wraps the game services and exposes HTTP handlers.
type HandlerProvider struct {
	deposits     *deposits.Service
	game         *game.Service
	withdrawals  *withdrawals.Service
	leaderboard  *leaderboard.Service
	houseAddress string
}

func NewHandler(
	dep *deposits.Service,
	gm *game.Service,
	wd *withdrawals.Service,
	lb *leaderboard.Service,
	houseAddress string,
) *HandlerProvider {
	return &HandlerProvider{
		deposits:     dep,
		game:         gm,
		withdrawals:  wd,
		leaderboard:  lb,
		houseAddress: houseAddress,
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)

		http.Error(w, `{"error":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type accountStats struct {
	Balance int64 `json:"balance"`
	Wagered int64 `json:"wagered"`
	Wins    int64 `json:"wins"`
	Losses  int64 `json:"losses"`
}

func statsOf(acct accounts.Account) accountStats {
	return accountStats{
		Balance: acct.Balance,
		Wagered: acct.Wagered,
		Wins:    acct.Wins,
		Losses:  acct.Losses,
	}
}

// decodeBody reads a capped JSON body into dst, writing the 400 itself on
// failure. Unknown fields are rejected.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "empty body")
			return false
		}

		writeError(w, http.StatusBadRequest, "invalid JSON")

		return false
	}

	return true
}

// --- Handlers ---

// GetBalanceHandler handles GET /api/balance?wallet=...
// A deposit scan runs first, so a fresh inbound transfer shows up here.
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		writeError(w, http.StatusBadRequest, "wallet required")
		return
	}

	acct, err := h.deposits.CheckDeposits(r.Context(), wallet)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"balance":    acct.Balance,
		"balanceGor": gor.ToGOR(acct.Balance),
		"stats":      statsOf(acct),
	})
}

type playRequest struct {
	Wallet    string `json:"wallet"`
	BetAmount int64  `json:"betAmount"`
	ChosenBag int    `json:"chosenBag"`
}

// PlayHandler handles POST /api/play.
func (h *HandlerProvider) PlayHandler(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Wallet == "" {
		writeError(w, http.StatusBadRequest, "wallet required")
		return
	}

	if req.BetAmount <= 0 {
		writeError(w, http.StatusBadRequest, "betAmount must be positive")
		return
	}

	if req.ChosenBag < 0 || req.ChosenBag >= gor.BagCount {
		writeError(w, http.StatusBadRequest, "chosenBag out of range")
		return
	}

	result, err := h.game.Play(r.Context(), req.Wallet, req.BetAmount, req.ChosenBag)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrNoBalance),
			errors.Is(err, game.ErrInsufficientBalance),
			errors.Is(err, game.ErrBetBelowMinimum),
			errors.Is(err, game.ErrBetAboveMaximum):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"won":        result.Won,
		"winningBag": result.WinningBag,
		"payout":     result.Payout,
		"newBalance": result.NewBalance,
		"stats":      statsOf(result.Stats),
	})
}

type withdrawRequest struct {
	Wallet string `json:"wallet"`
	Amount int64  `json:"amount"`
}

// WithdrawHandler handles POST /api/withdraw.
func (h *HandlerProvider) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	var req withdrawRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Wallet == "" {
		writeError(w, http.StatusBadRequest, "wallet required")
		return
	}

	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	sig, newBalance, err := h.withdrawals.Withdraw(r.Context(), req.Wallet, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, withdrawals.ErrInsufficientBalance),
			errors.Is(err, withdrawals.ErrBelowMinimum):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case errors.Is(err, withdrawals.ErrHouseLowOnFunds):
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		case errors.Is(err, withdrawals.ErrWithdrawalFailed):
			writeError(w, http.StatusBadGateway, "withdrawal failed")
			return
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"signature":  sig,
		"newBalance": newBalance,
	})
}

// LeaderboardHandler handles GET /api/leaderboard.
func (h *HandlerProvider) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	board, err := h.leaderboard.Top(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, board)
}

// HouseHandler handles GET /api/house.
func (h *HandlerProvider) HouseHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"wallet": h.houseAddress})
}
