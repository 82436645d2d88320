// Package metrics exposes the Prometheus counters for the game and a
// small sidecar server for /metrics and /healthz.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DepositsCredited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dumpster_deposits_credited_total",
		Help: "Inbound transfers credited to player balances.",
	})

	DepositedLamports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dumpster_deposited_lamports_total",
		Help: "Total lamports credited from detected deposits.",
	})

	BetsPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dumpster_bets_placed_total",
		Help: "Settled wagers.",
	})

	WageredLamports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dumpster_wagered_lamports_total",
		Help: "Total lamports staked across all wagers.",
	})

	WithdrawalsPaid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dumpster_withdrawals_paid_total",
		Help: "Confirmed on-chain withdrawals.",
	})
)

type HealthFunc func(ctx context.Context) error

// StartServer runs a lightweight HTTP server for /metrics and /healthz on
// its own port, away from the public API. The caller owns shutdown.
func StartServer(port string, healthFn HealthFunc) *http.Server {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()

		err := healthFn(ctx)
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = fmt.Fprintf(w, "unhealthy: %v", err)

			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		_ = srv.ListenAndServe()
	}()

	return srv
}
