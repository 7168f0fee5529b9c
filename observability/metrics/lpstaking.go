package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// LPStakingMetrics groups the prometheus instruments exposed for the staking
// module's RPC surface.
type LPStakingMetrics struct {
	stakesAdmitted  *prometheus.CounterVec
	claimsPaid      prometheus.Counter
	claimedAmount   prometheus.Counter
	rootsPosted     *prometheus.CounterVec
	poolsRegistered prometheus.Gauge
	failedOps       *prometheus.CounterVec
}

var (
	lpstakingOnce     sync.Once
	lpstakingRegistry *LPStakingMetrics
)

// LPStaking returns the process-wide staking metrics registry.
func LPStaking() *LPStakingMetrics {
	lpstakingOnce.Do(func() {
		lpstakingRegistry = &LPStakingMetrics{
			stakesAdmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "lpstaking_stakes_admitted_total",
				Help: "Count of successful Merkle-proof stake admissions by pool.",
			}, []string{"pool"}),
			claimsPaid: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "lpstaking_claims_paid_total",
				Help: "Count of successful reward claims.",
			}),
			claimedAmount: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "lpstaking_claimed_amount_total",
				Help: "Total LMNR paid out by claims, in base units.",
			}),
			rootsPosted: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "lpstaking_roots_posted_total",
				Help: "Count of snapshot root rotations by pool.",
			}, []string{"pool"}),
			poolsRegistered: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "lpstaking_pools_registered",
				Help: "Number of registered liquidity pools.",
			}),
			failedOps: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "lpstaking_failed_operations_total",
				Help: "Count of rejected staking operations by method.",
			}, []string{"method"}),
		}
		prometheus.MustRegister(
			lpstakingRegistry.stakesAdmitted,
			lpstakingRegistry.claimsPaid,
			lpstakingRegistry.claimedAmount,
			lpstakingRegistry.rootsPosted,
			lpstakingRegistry.poolsRegistered,
			lpstakingRegistry.failedOps,
		)
	})
	return lpstakingRegistry
}

// ObserveStake records a successful admission for the named pool.
func (m *LPStakingMetrics) ObserveStake(pool string) {
	if m == nil {
		return
	}
	m.stakesAdmitted.WithLabelValues(pool).Inc()
}

// ObserveClaim records a successful payout of the given amount.
func (m *LPStakingMetrics) ObserveClaim(amount float64) {
	if m == nil {
		return
	}
	m.claimsPaid.Inc()
	if amount > 0 {
		m.claimedAmount.Add(amount)
	}
}

// ObserveRootPosted records a snapshot rotation for the named pool.
func (m *LPStakingMetrics) ObserveRootPosted(pool string) {
	if m == nil {
		return
	}
	m.rootsPosted.WithLabelValues(pool).Inc()
}

// SetPoolCount records the current number of registered pools.
func (m *LPStakingMetrics) SetPoolCount(count uint32) {
	if m == nil {
		return
	}
	m.poolsRegistered.Set(float64(count))
}

// ObserveFailure records a rejected operation for the named RPC method.
func (m *LPStakingMetrics) ObserveFailure(method string) {
	if m == nil {
		return
	}
	m.failedOps.WithLabelValues(method).Inc()
}
