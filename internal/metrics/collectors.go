package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels used by the operation counters.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// Ops counts the outcomes of the sync, submit and mine operations.
type Ops struct {
	Syncs       *prometheus.CounterVec
	Submissions *prometheus.CounterVec
	Mines       *prometheus.CounterVec
	StaleSyncs  prometheus.Counter
}

func NewOps() *Ops {
	return &Ops{
		Syncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yalc_syncs_total",
			Help: "Chain sync attempts by outcome.",
		}, []string{"outcome"}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yalc_submissions_total",
			Help: "Transaction submissions by outcome.",
		}, []string{"outcome"}),
		Mines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yalc_mines_total",
			Help: "Mining requests by outcome.",
		}, []string{"outcome"}),
		StaleSyncs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yalc_stale_syncs_dropped_total",
			Help: "Sync responses discarded because a newer chain was already applied.",
		}),
	}
}

// Collectors returns the counters for registration.
func (o *Ops) Collectors() []prometheus.Collector {
	return []prometheus.Collector{o.Syncs, o.Submissions, o.Mines, o.StaleSyncs}
}
