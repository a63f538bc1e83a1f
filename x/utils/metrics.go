package utils

import (
	"strconv"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is a decorator that counts processed transactions and measures
// their processing time. Transactions are labeled with the message path,
// the processing phase (check or deliver) and the result code.
type Metrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ ledger.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator. All collectors are registered
// with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		total: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "tx_total",
			Help:      "Number of processed transactions.",
		}, []string{"path", "phase", "code"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ledger",
			Name:      "tx_duration_seconds",
			Help:      "Transaction processing time.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"path", "phase"}),
	}
}

func (m *Metrics) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	path := ledger.GetPath(tx)
	t := prometheus.NewTimer(m.duration.WithLabelValues(path, "check"))
	res, err := next.Check(ctx, store, tx)
	t.ObserveDuration()
	m.total.WithLabelValues(path, "check", strconv.FormatUint(uint64(errors.Code(err)), 10)).Inc()
	return res, err
}

func (m *Metrics) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	path := ledger.GetPath(tx)
	t := prometheus.NewTimer(m.duration.WithLabelValues(path, "deliver"))
	res, err := next.Deliver(ctx, store, tx)
	t.ObserveDuration()
	m.total.WithLabelValues(path, "deliver", strconv.FormatUint(uint64(errors.Code(err)), 10)).Inc()
	return res, err
}
