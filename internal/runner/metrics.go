package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values of jsonparse_inputs_total.
const (
	resultValid   = "valid"
	resultInvalid = "invalid"
	resultError   = "error"
)

// Metrics are the counters maintained across a batch run.
type Metrics struct {
	inputs   *prometheus.CounterVec
	bytes    prometheus.Counter
	duration prometheus.Histogram
}

// NewMetrics registers the runner metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		inputs: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "jsonparse",
			Name:      "inputs_total",
			Help:      "Inputs processed, by result and failure kind.",
		}, []string{"result", "kind"}),
		bytes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "jsonparse",
			Name:      "input_bytes_total",
			Help:      "Bytes of input handed to the parser.",
		}),
		duration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: "jsonparse",
			Name:      "parse_duration_seconds",
			Help:      "Time spent parsing a single input.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}
}

func (m *Metrics) observe(res Result) {
	switch {
	case res.ReadErr != nil:
		m.inputs.WithLabelValues(resultError, "").Inc()
		return
	case res.ParseErr != nil:
		m.inputs.WithLabelValues(resultInvalid, string(res.Kind)).Inc()
	default:
		m.inputs.WithLabelValues(resultValid, "").Inc()
	}
	m.bytes.Add(float64(res.Bytes))
	m.duration.Observe(res.Duration.Seconds())
}
