package metrics

import (
	"fuzzyreg/internal/inference"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	InferencesH  = "The total number of inferences, by selected rule"
	InferencesN  = "fuzzyreg_inferences_total"
	OutputH      = "Distribution of defuzzified outputs"
	OutputN      = "fuzzyreg_output"
	BadRequestsH = "The total number of rejected inference requests"
	BadRequestsN = "fuzzyreg_bad_requests_total"
	ZeroOutputsH = "The total number of inferences that produced the 0 sentinel output"
	ZeroOutputsN = "fuzzyreg_zero_outputs_total"
)

type InferenceMetrics struct {
	inferences  *prometheus.CounterVec
	output      prometheus.Histogram
	badRequests prometheus.Counter
	zeroOutputs prometheus.Counter
}

// NewInferenceMetrics registers the collectors on reg.
func NewInferenceMetrics(reg prometheus.Registerer) *InferenceMetrics {
	f := promauto.With(reg)
	return &InferenceMetrics{
		inferences: f.NewCounterVec(prometheus.CounterOpts{
			Name: InferencesN,
			Help: InferencesH,
		}, []string{"input", "output"}),
		output: f.NewHistogram(prometheus.HistogramOpts{
			Name:    OutputN,
			Help:    OutputH,
			Buckets: prometheus.LinearBuckets(0, 2, 11),
		}),
		badRequests: f.NewCounter(prometheus.CounterOpts{
			Name: BadRequestsN,
			Help: BadRequestsH,
		}),
		zeroOutputs: f.NewCounter(prometheus.CounterOpts{
			Name: ZeroOutputsN,
			Help: ZeroOutputsH,
		}),
	}
}

func (m *InferenceMetrics) Observe(res inference.Result) {
	m.inferences.WithLabelValues(res.SelectedRule.Input, res.SelectedRule.Output).Inc()
	m.output.Observe(res.Output)
	if res.Output == 0 {
		m.zeroOutputs.Inc()
	}
}

func (m *InferenceMetrics) BadRequest() {
	m.badRequests.Inc()
}
