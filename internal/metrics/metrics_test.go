package metrics

import (
	"testing"

	"fuzzyreg/internal/inference"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferenceMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewInferenceMetrics(reg)

	rule := inference.Rule{Input: "cold", Output: "intense"}
	m.Observe(inference.Result{SelectedRule: rule, Output: 16})
	m.Observe(inference.Result{SelectedRule: rule, Output: 0})
	m.BadRequest()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.inferences.WithLabelValues("cold", "intense")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.zeroOutputs))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.badRequests))

	n, err := testutil.GatherAndCount(reg, OutputN)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewInferenceMetrics_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewInferenceMetrics(reg)
	assert.Panics(t, func() { NewInferenceMetrics(reg) })
}
