package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefuzzify(t *testing.T) {
	moderate := variable(t, "moderate", 6, 0, 10, 1, 12, 1, 16, 0)

	// The point equal to the activated value never qualifies.
	tests := []struct {
		activated float64
		want      float64
	}{
		{activated: 7, want: 10},
		{activated: 10, want: 12},
		{activated: 11.5, want: 12},
		{activated: 12, want: 0},
		{activated: -3, want: 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Defuzzify(moderate, tt.activated), "activated=%g", tt.activated)
	}
}

func TestDefuzzify_UsesDeclaredOrder(t *testing.T) {
	weak := variable(t, "weak", 0, 1, 6, 1, 10, 0, 20, 0)
	assert.Equal(t, 6.0, Defuzzify(weak, 0))
	assert.Equal(t, 0.0, Defuzzify(weak, 10))
}

func TestScoreAndArgmax(t *testing.T) {
	assert.Equal(t, 0.75, Score(0.75, 15))
	assert.Equal(t, 0.0, Score(1, 0))

	assert.Equal(t, -1, argmax(nil))
	assert.Equal(t, 1, argmax([]float64{0.2, 0.9, 0.9, 0.1}))
	assert.Equal(t, 0, argmax([]float64{0, 0, 0}))
}
