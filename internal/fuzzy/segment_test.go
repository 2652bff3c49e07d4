package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSegment_Flat(t *testing.T) {
	s := NewSegment(Point{X: 0, Mu: 1}, Point{X: 16, Mu: 1})

	assert.True(t, s.Flat)
	assert.Equal(t, 0.0, s.Slope)
	assert.Equal(t, 1.0, s.Intercept)
	for _, x := range []float64{0, 3.5, 8, 16} {
		assert.Equal(t, 1.0, s.At(x))
	}
}

func TestNewSegment_Sloped(t *testing.T) {
	s := NewSegment(Point{X: 16, Mu: 1}, Point{X: 20, Mu: 0})

	assert.False(t, s.Flat)
	assert.Equal(t, -0.25, s.Slope)
	assert.Equal(t, 5.0, s.Intercept)
	assert.Equal(t, 16.0, s.Left)
	assert.Equal(t, 20.0, s.Right)
	assert.InDelta(t, 0.75, s.At(17), 1e-12)
}

func TestSegment_Invert(t *testing.T) {
	rising := NewSegment(Point{X: 12, Mu: 0}, Point{X: 16, Mu: 1})

	x, ok := rising.Invert(0.75)
	assert.True(t, ok)
	assert.InDelta(t, 15.0, x, 1e-12)

	_, ok = rising.Invert(2)
	assert.False(t, ok, "solution 20 lies outside [12, 16]")

	flat := NewSegment(Point{X: 0, Mu: 0}, Point{X: 12, Mu: 0})
	_, ok = flat.Invert(0)
	assert.False(t, ok, "flat segments are not invertible even when the value matches")
}

func TestSegment_String(t *testing.T) {
	s := NewSegment(Point{X: 16, Mu: 0}, Point{X: 20, Mu: 1})
	assert.Equal(t, "y = 0.25*x + -4; x ∈ [16, 20]", s.String())
}
