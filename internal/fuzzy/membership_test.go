package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustVariable(t *testing.T, name string, xy ...float64) *Variable {
	t.Helper()
	v, err := BuildVariable(name, pts(xy...))
	require.NoError(t, err)
	return v
}

func TestFuzzify(t *testing.T) {
	cold := mustVariable(t, "cold", 0, 1, 16, 1, 20, 0, 50, 0)
	comfy := mustVariable(t, "comfy", 16, 0, 20, 1, 22, 1, 26, 0)

	assert.Equal(t, 1.0, Fuzzify(cold, 5))
	assert.InDelta(t, 0.75, Fuzzify(cold, 17), 1e-12)
	assert.InDelta(t, 0.25, Fuzzify(comfy, 17), 1e-12)
	assert.Equal(t, 1.0, Fuzzify(comfy, 21))
	assert.Equal(t, 0.0, Fuzzify(cold, 30))
}

func TestFuzzify_OutOfDomain(t *testing.T) {
	comfy := mustVariable(t, "comfy", 16, 0, 20, 1, 22, 1, 26, 0)

	for _, x := range []float64{-1000, 0, 15.999, 26.001, 1e9} {
		assert.Equal(t, 0.0, Fuzzify(comfy, x), "x=%g", x)
	}
}

func TestFuzzify_BoundaryPicksEarlierSegment(t *testing.T) {
	// A step at x=10: the earlier segment ends at 1, the next starts at 0.
	// BuildVariable cannot express a vertical step, so assemble it directly.
	v := &Variable{
		Name: "step",
		Segments: []Segment{
			NewSegment(Point{X: 0, Mu: 1}, Point{X: 10, Mu: 1}),
			NewSegment(Point{X: 10, Mu: 0}, Point{X: 20, Mu: 0}),
		},
	}
	assert.Equal(t, 1.0, Fuzzify(v, 10))

	// Shared corner of a well-formed variable: both segments agree on the value,
	// which is still the earlier segment's.
	cold := mustVariable(t, "cold", 0, 1, 16, 1, 20, 0, 50, 0)
	assert.Equal(t, cold.Segments[0].At(16), Fuzzify(cold, 16))
	assert.Equal(t, cold.Segments[1].At(20), Fuzzify(cold, 20))
}

func TestFuzzify_ClampsNegative(t *testing.T) {
	v := &Variable{
		Name:     "dip",
		Segments: []Segment{{Slope: 1, Intercept: -5, Left: 0, Right: 10}},
	}
	assert.Equal(t, 0.0, Fuzzify(v, 2))
	assert.Equal(t, 3.0, Fuzzify(v, 8))
}

func TestActivate(t *testing.T) {
	intense := mustVariable(t, "intense", 0, 0, 12, 0, 16, 1, 20, 1)
	moderate := mustVariable(t, "moderate", 6, 0, 10, 1, 12, 1, 16, 0)
	weak := mustVariable(t, "weak", 0, 1, 6, 1, 10, 0, 20, 0)

	assert.InDelta(t, 15.0, Activate(intense, 0.75), 1e-12)
	assert.InDelta(t, 7.0, Activate(moderate, 0.25), 1e-12)
	assert.InDelta(t, 10.0, Activate(weak, 0), 1e-12)
}

func TestActivate_SkipsFlatSegments(t *testing.T) {
	weak := mustVariable(t, "weak", 0, 1, 6, 1, 10, 0, 20, 0)

	// Degree 1 matches the flat [0,6] piece exactly; only the sloped piece may answer.
	x := Activate(weak, 1)
	assert.Equal(t, 6.0, x)
	assert.False(t, weak.Segments[0].Contains(x) && !weak.Segments[1].Contains(x))

	allFlat := mustVariable(t, "plateau", 0, 1, 10, 1, 20, 1)
	assert.Equal(t, 0.0, Activate(allFlat, 1))
}

func TestActivate_NoMatch(t *testing.T) {
	rise := mustVariable(t, "rise", 0, 0, 10, 1)
	assert.Equal(t, 0.0, Activate(rise, 1.5))
	assert.Equal(t, 0.0, Activate(rise, -0.5))
}
