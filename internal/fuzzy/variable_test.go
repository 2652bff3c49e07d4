package fuzzy

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pts(xy ...float64) []Point {
	out := make([]Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, Point{X: xy[i], Mu: xy[i+1]})
	}
	return out
}

func TestBuildVariable_Contiguous(t *testing.T) {
	v, err := BuildVariable("comfortable", pts(16, 0, 20, 1, 22, 1, 26, 0))
	require.NoError(t, err)

	require.Len(t, v.Segments, 3)
	for i := 1; i < len(v.Segments); i++ {
		assert.Equal(t, v.Segments[i-1].Right, v.Segments[i].Left)
	}
	left, right := v.Domain()
	assert.Equal(t, 16.0, left)
	assert.Equal(t, 26.0, right)
	assert.True(t, v.Segments[1].Flat)
	assert.Equal(t, 1.0, v.Segments[1].Intercept)
}

func TestVariable_Domain_Literal(t *testing.T) {
	v := &Variable{
		Name:     "step",
		Segments: []Segment{{Left: 0, Right: 10, Flat: true, Intercept: 1}, {Left: 10, Right: 20, Flat: true}},
	}
	left, right := v.Domain()
	assert.Equal(t, 0.0, left)
	assert.Equal(t, 20.0, right)

	left, right = (&Variable{Name: "empty"}).Domain()
	assert.Equal(t, 0.0, left)
	assert.Equal(t, 0.0, right)
}

func TestBuildVariable_CopiesPoints(t *testing.T) {
	in := pts(0, 0, 10, 1)
	v, err := BuildVariable("rise", in)
	require.NoError(t, err)

	in[1].X = 99
	assert.Equal(t, 10.0, v.Points[1].X)
}

func TestBuildVariable_Errors(t *testing.T) {
	tests := []struct {
		name   string
		varNm  string
		points []Point
	}{
		{name: "no points", varNm: "v", points: nil},
		{name: "single point", varNm: "v", points: pts(0, 1)},
		{name: "equal domain values", varNm: "v", points: pts(0, 1, 0, 0)},
		{name: "decreasing domain", varNm: "v", points: pts(0, 1, 10, 0, 5, 0)},
		{name: "NaN membership", varNm: "v", points: []Point{{X: 0, Mu: math.NaN()}, {X: 1, Mu: 0}}},
		{name: "infinite domain", varNm: "v", points: []Point{{X: 0, Mu: 0}, {X: math.Inf(1), Mu: 1}}},
		{name: "empty name", varNm: "", points: pts(0, 0, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := BuildVariable(tt.varNm, tt.points)
			assert.Nil(t, v)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.varNm, cfgErr.Variable)
		})
	}
}
