package fuzzy

import "math"

// Variable is a linguistic variable: a named piecewise-linear membership
// function. It must not be modified after BuildVariable returns.
type Variable struct {
	Name     string    `json:"name"`
	Points   []Point   `json:"points"`
	Segments []Segment `json:"segments"`
}

// BuildVariable validates the corner points and builds one segment per
// consecutive pair. Points must have strictly increasing X.
func BuildVariable(name string, points []Point) (*Variable, error) {
	if name == "" {
		return nil, configErrorf("", "variable name is empty")
	}
	if len(points) < 2 {
		return nil, configErrorf(name, "need at least 2 points, got %d", len(points))
	}

	for i, p := range points {
		if !finite(p.X) || !finite(p.Mu) {
			return nil, configErrorf(name, "point %d (%g, %g) is not finite", i, p.X, p.Mu)
		}
		if i > 0 && p.X <= points[i-1].X {
			return nil, configErrorf(name, "domain values must be strictly increasing: point %d (%g) after %g", i, p.X, points[i-1].X)
		}
	}

	v := &Variable{
		Name:     name,
		Points:   append([]Point(nil), points...),
		Segments: make([]Segment, 0, len(points)-1),
	}
	for i := 1; i < len(points); i++ {
		v.Segments = append(v.Segments, NewSegment(points[i-1], points[i]))
	}
	return v, nil
}

// Domain returns the interval covered by the variable's segments,
// or (0, 0) for a variable without segments.
func (v *Variable) Domain() (left, right float64) {
	if len(v.Segments) == 0 {
		return 0, 0
	}
	return v.Segments[0].Left, v.Segments[len(v.Segments)-1].Right
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
