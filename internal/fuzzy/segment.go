package fuzzy

import "fmt"

// Point is a corner of a membership function: a domain value and its membership.
type Point struct {
	X  float64 `json:"x"`
	Mu float64 `json:"mu"`
}

// Segment is the line y = Slope*x + Intercept restricted to [Left, Right].
type Segment struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	Left      float64 `json:"left"`
	Right     float64 `json:"right"`

	// Flat segments have no inverse and are skipped by Activate.
	Flat bool `json:"flat"`
}

// NewSegment builds the segment through p1 and p2. Callers guarantee p1.X < p2.X.
func NewSegment(p1, p2 Point) Segment {
	s := Segment{Left: p1.X, Right: p2.X}
	if p1.Mu == p2.Mu {
		s.Intercept = p2.Mu
		s.Flat = true
		return s
	}
	s.Slope = (p2.Mu - p1.Mu) / (p2.X - p1.X)
	s.Intercept = p2.Mu - s.Slope*p2.X
	return s
}

// Contains reports whether x lies in the closed interval [Left, Right].
func (s Segment) Contains(x float64) bool {
	return s.Left <= x && x <= s.Right
}

// At evaluates the line at x without any domain check.
func (s Segment) At(x float64) float64 {
	return s.Slope*x + s.Intercept
}

// Invert returns the x at which the line reaches y. ok is false for flat
// segments and for solutions outside [Left, Right].
func (s Segment) Invert(y float64) (x float64, ok bool) {
	if s.Flat {
		return 0, false
	}
	x = (y - s.Intercept) / s.Slope
	return x, s.Contains(x)
}

func (s Segment) String() string {
	return fmt.Sprintf("y = %g*x + %g; x ∈ [%g, %g]", s.Slope, s.Intercept, s.Left, s.Right)
}
