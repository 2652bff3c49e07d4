package fuzzy

// Fuzzify returns the membership degree of x. The first segment containing x
// wins, so a shared boundary is evaluated on the earlier segment. Inputs
// outside the variable's domain yield exactly 0.
func Fuzzify(v *Variable, x float64) float64 {
	for _, s := range v.Segments {
		if s.Contains(x) {
			return max(0, s.At(x))
		}
	}
	return 0.0
}

// Activate maps a membership degree back to a domain value using the first
// sloped segment whose inverse falls inside it. Flat segments are never
// inverted. Returns 0 when no segment qualifies.
func Activate(v *Variable, degree float64) float64 {
	for _, s := range v.Segments {
		if x, ok := s.Invert(degree); ok {
			return x
		}
	}
	return 0.0
}
