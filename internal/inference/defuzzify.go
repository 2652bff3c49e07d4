package inference

import "fuzzyreg/internal/fuzzy"

// Defuzzify returns the first corner point of v, in declared order, with full
// membership and a domain value strictly greater than activated. 0 if none.
func Defuzzify(v *fuzzy.Variable, activated float64) float64 {
	for _, p := range v.Points {
		if p.Mu == 1 && p.X > activated {
			return p.X
		}
	}
	return 0.0
}
