package inference

// Rule links one input linguistic variable to one output linguistic variable.
type Rule struct {
	Input  string `json:"input" yaml:"input" toml:"input"`
	Output string `json:"output" yaml:"output" toml:"output"`
}

// Score combines a rule's fuzzified degree with its activated crisp value.
// The two operands live on different scales (membership vs output domain);
// the minimum of them is the ranking the regulator has always used.
func Score(degree, crisp float64) float64 {
	return min(degree, crisp)
}

// argmax returns the index of the first maximal score, or -1 for no scores.
func argmax(scores []float64) int {
	best := -1
	for i, s := range scores {
		if best < 0 || s > scores[best] {
			best = i
		}
	}
	return best
}
