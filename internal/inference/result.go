package inference

// RuleResult holds the intermediate values computed for one rule.
type RuleResult struct {
	Rule      Rule    `json:"rule"`
	Degree    float64 `json:"degree"`
	Activated float64 `json:"activated"`
	Score     float64 `json:"score"`
}

// Result is everything one Infer call computed. It is owned by the caller.
type Result struct {
	Input float64 `json:"input"`

	// Degrees is keyed by input variable, Activated by output variable.
	Degrees   map[string]float64 `json:"degrees"`
	Activated map[string]float64 `json:"activated"`

	// Rules and Scores are in rule table order.
	Rules  []RuleResult `json:"rules"`
	Scores []float64    `json:"scores"`

	Selected     int     `json:"selected"`
	SelectedRule Rule    `json:"selected_rule"`
	Output       float64 `json:"output"`
}
