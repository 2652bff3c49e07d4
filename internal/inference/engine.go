package inference

import (
	"fmt"

	"fuzzyreg/internal/fuzzy"

	"go.uber.org/zap"
)

// Engine evaluates a fixed rule table against one scalar at a time.
// An Engine is read-only after NewEngine and safe for concurrent use.
type Engine struct {
	inputs  []*fuzzy.Variable
	outputs []*fuzzy.Variable
	rules   []Rule

	inputByName  map[string]*fuzzy.Variable
	outputByName map[string]*fuzzy.Variable

	log *zap.Logger
}

type Option func(*Engine)

// WithLogger makes the engine emit a debug record for every pipeline stage.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine validates the rule table against the declared variables.
// Every failure is a *fuzzy.ConfigurationError.
func NewEngine(inputs, outputs []*fuzzy.Variable, rules []Rule, opts ...Option) (*Engine, error) {
	e := &Engine{
		inputs:       append([]*fuzzy.Variable(nil), inputs...),
		outputs:      append([]*fuzzy.Variable(nil), outputs...),
		rules:        append([]Rule(nil), rules...),
		inputByName:  make(map[string]*fuzzy.Variable, len(inputs)),
		outputByName: make(map[string]*fuzzy.Variable, len(outputs)),
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := index(e.inputByName, inputs, "input"); err != nil {
		return nil, err
	}
	if err := index(e.outputByName, outputs, "output"); err != nil {
		return nil, err
	}

	if len(rules) == 0 {
		return nil, &fuzzy.ConfigurationError{Reason: "rule table is empty"}
	}
	seen := make(map[string]bool, len(rules))
	for i, r := range rules {
		if _, ok := e.inputByName[r.Input]; !ok {
			return nil, &fuzzy.ConfigurationError{Variable: r.Input, Reason: ruleReason(i, "undeclared input variable")}
		}
		if _, ok := e.outputByName[r.Output]; !ok {
			return nil, &fuzzy.ConfigurationError{Variable: r.Output, Reason: ruleReason(i, "undeclared output variable")}
		}
		if seen[r.Input] {
			return nil, &fuzzy.ConfigurationError{Variable: r.Input, Reason: ruleReason(i, "input variable already has a rule")}
		}
		seen[r.Input] = true
	}

	return e, nil
}

func index(dst map[string]*fuzzy.Variable, vars []*fuzzy.Variable, side string) error {
	for _, v := range vars {
		if v == nil {
			return &fuzzy.ConfigurationError{Reason: "nil " + side + " variable"}
		}
		if len(v.Segments) == 0 {
			return &fuzzy.ConfigurationError{Variable: v.Name, Reason: side + " variable has no segments"}
		}
		if _, dup := dst[v.Name]; dup {
			return &fuzzy.ConfigurationError{Variable: v.Name, Reason: "duplicate " + side + " variable"}
		}
		dst[v.Name] = v
	}
	return nil
}

func ruleReason(i int, msg string) string {
	return fmt.Sprintf("rule #%d: %s", i+1, msg)
}

// Infer runs fuzzify, activate, aggregate, select and defuzzify for x.
func (e *Engine) Infer(x float64) Result {
	res := Result{
		Input:     x,
		Degrees:   make(map[string]float64, len(e.rules)),
		Activated: make(map[string]float64, len(e.rules)),
		Rules:     make([]RuleResult, 0, len(e.rules)),
		Scores:    make([]float64, 0, len(e.rules)),
	}

	for _, r := range e.rules {
		degree := fuzzy.Fuzzify(e.inputByName[r.Input], x)
		crisp := fuzzy.Activate(e.outputByName[r.Output], degree)
		score := Score(degree, crisp)

		res.Degrees[r.Input] = degree
		res.Activated[r.Output] = crisp
		res.Scores = append(res.Scores, score)
		res.Rules = append(res.Rules, RuleResult{Rule: r, Degree: degree, Activated: crisp, Score: score})
	}

	e.log.Debug("fuzzified", zap.Float64("input", x), zap.Any("degrees", res.Degrees))
	e.log.Debug("activated", zap.Any("activated", res.Activated))
	e.log.Debug("aggregated", zap.Float64s("scores", res.Scores))

	res.Selected = argmax(res.Scores)
	winner := res.Rules[res.Selected]
	res.SelectedRule = winner.Rule
	res.Output = Defuzzify(e.outputByName[winner.Rule.Output], winner.Activated)

	e.log.Debug("selected",
		zap.Int("index", res.Selected),
		zap.String("input_var", winner.Rule.Input),
		zap.String("output_var", winner.Rule.Output),
		zap.Float64("score", winner.Score),
		zap.Float64("output", res.Output))

	return res
}

// Output is Infer reduced to the crisp result.
func (e *Engine) Output(x float64) float64 {
	return e.Infer(x).Output
}

// Inputs returns a copy of the input variables in declaration order.
func (e *Engine) Inputs() []*fuzzy.Variable { return append([]*fuzzy.Variable(nil), e.inputs...) }

// Outputs returns a copy of the output variables in declaration order.
func (e *Engine) Outputs() []*fuzzy.Variable { return append([]*fuzzy.Variable(nil), e.outputs...) }

// Rules returns a copy of the rule table.
func (e *Engine) Rules() []Rule { return append([]Rule(nil), e.rules...) }
