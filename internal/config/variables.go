package config

import (
	"fmt"
	"sort"

	"fuzzyreg/internal/fuzzy"
	"fuzzyreg/internal/inference"

	"gopkg.in/yaml.v3"
)

// VariableDef is a variable as written in a config file: a name and its
// [domain, membership] corner points.
type VariableDef struct {
	Name   string
	Points []fuzzy.Point
}

// VariableSet keeps variables in file order.
type VariableSet []VariableDef

// RuleTable keeps rules in file order.
type RuleTable []inference.Rule

// UnmarshalYAML accepts a mapping of name -> [[x, mu], ...].
func (s *VariableSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: variables must be a mapping of name to points", node.Line)
	}
	out := make(VariableSet, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var raw [][]float64
		if err := node.Content[i+1].Decode(&raw); err != nil {
			return fmt.Errorf("variable %q: %w", name, err)
		}
		def, err := newVariableDef(name, raw)
		if err != nil {
			return err
		}
		out = append(out, def)
	}
	*s = out
	return nil
}

// UnmarshalYAML accepts either a mapping input -> output, whose order is the
// rule order, or a list of {input, output} entries.
func (t *RuleTable) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(RuleTable, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, v := node.Content[i], node.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: rule %q must map to an output variable name", v.Line, k.Value)
			}
			out = append(out, inference.Rule{Input: k.Value, Output: v.Value})
		}
		*t = out
	case yaml.SequenceNode:
		var rules []inference.Rule
		if err := node.Decode(&rules); err != nil {
			return err
		}
		*t = rules
	default:
		return fmt.Errorf("line %d: rules must be a mapping or a list", node.Line)
	}
	return nil
}

func newVariableDef(name string, raw [][]float64) (VariableDef, error) {
	def := VariableDef{Name: name, Points: make([]fuzzy.Point, 0, len(raw))}
	for i, p := range raw {
		if len(p) != 2 {
			return VariableDef{}, &fuzzy.ConfigurationError{
				Variable: name,
				Reason:   fmt.Sprintf("point %d has %d values, want [domain, membership]", i, len(p)),
			}
		}
		def.Points = append(def.Points, fuzzy.Point{X: p[0], Mu: p[1]})
	}
	return def, nil
}

// variableSetFromMap converts decoded TOML tables, where numbers arrive as
// int64 or float64, sorting variables by name.
func variableSetFromMap(m map[string][][]any) (VariableSet, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(VariableSet, 0, len(names))
	for _, name := range names {
		raw := make([][]float64, 0, len(m[name]))
		for i, point := range m[name] {
			row := make([]float64, 0, len(point))
			for _, n := range point {
				f, ok := toFloat(n)
				if !ok {
					return nil, &fuzzy.ConfigurationError{
						Variable: name,
						Reason:   fmt.Sprintf("point %d: %v is not a number", i, n),
					}
				}
				row = append(row, f)
			}
			raw = append(raw, row)
		}
		def, err := newVariableDef(name, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, def)
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func (s VariableSet) build() ([]*fuzzy.Variable, error) {
	vars := make([]*fuzzy.Variable, 0, len(s))
	for _, def := range s {
		v, err := fuzzy.BuildVariable(def.Name, def.Points)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return vars, nil
}
