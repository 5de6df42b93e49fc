// Package outputs evaluates user-defined output variables, expressions over
// the named values of a simulation result.
package outputs

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/Knetic/govaluate"
)

// Functions are available to every expression.
var Functions = map[string]govaluate.ExpressionFunction{
	"exp":  unary("exp", math.Exp),
	"log":  unary("log", math.Log),
	"sqrt": unary("sqrt", math.Sqrt),
	"abs":  unary("abs", math.Abs),
	"min": func(args ...interface{}) (interface{}, error) {
		return fold("min", math.Min, args)
	},
	"max": func(args ...interface{}) (interface{}, error) {
		return fold("max", math.Max, args)
	},
}

// ErrNotFinite is returned when an expression evaluates to NaN or ±Inf,
// which JSON cannot carry.
var ErrNotFinite = errors.New("result is not a finite number")

// Outputter holds parsed output expressions in evaluation order. An
// expression may refer to model variables and to other outputs.
type Outputter struct {
	exprs map[string]*govaluate.EvaluableExpression
	order []string
}

// New parses the named expressions and orders them so that every output is
// evaluated after the outputs it refers to.
func New(defs map[string]string) (*Outputter, error) {
	o := &Outputter{exprs: make(map[string]*govaluate.EvaluableExpression, len(defs))}
	for name, src := range defs {
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(src, Functions)
		if err != nil {
			return nil, fmt.Errorf("outputs: %s: %v", name, err)
		}
		o.exprs[name] = expr
	}
	order, err := o.sort()
	if err != nil {
		return nil, err
	}
	o.order = order
	return o, nil
}

// Names returns the output names in evaluation order.
func (o *Outputter) Names() []string {
	return append([]string(nil), o.order...)
}

// Evaluate computes every output from the model variables vars.
func (o *Outputter) Evaluate(vars map[string]float64) (map[string]float64, error) {
	params := make(map[string]interface{}, len(vars)+len(o.order))
	for k, v := range vars {
		params[k] = v
	}
	out := make(map[string]float64, len(o.order))
	for _, name := range o.order {
		expr := o.exprs[name]
		for _, v := range expr.Vars() {
			if _, ok := params[v]; !ok {
				return nil, fmt.Errorf("outputs: %s: undefined variable %q", name, v)
			}
		}
		val, err := expr.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("outputs: %s: %v", name, err)
		}
		f, ok := val.(float64)
		if !ok {
			return nil, fmt.Errorf("outputs: %s: expression gives %T, not a number", name, val)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("outputs: %s: %w (%v)", name, ErrNotFinite, f)
		}
		out[name] = f
		params[name] = f
	}
	return out, nil
}

// sort orders the outputs depth first by their references to other
// outputs, breaking ties by name.
func (o *Outputter) sort() ([]string, error) {
	names := make([]string, 0, len(o.exprs))
	for name := range o.exprs {
		names = append(names, name)
	}
	sort.Strings(names)

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(names))
	order := make([]string, 0, len(names))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("outputs: circular reference %v", append(path, name))
		}
		state[name] = visiting
		deps := o.exprs[name].Vars()
		sort.Strings(deps)
		for _, dep := range deps {
			if _, isOutput := o.exprs[dep]; isOutput {
				if err := visit(dep, append(path, name)); err != nil {
					return err
				}
			}
		}
		state[name] = done
		order = append(order, name)
		return nil
	}
	for _, name := range names {
		if err := visit(name, nil); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func unary(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("got %d arguments for function '%s', but needs 1", len(args), name)
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("function '%s' needs a number, got %T", name, args[0])
		}
		return f(x), nil
	}
}

func fold(name string, f func(a, b float64) float64, args []interface{}) (interface{}, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("function '%s' needs at least 1 argument", name)
	}
	acc, ok := args[0].(float64)
	if !ok {
		return nil, fmt.Errorf("function '%s' needs numbers, got %T", name, args[0])
	}
	for _, a := range args[1:] {
		x, ok := a.(float64)
		if !ok {
			return nil, fmt.Errorf("function '%s' needs numbers, got %T", name, a)
		}
		acc = f(acc, x)
	}
	return acc, nil
}
