/*
Copyright © 2026 the AquiferN authors.
This file is part of AquiferN.

AquiferN is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

AquiferN is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with AquiferN.  If not, see <http://www.gnu.org/licenses/>.
*/

package aquifern

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
	"gonum.org/v1/gonum/floats"
)

// Outputter computes named output values from a converged steady state.
// Each output variable is defined by an expression over the budget
// fields (for example "Denitri * 0.4") and the species profile arrays
// (for example "sum(DON)"), optionally using user-supplied expression
// functions.
type Outputter struct {
	outputVariables map[string]string
	outputFunctions map[string]govaluate.ExpressionFunction
}

// NewOutputter initializes an Outputter and adds a set of default
// output functions:
//
// 'exp(x)' applies the exponential function e^x.
//
// 'sum(x)' sums a profile variable across all grid cells.
//
// The expressions are compiled eagerly so that malformed configuration
// fails before any solve runs.
func NewOutputter(outputVariables map[string]string, outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	defaultOutputFuncs := map[string]govaluate.ExpressionFunction{
		"exp": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("aquifern: got %d arguments for function 'exp', but needs 1", len(arg))
			}
			return (float64)(math.Exp(arg[0].(float64))), nil
		},
		"sum": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("aquifern: got %d arguments for function 'sum', but needs 1", len(arg))
			}
			return (float64)(floats.Sum(arg[0].([]float64))), nil
		},
	}
	for key, val := range outputFunctions {
		defaultOutputFuncs[key] = val
	}
	o := &Outputter{
		outputVariables: outputVariables,
		outputFunctions: defaultOutputFuncs,
	}
	for key, expr := range o.outputVariables {
		if _, err := govaluate.NewEvaluableExpressionWithFunctions(expr, o.outputFunctions); err != nil {
			return nil, fmt.Errorf("aquifern: output variable %s: %v", key, err)
		}
	}
	return o, nil
}

// Output evaluates all of the output variable expressions for the given
// steady state. The available expression variables are the budget
// fields and the per-species profile arrays.
func (o *Outputter) Output(s *SteadyState) (map[string]float64, error) {
	params := make(map[string]interface{})
	for k, v := range s.Budget() {
		params[k] = v
	}
	n := s.Grid.N
	for sp, name := range SpeciesNames {
		params[name] = s.C[sp*n : (sp+1)*n]
	}

	out := make(map[string]float64, len(o.outputVariables))
	for key, exprStr := range o.outputVariables {
		expression, err := govaluate.NewEvaluableExpressionWithFunctions(exprStr, o.outputFunctions)
		if err != nil {
			return nil, fmt.Errorf("aquifern: output variable %s: %v", key, err)
		}
		result, err := expression.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("aquifern: evaluating output variable %s: %v", key, err)
		}
		v, ok := result.(float64)
		if !ok {
			return nil, fmt.Errorf("aquifern: output variable %s does not evaluate to a number", key)
		}
		out[key] = v
	}
	return out, nil
}
