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
	"math"
	"testing"

	"github.com/Knetic/govaluate"
)

func TestOutput(t *testing.T) {
	steady := solveDefault(t, 100, 50)
	o, err := NewOutputter(map[string]string{
		"removedN":  "Denitri * 0.4",
		"totalDON":  "sum(DON)",
		"expDemand": "exp(-1 * AeroMin)",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	out, err := o.Output(steady)
	if err != nil {
		t.Fatal(err)
	}

	if want := steady.Result.TotalDenitri * 0.4; different(out["removedN"], want, 1.e-12) {
		t.Errorf("removedN: want %g, got %g", want, out["removedN"])
	}
	var sum float64
	for _, c := range steady.C[iDON*steady.Grid.N : (iDON+1)*steady.Grid.N] {
		sum += c
	}
	if different(out["totalDON"], sum, 1.e-9) {
		t.Errorf("totalDON: want %g, got %g", sum, out["totalDON"])
	}
	if want := math.Exp(-steady.Result.TotalAeroMin); different(out["expDemand"], want, 1.e-12) {
		t.Errorf("expDemand: want %g, got %g", want, out["expDemand"])
	}
}

func TestOutputCustomFunction(t *testing.T) {
	steady := solveDefault(t, 100, 50)
	o, err := NewOutputter(map[string]string{"doubled": "twice(Nitri)"},
		map[string]govaluate.ExpressionFunction{
			"twice": func(arg ...interface{}) (interface{}, error) {
				return arg[0].(float64) * 2, nil
			},
		})
	if err != nil {
		t.Fatal(err)
	}
	out, err := o.Output(steady)
	if err != nil {
		t.Fatal(err)
	}
	if want := steady.Result.TotalNitri * 2; different(out["doubled"], want, 1.e-12) {
		t.Errorf("doubled: want %g, got %g", want, out["doubled"])
	}
}

// Malformed expressions must fail at construction, before any solve.
func TestOutputterBadExpression(t *testing.T) {
	if _, err := NewOutputter(map[string]string{"bad": "Denitri *"}, nil); err == nil {
		t.Error("want error for malformed expression")
	}
}

func TestOutputUnknownVariable(t *testing.T) {
	steady := solveDefault(t, 100, 50)
	o, err := NewOutputter(map[string]string{"bad": "NoSuchField * 2"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := o.Output(steady); err == nil {
		t.Error("want error for unknown expression variable")
	}
}
