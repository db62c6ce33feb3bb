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
	"errors"
	"math"
	"testing"
)

func solveDefault(t *testing.T, L float64, N int) *SteadyState {
	t.Helper()
	g, err := NewGrid(L, N)
	if err != nil {
		t.Fatal(err)
	}
	steady, err := Solve(nil, DefaultParameterSet(), g, SolverOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return steady
}

// TestSolve checks the basic solver guarantees on a moderate grid: the
// residual meets the tolerance componentwise, every concentration is
// non-negative, and the mass budget closes per species.
func TestSolve(t *testing.T) {
	steady := solveDefault(t, 100, 50)

	res, err := Derivative(0, steady.C, steady.Params, steady.Grid)
	if err != nil {
		t.Fatal(err)
	}
	for k, f := range res.Dcdt {
		if math.Abs(f) > 1.e-10+1.e-10*math.Abs(steady.C[k]) {
			t.Errorf("residual component %d exceeds tolerance: %g", k, f)
		}
	}
	for k, c := range steady.C {
		if c < 0 {
			t.Errorf("negative concentration %g at component %d", c, k)
		}
	}
	for species, residual := range steady.CheckMassBalance() {
		if math.Abs(residual) > 1.e-6 {
			t.Errorf("%s mass balance does not close: residual %g", species, residual)
		}
	}
	if steady.Stats.Iterations <= 0 || steady.Stats.Evaluations <= steady.Stats.Iterations {
		t.Errorf("implausible statistics: %+v", steady.Stats)
	}
}

// TestSolveReferenceScenario runs the reference case: 500 cells over
// 500 m with the default parameters, starting from the zero state. The
// DON profile must decrease monotonically from the upstream boundary,
// oxygen must stay between zero and its solubility, and all four
// reaction totals must be non-negative.
func TestSolveReferenceScenario(t *testing.T) {
	steady := solveDefault(t, 500, 500)
	n := steady.Grid.N

	don := steady.C[iDON*n : (iDON+1)*n]
	for i := 1; i < n; i++ {
		if don[i] > don[i-1]+1.e-8 {
			t.Fatalf("DON profile not monotone at cell %d: %g > %g", i, don[i], don[i-1])
		}
	}
	o2 := steady.C[iO2*n : (iO2+1)*n]
	for i, c := range o2 {
		if c < -1.e-9 || c > steady.Params.O2Sol+1.e-9 {
			t.Errorf("O2 out of bounds at cell %d: %g", i, c)
		}
	}
	r := steady.Result
	for name, total := range map[string]float64{
		"AeroMin": r.TotalAeroMin, "Denitri": r.TotalDenitri,
		"Nitri": r.TotalNitri, "Aeration": r.TotalAeration,
	} {
		if total < -1.e-12 {
			t.Errorf("%s total is negative: %g", name, total)
		}
	}
}

// TestSolveBoundaryFidelity checks that with weak dispersion the first
// cell approaches the river concentration and the last two cells
// approach each other (the zero-gradient outlet).
func TestSolveBoundaryFidelity(t *testing.T) {
	g, err := NewGrid(100, 200)
	if err != nil {
		t.Fatal(err)
	}
	p := DefaultParameterSet()
	p.Dispersivity = 0.01
	steady, err := Solve(nil, p, g, SolverOptions{})
	if err != nil {
		t.Fatal(err)
	}
	n := g.N
	don := steady.C[iDON*n : (iDON+1)*n]
	if math.Abs(don[0]-p.RiverDON) > 0.05*p.RiverDON {
		t.Errorf("first cell DON %g too far from river value %g", don[0], p.RiverDON)
	}
	if math.Abs(don[n-1]-don[n-2]) > 0.02*don[n-2] {
		t.Errorf("outlet gradient too large: %g vs %g", don[n-1], don[n-2])
	}
}

// TestSolveGridRefinement solves the same domain with N and 2N cells
// and compares the profiles at shared physical locations: each coarse
// cell covers exactly two fine cells.
func TestSolveGridRefinement(t *testing.T) {
	coarse := solveDefault(t, 200, 40)
	fine := solveDefault(t, 200, 80)

	p := DefaultParameterSet()
	scale := []float64{p.RiverDON, p.O2Sol, p.RiverNO3, p.RiverNH3, p.RiverNO3}
	for s := 0; s < nSpecies; s++ {
		cc := coarse.C[s*40 : (s+1)*40]
		cf := fine.C[s*80 : (s+1)*80]
		for i := 0; i < 40; i++ {
			avg := (cf[2*i] + cf[2*i+1]) / 2
			if math.Abs(cc[i]-avg) > 0.05*scale[s] {
				t.Errorf("%s cell %d: coarse %g vs fine %g", SpeciesNames[s], i, cc[i], avg)
			}
		}
	}
}

// An interior steady state must also be a fixed point of the solver:
// restarting from the converged state converges immediately.
func TestSolveRestart(t *testing.T) {
	steady := solveDefault(t, 100, 50)
	again, err := Solve(steady.C, steady.Params, steady.Grid, SolverOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if again.Stats.Iterations != 0 {
		t.Errorf("restart from converged state took %d iterations", again.Stats.Iterations)
	}
}

func TestSolveInvalidParameters(t *testing.T) {
	g, err := NewGrid(100, 50)
	if err != nil {
		t.Fatal(err)
	}
	p := DefaultParameterSet()
	p.KO2 = -1
	_, err = Solve(nil, p, g, SolverOptions{})
	var pe *InvalidParameterError
	if !errors.As(err, &pe) {
		t.Errorf("want InvalidParameterError, got %v", err)
	}
}

func TestSolveNonConvergence(t *testing.T) {
	g, err := NewGrid(100, 50)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Solve(nil, DefaultParameterSet(), g, SolverOptions{MaxIterations: 1})
	var nc *NonConvergenceError
	if !errors.As(err, &nc) {
		t.Fatalf("want NonConvergenceError, got %v", err)
	}
	if nc.Iterations != 1 || nc.Residual <= 0 {
		t.Errorf("unexpected failure detail: %+v", nc)
	}
}

func TestSolveBadInitialLength(t *testing.T) {
	g, err := NewGrid(100, 50)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Solve(make([]float64, 3), DefaultParameterSet(), g, SolverOptions{})
	if err == nil {
		t.Error("want error for wrong initial state length")
	}
}
