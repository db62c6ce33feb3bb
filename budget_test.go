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
)

func TestBudget(t *testing.T) {
	steady := solveDefault(t, 100, 50)
	b := steady.Budget()
	if len(b) != len(BudgetNames) {
		t.Fatalf("want %d budget fields, got %d", len(BudgetNames), len(b))
	}
	for _, name := range BudgetNames {
		if _, ok := b[name]; !ok {
			t.Errorf("budget field %s missing", name)
		}
	}
	r := steady.Result
	if b["AeroMin"] != r.TotalAeroMin || b["Denitri"] != r.TotalDenitri {
		t.Error("budget totals do not match the derivative result")
	}
	for s, name := range SpeciesNames {
		if b[name+"FluxUp"] != r.FluxUp[s] || b[name+"FluxDown"] != r.FluxDown[s] {
			t.Errorf("%s boundary fluxes do not match the derivative result", name)
		}
	}
}

// The nitrogen-species closure residuals are linear combinations of the
// budget fields; on a synthetic result with consistent stoichiometry
// they must vanish exactly.
func TestCheckMassBalanceSynthetic(t *testing.T) {
	r := &DerivativeResult{
		TotalAeroMin:  3,
		TotalDenitri:  2,
		TotalNitri:    0.5,
		TotalAeration: 4,
	}
	r.FluxUp = [nSpecies]float64{5, 0, 2.1, 0, 0}
	r.FluxDown = [nSpecies]float64{
		iDON: 5 - 3 - 2,
		iO2:  4 - 3 - o2PerNitri*0.5,
		iNO3: 2.1 - no3PerDenitr*2 + 0.5,
		iNH3: nh3Yield*(3+2) - 0.5,
		iN2:  n2PerDenitr * 2,
	}
	s := &SteadyState{Result: r}
	for species, residual := range s.CheckMassBalance() {
		if math.Abs(residual) > 1.e-14 {
			t.Errorf("%s: want zero residual, got %g", species, residual)
		}
	}
}

func TestProfiles(t *testing.T) {
	steady := solveDefault(t, 100, 50)
	profiles := steady.Profiles()
	if len(profiles) != nSpecies+1 {
		t.Fatalf("want %d profiles, got %d", nSpecies+1, len(profiles))
	}
	x := profiles["x"]
	if x.Shape[0] != steady.Grid.N {
		t.Fatalf("x length: want %d, got %d", steady.Grid.N, x.Shape[0])
	}
	if different(x.Get(0), steady.Grid.Dx/2, 1.e-12) {
		t.Errorf("first cell center: want %g, got %g", steady.Grid.Dx/2, x.Get(0))
	}
	don := profiles["DON"]
	if don.Get(0) != steady.C[iDON*steady.Grid.N] {
		t.Error("DON profile does not match state vector")
	}
}

func TestSummarizeProfiles(t *testing.T) {
	steady := solveDefault(t, 100, 50)
	summary := steady.SummarizeProfiles()
	n := steady.Grid.N
	for s, name := range SpeciesNames {
		ps := summary[name]
		if ps.Min > ps.Mean || ps.Mean > ps.Max {
			t.Errorf("%s: inconsistent summary %+v", name, ps)
		}
		var max float64
		for _, c := range steady.C[s*n : (s+1)*n] {
			max = math.Max(max, c)
		}
		if different(ps.Max, max, 1.e-12) {
			t.Errorf("%s max: want %g, got %g", name, max, ps.Max)
		}
	}
}
