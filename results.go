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
	"github.com/GaryBoone/GoStats/stats"
	"github.com/ctessum/sparse"
)

// Profiles returns the converged concentration profiles as named
// per-cell arrays aligned with the grid cell centers, for plotting or
// comparison against field data. The "x" entry holds the cell center
// positions [m].
func (s *SteadyState) Profiles() map[string]*sparse.DenseArray {
	n := s.Grid.N
	out := make(map[string]*sparse.DenseArray, nSpecies+1)
	x := sparse.ZerosDense(n)
	copy(x.Elements, s.Grid.X)
	out["x"] = x
	for sp, name := range SpeciesNames {
		a := sparse.ZerosDense(n)
		copy(a.Elements, s.C[sp*n:(sp+1)*n])
		out[name] = a
	}
	return out
}

// ProfileStats summarizes one species' concentration profile
// [mmol/m³].
type ProfileStats struct {
	Min, Max, Mean, StdDev float64
}

// SummarizeProfiles computes summary statistics of each species'
// converged profile.
func (s *SteadyState) SummarizeProfiles() map[string]ProfileStats {
	n := s.Grid.N
	out := make(map[string]ProfileStats, nSpecies)
	for sp, name := range SpeciesNames {
		var d stats.Stats
		d.UpdateArray(s.C[sp*n : (sp+1)*n])
		out[name] = ProfileStats{
			Min:    d.Min(),
			Max:    d.Max(),
			Mean:   d.Mean(),
			StdDev: d.PopulationStandardDeviation(),
		}
	}
	return out
}
