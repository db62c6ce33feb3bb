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

// BudgetNames lists the fields returned by Budget: the four
// domain-integrated reaction totals followed by the up- and downstream
// boundary fluxes of each species.
var BudgetNames = func() []string {
	names := []string{"AeroMin", "Denitri", "Nitri", "Aeration"}
	for _, s := range SpeciesNames {
		names = append(names, s+"FluxUp", s+"FluxDown")
	}
	return names
}()

// Budget returns the mass budget of the converged solution as a flat
// named mapping: the domain-integrated reaction totals and the boundary
// fluxes, all in mmol/m²/d. It is a pure projection of the derivative
// result at convergence.
func (s *SteadyState) Budget() map[string]float64 {
	r := s.Result
	b := map[string]float64{
		"AeroMin":  r.TotalAeroMin,
		"Denitri":  r.TotalDenitri,
		"Nitri":    r.TotalNitri,
		"Aeration": r.TotalAeration,
	}
	for i, name := range SpeciesNames {
		b[name+"FluxUp"] = r.FluxUp[i]
		b[name+"FluxDown"] = r.FluxDown[i]
	}
	return b
}

// CheckMassBalance returns, for each species, the closure residual of
// the steady-state mass balance: net boundary inflow plus net reaction
// source [mmol/m²/d]. At a converged steady state every residual
// vanishes to within the solver tolerance times the domain size.
func (s *SteadyState) CheckMassBalance() map[string]float64 {
	r := s.Result
	return map[string]float64{
		"DON": r.FluxUp[iDON] - r.FluxDown[iDON] - r.TotalAeroMin - r.TotalDenitri,
		"O2":  r.FluxUp[iO2] - r.FluxDown[iO2] + r.TotalAeration - r.TotalAeroMin - o2PerNitri*r.TotalNitri,
		"NO3": r.FluxUp[iNO3] - r.FluxDown[iNO3] - no3PerDenitr*r.TotalDenitri + r.TotalNitri,
		"NH3": r.FluxUp[iNH3] - r.FluxDown[iNH3] + nh3Yield*(r.TotalAeroMin+r.TotalDenitri) - r.TotalNitri,
		"N2":  r.FluxUp[iN2] - r.FluxDown[iN2] + n2PerDenitr*r.TotalDenitri,
	}
}
