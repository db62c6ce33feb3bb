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
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Indices of the species within the state vector. The state vector of
// length 5N is the concatenation of the five per-cell concentration
// arrays in this order; nothing may reorder this layout.
const (
	iDON int = iota
	iO2
	iNO3
	iNH3
	iN2
)

const nSpecies = 5

// SpeciesNames lists the species in state-vector order.
var SpeciesNames = []string{"DON", "O2", "NO3", "NH3", "N2"}

// Stoichiometric constants.
const (
	nh3Yield     = 16. / 106. // NH3 released per unit organic matter mineralized
	no3PerDenitr = 4. / 5.    // NO3 consumed per unit denitrification
	n2PerDenitr  = 2. / 5.    // N2 produced per unit denitrification
	o2PerNitri   = 2.         // O2 consumed per unit nitrification
)

// DerivativeResult is the output of one derivative evaluation: the full
// rate-of-change vector, the four domain-integrated reaction totals, and
// the boundary fluxes of all five species.
type DerivativeResult struct {
	Dcdt []float64 // rate of change of the state vector [mmol/m³/d]; length 5N

	// Domain-integrated reaction totals [mmol/m²/d].
	TotalAeroMin  float64
	TotalDenitri  float64
	TotalNitri    float64
	TotalAeration float64

	// Boundary fluxes per species [mmol/m²/d], indexed by the species
	// constants.
	FluxUp   [nSpecies]float64
	FluxDown [nSpecies]float64
}

// Derivative evaluates the rate of change of the state vector: per
// species, the advection–dispersion contribution with that species'
// river boundary concentration, combined with the reaction rates
// through fixed stoichiometry. The time argument is unused because the
// system is autonomous; it is kept so the function has the standard
// right-hand-side signature.
//
// Derivative is pure: it holds no state between calls and independent
// calls may run concurrently as long as the parameter set and grid are
// not mutated.
func Derivative(t float64, state []float64, p *ParameterSet, g *Grid) (*DerivativeResult, error) {
	n := g.N
	if len(state) != nSpecies*n {
		return nil, fmt.Errorf("aquifern: state vector has length %d but the grid requires %d", len(state), nSpecies*n)
	}
	spec := make([][]float64, nSpecies)
	for s := range spec {
		spec[s] = state[s*n : (s+1)*n]
	}

	// The five transport applications are independent of each other and
	// of the kinetics, so they run on their own goroutines.
	var transport [nSpecies]transportResult
	d := p.Dispersion()
	var wg sync.WaitGroup
	wg.Add(nSpecies)
	for s := 0; s < nSpecies; s++ {
		go func(s int) {
			transport[s] = advectDisperse(spec[s], p.riverConc(s), d, p.VAdv, p.Porosity, g)
			wg.Done()
		}(s)
	}
	rates := Rates(spec[iDON], spec[iO2], spec[iNO3], spec[iNH3], p)
	wg.Wait()

	r := &DerivativeResult{Dcdt: make([]float64, nSpecies*n)}
	dcdt := make([][]float64, nSpecies)
	for s := range dcdt {
		dcdt[s] = r.Dcdt[s*n : (s+1)*n]
	}
	for i := 0; i < n; i++ {
		aero := rates.AeroMin[i]
		den := rates.Denitri[i]
		nit := rates.Nitri[i]
		aer := rates.Aeration[i]
		dcdt[iDON][i] = transport[iDON].ddt[i] - aero - den
		dcdt[iO2][i] = transport[iO2].ddt[i] + aer - aero - o2PerNitri*nit
		dcdt[iNO3][i] = transport[iNO3].ddt[i] - no3PerDenitr*den + nit
		dcdt[iNH3][i] = transport[iNH3].ddt[i] + (aero+den)*nh3Yield - nit
		dcdt[iN2][i] = transport[iN2].ddt[i] + n2PerDenitr*den
	}

	w := g.Dx * p.Porosity
	r.TotalAeroMin = floats.Sum(rates.AeroMin) * w
	r.TotalDenitri = floats.Sum(rates.Denitri) * w
	r.TotalNitri = floats.Sum(rates.Nitri) * w
	r.TotalAeration = floats.Sum(rates.Aeration) * w
	for s := 0; s < nSpecies; s++ {
		r.FluxUp[s] = transport[s].fluxUp
		r.FluxDown[s] = transport[s].fluxDown
	}
	return r, nil
}
