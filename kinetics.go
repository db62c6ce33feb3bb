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

// RateSet holds the four biogeochemical reaction rates in every grid
// cell [mmol/m³/d]. Rates are recomputed on every derivative evaluation
// because they depend on the current concentrations.
type RateSet struct {
	AeroMin  []float64 // aerobic mineralization of organic matter
	Denitri  []float64 // denitrification
	Nitri    []float64 // nitrification
	Aeration []float64 // relaxation of oxygen toward its solubility
}

// Rates evaluates the reaction kinetics cell by cell:
//
//   - aerobic mineralization is first order in DON with Michaelis–Menten
//     oxygen limitation;
//   - denitrification is first order in DON, nitrate limited and oxygen
//     inhibited;
//   - nitrification is second order in oxygen and ammonia;
//   - aeration relaxes oxygen toward its solubility at first order.
//
// The half-saturation constants KO2 and KNO3 keep the limitation terms
// defined when concentrations are exactly zero.
func Rates(don, o2, no3, nh3 []float64, p *ParameterSet) RateSet {
	n := len(don)
	r := RateSet{
		AeroMin:  make([]float64, n),
		Denitri:  make([]float64, n),
		Nitri:    make([]float64, n),
		Aeration: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		o2Lim := o2[i] / (o2[i] + p.KO2)
		o2Inhib := p.KO2 / (o2[i] + p.KO2)
		no3Lim := no3[i] / (no3[i] + p.KNO3)
		r.AeroMin[i] = p.RAeroMin * o2Lim * don[i]
		r.Denitri[i] = p.RDenitr * no3Lim * o2Inhib * don[i]
		r.Nitri[i] = p.RNitri * o2[i] * nh3[i]
		r.Aeration[i] = p.RAera * (p.O2Sol - o2[i])
	}
	return r
}
