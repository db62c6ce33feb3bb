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

// ParameterSet holds the physical and biogeochemical constants of the
// model. It is never mutated after construction and is shared read-only
// by all of the calculations within a solve.
type ParameterSet struct {
	RAeroMin float64 `desc:"Aerobic mineralization rate constant" units:"1/d"`
	RDenitr  float64 `desc:"Denitrification rate constant" units:"1/d"`
	RNitri   float64 `desc:"Nitrification rate constant" units:"m3/mmol/d"`
	RAera    float64 `desc:"Aeration rate constant" units:"1/d"`

	VAdv         float64 `desc:"Advective pore-water velocity" units:"m/d"`
	Dispersivity float64 `desc:"Dispersivity" units:"m"`
	Porosity     float64 `desc:"Volume fraction of mobile water" units:"fraction"`

	KO2  float64 `desc:"Half-saturation concentration for oxygen limitation" units:"mmol/m3"`
	KNO3 float64 `desc:"Half-saturation concentration for nitrate limitation" units:"mmol/m3"`

	RiverDON float64 `desc:"River DON concentration" units:"mmol/m3"`
	RiverO2  float64 `desc:"River oxygen concentration" units:"mmol/m3"`
	RiverNO3 float64 `desc:"River nitrate concentration" units:"mmol/m3"`
	RiverNH3 float64 `desc:"River ammonia concentration" units:"mmol/m3"`

	O2Sol float64 `desc:"Oxygen solubility" units:"mmol/m3"`
}

// DefaultParameterSet returns the reference scenario parameter values.
func DefaultParameterSet() *ParameterSet {
	return &ParameterSet{
		RAeroMin:     0.01,
		RDenitr:      0.01,
		RNitri:       1.e-4,
		RAera:        0.1,
		VAdv:         1.,
		Dispersivity: 1.,
		Porosity:     0.35,
		KO2:          1.,
		KNO3:         1.,
		RiverDON:     100.,
		RiverO2:      300.,
		RiverNO3:     50.,
		RiverNH3:     10.,
		O2Sol:        300.,
	}
}

// Dispersion returns the dispersion coefficient [m²/d], the product of
// dispersivity and advective velocity.
func (p *ParameterSet) Dispersion() float64 {
	return p.Dispersivity * p.VAdv
}

// Check validates the parameter set, returning an
// *InvalidParameterError for the first field found outside of its valid
// range. The half-saturation constants must be strictly positive so
// that the rate laws are defined at zero concentration.
func (p *ParameterSet) Check() error {
	positive := []struct {
		name string
		val  float64
	}{
		{"RAeroMin", p.RAeroMin},
		{"RDenitr", p.RDenitr},
		{"RNitri", p.RNitri},
		{"RAera", p.RAera},
		{"VAdv", p.VAdv},
		{"Dispersivity", p.Dispersivity},
		{"KO2", p.KO2},
		{"KNO3", p.KNO3},
		{"O2Sol", p.O2Sol},
	}
	for _, f := range positive {
		if !(f.val > 0) {
			return &InvalidParameterError{Field: f.name, Value: f.val, Reason: "must be strictly positive"}
		}
	}
	if !(p.Porosity > 0) || p.Porosity > 1 {
		return &InvalidParameterError{Field: "Porosity", Value: p.Porosity, Reason: "must be in (0, 1]"}
	}
	nonNegative := []struct {
		name string
		val  float64
	}{
		{"RiverDON", p.RiverDON},
		{"RiverO2", p.RiverO2},
		{"RiverNO3", p.RiverNO3},
		{"RiverNH3", p.RiverNH3},
	}
	for _, f := range nonNegative {
		if !(f.val >= 0) {
			return &InvalidParameterError{Field: f.name, Value: f.val, Reason: "must be non-negative"}
		}
	}
	return nil
}

// riverConc gives the fixed upstream boundary concentration for species
// s. Nitrogen gas does not occur in the river water.
func (p *ParameterSet) riverConc(s int) float64 {
	switch s {
	case iDON:
		return p.RiverDON
	case iO2:
		return p.RiverO2
	case iNO3:
		return p.RiverNO3
	case iNH3:
		return p.RiverNH3
	default:
		return 0
	}
}
