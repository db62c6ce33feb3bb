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

// Package aquifern implements a steady-state model of coupled organic
// matter, oxygen, and nitrogen cycling along a one-dimensional aquifer
// flow path.
//
// Five dissolved species (DON, O2, NO3, NH3, and N2) are transported by
// advection and dispersion through a porous medium and coupled by four
// biogeochemical reactions: aerobic mineralization, denitrification,
// nitrification, and aeration. The model computes the steady
// concentration profile of each species, subject to fixed river
// concentrations at the upstream boundary and a zero concentration
// gradient at the downstream boundary, together with a domain-integrated
// mass budget.
//
// Units are meters, days, and mmol m⁻³ throughout.
package aquifern

// Version gives the version number.
const Version = "0.1.0"
