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

import "github.com/ctessum/atmos/advect"

// transportResult holds the result of applying the advection–dispersion
// operator to a single species.
type transportResult struct {
	ddt      []float64 // per-cell rate of change [mmol/m³/d]; length N
	fluxUp   float64   // flux through the upstream domain face [mmol/m²/d]
	fluxDown float64   // flux through the downstream domain face [mmol/m²/d]
}

// advectDisperse computes the advection–dispersion contribution to the
// rate of change of one species with concentrations c [mmol/m³],
// upstream (Dirichlet) boundary concentration cUp, dispersion
// coefficient d [m²/d], advective velocity v [m/d], and volume fraction
// vf.
//
// Fluxes are evaluated at the N+1 cell faces. At the upstream face cUp
// serves as the ghost-cell value; at the downstream face a zero
// concentration gradient is imposed, so only the advective term remains
// and it carries the last cell's concentration out of the domain.
//
// The scheme is conservative: the sum of the per-cell contributions
// times Dx·vf equals fluxUp-fluxDown to round-off.
func advectDisperse(c []float64, cUp, d, v, vf float64, g *Grid) transportResult {
	n := g.N
	flux := make([]float64, n+1)
	// advect.UpwindFlux with unit cell length returns the
	// upwind-selected v·C product, which scaled by vf is the advective
	// face flux.
	flux[0] = vf * (advect.UpwindFlux(v, cUp, c[0], 1) - d*(c[0]-cUp)/g.Dx)
	for i := 1; i < n; i++ {
		flux[i] = vf * (advect.UpwindFlux(v, c[i-1], c[i], 1) - d*(c[i]-c[i-1])/g.Dx)
	}
	flux[n] = vf * advect.UpwindFlux(v, c[n-1], c[n-1], 1)

	r := transportResult{
		ddt:      make([]float64, n),
		fluxUp:   flux[0],
		fluxDown: flux[n],
	}
	for i := 0; i < n; i++ {
		r.ddt[i] = -(flux[i+1] - flux[i]) / (g.Dx * vf)
	}
	return r
}
