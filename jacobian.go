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

import "gonum.org/v1/gonum/mat"

// jacobian is the block-tridiagonal Jacobian of the derivative function
// in cell-major ordering: unknown (cell i, species s) maps to component
// i·5+s. Transport couples a cell to its two neighbors one species at a
// time, so the off-diagonal blocks are diagonal matrices; the reactions
// couple the species within a cell, filling the diagonal blocks.
type jacobian struct {
	n                int
	sub, diag, super []*mat.Dense // n blocks of nSpecies×nSpecies; sub[0] and super[n-1] are unused
}

func newJacobian(n int) *jacobian {
	j := &jacobian{
		n:     n,
		sub:   make([]*mat.Dense, n),
		diag:  make([]*mat.Dense, n),
		super: make([]*mat.Dense, n),
	}
	for i := 0; i < n; i++ {
		j.sub[i] = mat.NewDense(nSpecies, nSpecies, nil)
		j.diag[i] = mat.NewDense(nSpecies, nSpecies, nil)
		j.super[i] = mat.NewDense(nSpecies, nSpecies, nil)
	}
	return j
}

// assemble fills the Jacobian blocks analytically at the state given by
// the per-species concentration slices. The advective velocity is
// positive (validated by ParameterSet.Check), so the upwind direction
// is fixed and the transport part is linear with constant coefficients.
func (j *jacobian) assemble(spec [][]float64, p *ParameterSet, g *Grid) {
	n := g.N
	dx := g.Dx
	v := p.VAdv
	d := p.Dispersion()

	// Transport coefficients: ∂(dC[i]/dt)/∂C[i-1], ∂/∂C[i], ∂/∂C[i+1].
	lower := (v + d/dx) / dx
	upper := d / dx / dx
	center := -(v + 2*d/dx) / dx
	centerLast := -(v + d/dx) / dx // no diffusive term at the outlet face

	for i := 0; i < n; i++ {
		j.sub[i].Zero()
		j.diag[i].Zero()
		j.super[i].Zero()
		for s := 0; s < nSpecies; s++ {
			if i > 0 {
				j.sub[i].Set(s, s, lower)
			}
			if i < n-1 {
				j.diag[i].Set(s, s, center)
				j.super[i].Set(s, s, upper)
			} else {
				j.diag[i].Set(s, s, centerLast)
			}
		}

		// Reaction partial derivatives at cell i. N2 enters no rate law.
		don := spec[iDON][i]
		o2 := spec[iO2][i]
		no3 := spec[iNO3][i]
		nh3 := spec[iNH3][i]
		o2Lim := o2 / (o2 + p.KO2)
		o2Inhib := p.KO2 / (o2 + p.KO2)
		no3Lim := no3 / (no3 + p.KNO3)
		dO2Lim := p.KO2 / ((o2 + p.KO2) * (o2 + p.KO2))
		dNO3Lim := p.KNO3 / ((no3 + p.KNO3) * (no3 + p.KNO3))

		dAeroDON := p.RAeroMin * o2Lim
		dAeroO2 := p.RAeroMin * don * dO2Lim
		dDenDON := p.RDenitr * no3Lim * o2Inhib
		dDenO2 := -p.RDenitr * don * no3Lim * dO2Lim
		dDenNO3 := p.RDenitr * don * o2Inhib * dNO3Lim
		dNitO2 := p.RNitri * nh3
		dNitNH3 := p.RNitri * o2
		dAerO2 := -p.RAera

		b := j.diag[i]
		add := func(r, c int, v float64) { b.Set(r, c, b.At(r, c)+v) }

		add(iDON, iDON, -dAeroDON-dDenDON)
		add(iDON, iO2, -dAeroO2-dDenO2)
		add(iDON, iNO3, -dDenNO3)

		add(iO2, iDON, -dAeroDON)
		add(iO2, iO2, dAerO2-dAeroO2-o2PerNitri*dNitO2)
		add(iO2, iNH3, -o2PerNitri*dNitNH3)

		add(iNO3, iDON, -no3PerDenitr*dDenDON)
		add(iNO3, iO2, -no3PerDenitr*dDenO2+dNitO2)
		add(iNO3, iNO3, -no3PerDenitr*dDenNO3)
		add(iNO3, iNH3, dNitNH3)

		add(iNH3, iDON, nh3Yield*(dAeroDON+dDenDON))
		add(iNH3, iO2, nh3Yield*(dAeroO2+dDenO2)-dNitO2)
		add(iNH3, iNO3, nh3Yield*dDenNO3)
		add(iNH3, iNH3, -dNitNH3)

		add(iN2, iDON, n2PerDenitr*dDenDON)
		add(iN2, iO2, n2PerDenitr*dDenO2)
		add(iN2, iNO3, n2PerDenitr*dDenNO3)
	}
}

// solve solves J·x = b by block-Thomas elimination, factoring each
// pivot block with an LU decomposition. b is in cell-major ordering and
// is not modified; the solution is returned in cell-major ordering.
func (j *jacobian) solve(b []float64) ([]float64, error) {
	n := j.n
	factors := make([]*mat.Dense, n)    // Dhat_i⁻¹·super_i
	z := make([]*mat.VecDense, n)       // Dhat_i⁻¹·(b_i - sub_i·z_{i-1})
	rhs := mat.NewVecDense(nSpecies, nil)
	var t mat.Dense
	var tv mat.VecDense
	for i := 0; i < n; i++ {
		dhat := mat.NewDense(nSpecies, nSpecies, nil)
		dhat.Copy(j.diag[i])
		rhs.CopyVec(mat.NewVecDense(nSpecies, b[i*nSpecies:(i+1)*nSpecies]))
		if i > 0 {
			t.Mul(j.sub[i], factors[i-1])
			dhat.Sub(dhat, &t)
			tv.MulVec(j.sub[i], z[i-1])
			rhs.SubVec(rhs, &tv)
		}
		var lu mat.LU
		lu.Factorize(dhat)
		if i < n-1 {
			factors[i] = mat.NewDense(nSpecies, nSpecies, nil)
			if err := lu.SolveTo(factors[i], false, j.super[i]); err != nil {
				if _, ok := err.(mat.Condition); !ok {
					return nil, err
				}
			}
		}
		z[i] = mat.NewVecDense(nSpecies, nil)
		if err := lu.SolveVecTo(z[i], false, rhs); err != nil {
			if _, ok := err.(mat.Condition); !ok {
				return nil, err
			}
		}
	}

	x := make([]float64, n*nSpecies)
	xi := mat.NewVecDense(nSpecies, x[(n-1)*nSpecies:])
	xi.CopyVec(z[n-1])
	for i := n - 2; i >= 0; i-- {
		xi = mat.NewVecDense(nSpecies, x[i*nSpecies:(i+1)*nSpecies])
		tv.MulVec(factors[i], mat.NewVecDense(nSpecies, x[(i+1)*nSpecies:(i+2)*nSpecies]))
		xi.SubVec(z[i], &tv)
	}
	return x, nil
}
