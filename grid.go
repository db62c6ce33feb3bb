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

// Grid is the one-dimensional finite-volume discretization of the flow
// path. The domain [0, L] is divided into N cells of equal width Dx.
// A Grid is immutable after construction and may be shared among
// concurrent solves.
type Grid struct {
	L  float64 // domain length [m]
	N  int     // number of cells
	Dx float64 // cell width [m]

	X     []float64 // cell center positions [m]; length N
	XFace []float64 // cell face positions [m]; length N+1
}

// NewGrid creates a grid for a domain of length L [m] divided into N
// cells.
func NewGrid(L float64, N int) (*Grid, error) {
	if L <= 0 || N <= 0 {
		return nil, &InvalidGridError{L: L, N: N}
	}
	g := &Grid{
		L:     L,
		N:     N,
		Dx:    L / float64(N),
		X:     make([]float64, N),
		XFace: make([]float64, N+1),
	}
	for i := 0; i < N; i++ {
		g.XFace[i] = float64(i) * g.Dx
		g.X[i] = (float64(i) + 0.5) * g.Dx
	}
	g.XFace[N] = L
	return g, nil
}
