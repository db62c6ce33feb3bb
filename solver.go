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
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	defaultTolerance     = 1.e-10
	defaultMaxIterations = 100
	maxStepHalvings      = 25
)

// SolverOptions configures the steady-state solver. The zero value
// selects the defaults: absolute and relative tolerances of 1e-10, 100
// iterations, and no progress logging.
type SolverOptions struct {
	AbsTolerance  float64
	RelTolerance  float64
	MaxIterations int

	// LogWriter receives one status line per iteration. If nil,
	// progress is not logged.
	LogWriter io.Writer
}

// SolverStats reports the work performed during a solve.
type SolverStats struct {
	Iterations   int
	Evaluations  int // number of derivative evaluations
	ResidualNorm float64
}

// SteadyState is a converged solution: the state vector at which the
// derivative vanishes, the derivative evaluation at that state (whose
// totals and boundary fluxes form the mass budget), and solver
// statistics. It is only ever constructed by Solve on success.
type SteadyState struct {
	C      []float64 // converged state vector; length 5N
	Result *DerivativeResult
	Stats  SolverStats

	Grid   *Grid
	Params *ParameterSet
}

// Solve finds a non-negative state vector at which the derivative
// function vanishes to within tolerance, using a damped projected
// Newton iteration: the Jacobian is assembled analytically in
// block-tridiagonal form and factored by block elimination, the step is
// halved until the residual norm decreases, and negative components are
// clamped to zero after every update.
//
// initial may be nil, in which case the solve starts from the zero
// state. Failure is reported as a *NonConvergenceError,
// *NonPhysicalStateError, or *NumericalInstabilityError; no partial
// state is ever returned.
func Solve(initial []float64, p *ParameterSet, g *Grid, opts SolverOptions) (*SteadyState, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}
	n := g.N
	if initial == nil {
		initial = make([]float64, nSpecies*n)
	}
	if len(initial) != nSpecies*n {
		return nil, fmt.Errorf("aquifern: initial state has length %d but the grid requires %d", len(initial), nSpecies*n)
	}
	if opts.AbsTolerance <= 0 {
		opts.AbsTolerance = defaultTolerance
	}
	if opts.RelTolerance <= 0 {
		opts.RelTolerance = defaultTolerance
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = defaultMaxIterations
	}
	logw := opts.LogWriter
	if logw == nil {
		logw = io.Discard
	}

	c := make([]float64, len(initial))
	copy(c, initial)
	project(c)

	var stats SolverStats
	res, err := Derivative(0, c, p, g)
	if err != nil {
		return nil, err
	}
	stats.Evaluations++

	jac := newJacobian(n)
	spec := make([][]float64, nSpecies)
	negRes := make([]float64, nSpecies*n) // -residual, cell-major
	trial := make([]float64, nSpecies*n)
	best := make([]float64, nSpecies*n)

	for iter := 1; iter <= opts.MaxIterations; iter++ {
		if !allFinite(res.Dcdt) {
			return nil, &NumericalInstabilityError{Iteration: iter, Quantity: "residual"}
		}
		if converged(res.Dcdt, c, opts.AbsTolerance, opts.RelTolerance) {
			stats.Iterations = iter - 1
			stats.ResidualNorm = floats.Norm(res.Dcdt, 2)
			return &SteadyState{C: c, Result: res, Stats: stats, Grid: g, Params: p}, nil
		}

		for s := range spec {
			spec[s] = c[s*n : (s+1)*n]
		}
		jac.assemble(spec, p, g)
		toCellMajor(res.Dcdt, negRes, n)
		floats.Scale(-1, negRes)
		step, err := jac.solve(negRes)
		if err != nil || !allFinite(step) {
			return nil, &NumericalInstabilityError{Iteration: iter, Quantity: "Jacobian factorization"}
		}

		// Damped update: halve the step until the residual norm
		// decreases, clamping negative components to zero each try.
		norm0 := floats.Norm(res.Dcdt, 2)
		var tres *DerivativeResult
		alpha := 1.
		accepted := false
		for h := 0; h < maxStepHalvings; h++ {
			for k := range trial {
				s := k / n
				i := k % n
				trial[k] = c[k] + alpha*step[i*nSpecies+s]
			}
			project(trial)
			tres, err = Derivative(0, trial, p, g)
			if err != nil {
				return nil, err
			}
			stats.Evaluations++
			if allFinite(tres.Dcdt) && floats.Norm(tres.Dcdt, 2) < norm0 {
				accepted = true
				break
			}
			copy(best, trial)
			alpha /= 2
		}
		if !accepted {
			if floats.Equal(best, c) {
				return nil, &NonPhysicalStateError{Iteration: iter}
			}
			// Take the most damped step anyway; tres already holds its
			// derivative, and the iteration cap decides whether the
			// solve ultimately fails.
			copy(trial, best)
		}
		copy(c, trial)
		res = tres
		fmt.Fprintf(logw, "iteration %-4d residual=%10.4e damping=%-8.3g evaluations=%d\n",
			iter, floats.Norm(res.Dcdt, 2), alpha, stats.Evaluations)
	}

	return nil, &NonConvergenceError{
		Iterations: opts.MaxIterations,
		Residual:   floats.Norm(res.Dcdt, 2),
	}
}

// project clamps negative concentrations to zero in place.
func project(c []float64) {
	for i, v := range c {
		if v < 0 {
			c[i] = 0
		}
	}
}

// converged reports whether every residual component satisfies the
// mixed absolute-relative tolerance |f_k| ≤ atol + rtol·|c_k|.
func converged(f, c []float64, atol, rtol float64) bool {
	for k, v := range f {
		if math.Abs(v) > atol+rtol*math.Abs(c[k]) {
			return false
		}
	}
	return true
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// toCellMajor copies the species-major vector src (species blocks of N
// cells) into dst in cell-major ordering (cells of nSpecies
// components).
func toCellMajor(src, dst []float64, n int) {
	for s := 0; s < nSpecies; s++ {
		for i := 0; i < n; i++ {
			dst[i*nSpecies+s] = src[s*n+i]
		}
	}
}
