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

import "fmt"

// InvalidGridError indicates that a grid was requested with a
// non-positive domain length or cell count.
type InvalidGridError struct {
	L float64
	N int
}

func (e *InvalidGridError) Error() string {
	return fmt.Sprintf("aquifern: invalid grid L=%g m, N=%d; both must be positive", e.L, e.N)
}

// InvalidParameterError indicates that a parameter value is outside of
// its valid range.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("aquifern: parameter %s=%g is invalid: %s", e.Field, e.Value, e.Reason)
}

// NonConvergenceError indicates that the steady-state solver exhausted
// its iteration budget before meeting the residual tolerance.
type NonConvergenceError struct {
	Iterations int
	Residual   float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("aquifern: no convergence after %d iterations; residual norm %g", e.Iterations, e.Residual)
}

// NonPhysicalStateError indicates that the solver could not keep an
// iterate non-negative without stalling.
type NonPhysicalStateError struct {
	Iteration int
}

func (e *NonPhysicalStateError) Error() string {
	return fmt.Sprintf("aquifern: iteration %d: iterate cannot be kept non-negative without stalling", e.Iteration)
}

// NumericalInstabilityError indicates a NaN or infinity in the residual
// or Jacobian, or a singular Jacobian factorization.
type NumericalInstabilityError struct {
	Iteration int
	Quantity  string
}

func (e *NumericalInstabilityError) Error() string {
	return fmt.Sprintf("aquifern: iteration %d: numerical instability in %s", e.Iteration, e.Quantity)
}
