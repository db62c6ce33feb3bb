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

package aquifernutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/cenkalti/backoff"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/aquifern"
)

// maxSolveRetries is the number of times a non-converging solve is
// retried with a doubled iteration budget.
const maxSolveRetries = 3

// solveFromConfig builds the grid, parameters, and solver options from
// the configuration and solves for the steady state. Non-convergence is
// treated as recoverable: the solve is retried with a doubled iteration
// budget. All other failures abort immediately.
func solveFromConfig(cfg *viper.Viper) (*aquifern.SteadyState, error) {
	grid, err := GridFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	params, err := ParametersFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	opts := SolverOptionsFromConfig(cfg)
	if Log.IsLevelEnabled(logrus.DebugLevel) {
		opts.LogWriter = Log.Writer()
	}

	var steady *aquifern.SteadyState
	operation := func() error {
		s, err := aquifern.Solve(nil, params, grid, opts)
		if err != nil {
			var nc *aquifern.NonConvergenceError
			if errors.As(err, &nc) {
				Log.WithFields(logrus.Fields{
					"iterations": nc.Iterations,
					"residual":   nc.Residual,
				}).Warn("solver did not converge; retrying with a larger iteration budget")
				opts.MaxIterations *= 2
				return err
			}
			return backoff.Permanent(err)
		}
		steady = s
		return nil
	}
	b := backoff.WithMaxRetries(&backoff.ZeroBackOff{}, maxSolveRetries)
	if err := backoff.Retry(operation, b); err != nil {
		return nil, err
	}
	Log.WithFields(logrus.Fields{
		"iterations":  steady.Stats.Iterations,
		"evaluations": steady.Stats.Evaluations,
		"residual":    steady.Stats.ResidualNorm,
	}).Info("solver converged")
	return steady, nil
}

// Run solves for the steady state, writes the concentration profiles to
// the configured output file as CSV, and prints the mass budget and any
// configured derived output variables to w.
func Run(w io.Writer, cfg *viper.Viper) error {
	steady, err := solveFromConfig(cfg)
	if err != nil {
		return err
	}

	outputFile, err := checkOutputFile(cfg.GetString("OutputFile"))
	if err != nil {
		return err
	}
	if err := writeProfiles(outputFile, steady); err != nil {
		return err
	}
	Log.WithField("file", outputFile).Info("wrote concentration profiles")

	return printBudget(w, steady, cfg)
}

// writeProfiles writes the converged concentration profiles as CSV,
// one row per grid cell.
func writeProfiles(filename string, steady *aquifern.SteadyState) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("aquifern: creating output file: %v", err)
	}
	defer f.Close()

	profiles := steady.Profiles()
	cw := csv.NewWriter(f)
	if err := cw.Write(append([]string{"x"}, aquifern.SpeciesNames...)); err != nil {
		return err
	}
	n := steady.Grid.N
	row := make([]string, 1+len(aquifern.SpeciesNames))
	for i := 0; i < n; i++ {
		row[0] = strconv.FormatFloat(profiles["x"].Elements[i], 'g', -1, 64)
		for j, name := range aquifern.SpeciesNames {
			row[j+1] = strconv.FormatFloat(profiles[name].Elements[i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// printBudget writes the budget fields, the per-species mass balance
// closure residuals, and any configured derived output variables to w
// as an aligned table.
func printBudget(w io.Writer, steady *aquifern.SteadyState, cfg *viper.Viper) error {
	budget := steady.Budget()
	tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	fmt.Fprintln(tw, "variable\tvalue [mmol/m2/d]")
	for _, name := range aquifern.BudgetNames {
		fmt.Fprintf(tw, "%s\t%.6g\n", name, budget[name])
	}

	balance := steady.CheckMassBalance()
	species := make([]string, 0, len(balance))
	for s := range balance {
		species = append(species, s)
	}
	sort.Strings(species)
	for _, s := range species {
		fmt.Fprintf(tw, "%sBalance\t%.3g\n", s, balance[s])
	}

	outputVars := checkOutputVars(GetStringMapString("OutputVariables", cfg))
	if len(outputVars) > 0 {
		o, err := aquifern.NewOutputter(outputVars, nil)
		if err != nil {
			return err
		}
		derived, err := o.Output(steady)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(derived))
		for name := range derived {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(tw, "%s\t%.6g\n", name, derived[name])
		}
	}
	return tw.Flush()
}
