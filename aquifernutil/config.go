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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/aquifern"
	"github.com/spf13/cast"
)

// GridFromConfig builds the computational grid from the configuration.
func GridFromConfig(cfg *viper.Viper) (*aquifern.Grid, error) {
	return aquifern.NewGrid(cast.ToFloat64(cfg.Get("Grid.L")), cast.ToInt(cfg.Get("Grid.N")))
}

// ParametersFromConfig builds and validates the parameter set from the
// configuration.
func ParametersFromConfig(cfg *viper.Viper) (*aquifern.ParameterSet, error) {
	p := &aquifern.ParameterSet{
		RAeroMin:     cast.ToFloat64(cfg.Get("Parameters.RAeroMin")),
		RDenitr:      cast.ToFloat64(cfg.Get("Parameters.RDenitr")),
		RNitri:       cast.ToFloat64(cfg.Get("Parameters.RNitri")),
		RAera:        cast.ToFloat64(cfg.Get("Parameters.RAera")),
		VAdv:         cast.ToFloat64(cfg.Get("Parameters.VAdv")),
		Dispersivity: cast.ToFloat64(cfg.Get("Parameters.Dispersivity")),
		Porosity:     cast.ToFloat64(cfg.Get("Parameters.Porosity")),
		KO2:          cast.ToFloat64(cfg.Get("Parameters.KO2")),
		KNO3:         cast.ToFloat64(cfg.Get("Parameters.KNO3")),
		RiverDON:     cast.ToFloat64(cfg.Get("Parameters.RiverDON")),
		RiverO2:      cast.ToFloat64(cfg.Get("Parameters.RiverO2")),
		RiverNO3:     cast.ToFloat64(cfg.Get("Parameters.RiverNO3")),
		RiverNH3:     cast.ToFloat64(cfg.Get("Parameters.RiverNH3")),
		O2Sol:        cast.ToFloat64(cfg.Get("Parameters.O2Sol")),
	}
	if err := p.Check(); err != nil {
		return nil, err
	}
	return p, nil
}

// SolverOptionsFromConfig builds the solver options from the
// configuration. The log writer is left for the caller to set.
func SolverOptionsFromConfig(cfg *viper.Viper) aquifern.SolverOptions {
	return aquifern.SolverOptions{
		AbsTolerance:  cast.ToFloat64(cfg.Get("Solver.AbsTolerance")),
		RelTolerance:  cast.ToFloat64(cfg.Get("Solver.RelTolerance")),
		MaxIterations: cast.ToInt(cfg.Get("Solver.MaxIterations")),
	}
}

// checkOutputVars removes end lines and expands environment variables
// in the output variable expressions.
func checkOutputVars(vars map[string]string) map[string]string {
	for k, v := range vars {
		v = strings.Replace(v, "\r\n", " ", -1)
		v = strings.Replace(v, "\n", " ", -1)
		vars[os.ExpandEnv(k)] = os.ExpandEnv(v)
	}
	return vars
}

// checkOutputFile makes sure that the output file directory exists and
// expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`aquifern: you need to specify an output file configuration variable (for example: OutputFile="profiles.csv")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("aquifern: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}
