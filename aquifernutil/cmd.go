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

// Package aquifernutil provides the configuration and command-line
// interface for the AquiferN model.
package aquifernutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/aquifern"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log is the logger used by the commands.
var Log = logrus.StandardLogger()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	defaults := aquifern.DefaultParameterSet()

	// Options are the configuration options available to AquiferN.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Grid.L",
			usage: `
              Grid.L specifies the length of the flow path in meters.`,
			defaultVal: 500.,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Grid.N",
			usage: `
              Grid.N specifies the number of grid cells the flow path is
              divided into.`,
			defaultVal: 500,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Parameters.RAeroMin",
			usage: `
              Parameters.RAeroMin specifies the aerobic mineralization rate
              constant [1/d].`,
			defaultVal: defaults.RAeroMin,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Parameters.RDenitr",
			usage: `
              Parameters.RDenitr specifies the denitrification rate
              constant [1/d].`,
			defaultVal: defaults.RDenitr,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Parameters.RNitri",
			usage: `
              Parameters.RNitri specifies the nitrification rate constant
              [m3/mmol/d].`,
			defaultVal: defaults.RNitri,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Parameters.RAera",
			usage: `
              Parameters.RAera specifies the aeration rate constant [1/d].`,
			defaultVal: defaults.RAera,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Parameters.VAdv",
			usage: `
              Parameters.VAdv specifies the advective pore-water velocity
              [m/d].`,
			defaultVal: defaults.VAdv,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Parameters.Dispersivity",
			usage: `
              Parameters.Dispersivity specifies the dispersivity [m]. The
              dispersion coefficient is the product of dispersivity and
              advective velocity.`,
			defaultVal: defaults.Dispersivity,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Parameters.Porosity",
			usage: `
              Parameters.Porosity specifies the volume fraction of mobile
              water.`,
			defaultVal: defaults.Porosity,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Parameters.KO2",
			usage: `
              Parameters.KO2 specifies the half-saturation concentration
              for oxygen limitation [mmol/m3].`,
			defaultVal: defaults.KO2,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Parameters.KNO3",
			usage: `
              Parameters.KNO3 specifies the half-saturation concentration
              for nitrate limitation [mmol/m3].`,
			defaultVal: defaults.KNO3,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Parameters.RiverDON",
			usage: `
              Parameters.RiverDON specifies the river DON concentration
              [mmol/m3].`,
			defaultVal: defaults.RiverDON,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Parameters.RiverO2",
			usage: `
              Parameters.RiverO2 specifies the river oxygen concentration
              [mmol/m3].`,
			defaultVal: defaults.RiverO2,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Parameters.RiverNO3",
			usage: `
              Parameters.RiverNO3 specifies the river nitrate concentration
              [mmol/m3].`,
			defaultVal: defaults.RiverNO3,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Parameters.RiverNH3",
			usage: `
              Parameters.RiverNH3 specifies the river ammonia concentration
              [mmol/m3].`,
			defaultVal: defaults.RiverNH3,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Parameters.O2Sol",
			usage: `
              Parameters.O2Sol specifies the oxygen solubility [mmol/m3].`,
			defaultVal: defaults.O2Sol,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Solver.AbsTolerance",
			usage: `
              Solver.AbsTolerance specifies the absolute residual tolerance
              of the steady-state solver.`,
			defaultVal: 1.e-10,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), budgetCmd.PersistentFlags()},
		},
		{
			name: "Solver.RelTolerance",
			usage: `
              Solver.RelTolerance specifies the relative residual tolerance
              of the steady-state solver.`,
			defaultVal: 1.e-10,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), budgetCmd.PersistentFlags()},
		},
		{
			name: "Solver.MaxIterations",
			usage: `
              Solver.MaxIterations specifies the Newton iteration budget.`,
			defaultVal: 100,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), budgetCmd.PersistentFlags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile specifies the path where the concentration
              profiles are written as CSV.`,
			defaultVal: "profiles.csv",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables specifies additional derived output values,
              each defined by an expression over the budget fields and
              species profiles, for example: {"NRemoval": "Denitri * 0.4"}.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), budgetCmd.PersistentFlags()},
		},
	}

	Cfg = viper.New()
	Cfg.SetEnvPrefix("AQUIFERN")
	Cfg.AutomaticEnv()
	for _, option := range options {
		Cfg.SetDefault(option.name, option.defaultVal)
		for _, set := range option.flagsets {
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, cast.ToString(option.defaultVal), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, cast.ToString(option.defaultVal), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, cast.ToInt(option.defaultVal), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, cast.ToInt(option.defaultVal), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, cast.ToFloat64(option.defaultVal), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, cast.ToFloat64(option.defaultVal), option.usage)
				}
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(budgetCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("aquifern: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "aquifern",
	Short: "A steady-state aquifer nitrogen cycling model.",
	Long: `AquiferN computes the steady concentration profiles of dissolved organic
matter, oxygen, nitrate, ammonia, and nitrogen gas along a one-dimensional
aquifer flow path, together with an integrated mass budget.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'AQUIFERN_var' where 'var'
is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of AquiferN.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("AquiferN v%s\n", aquifern.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd solves for the steady state and writes the concentration
// profiles and the budget.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Solve for the steady state.",
	Long: `run solves for the steady concentration profiles, writes them to the
output file as CSV, and prints the mass budget.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.OutOrStdout(), Cfg)
	},
	DisableAutoGenTag: true,
}

// budgetCmd solves for the steady state and prints the budget only.
var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Print the steady-state mass budget.",
	Long: `budget solves for the steady state and prints the domain-integrated
reaction totals, the boundary fluxes, and the per-species mass balance
closure residuals, without writing profile output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		steady, err := solveFromConfig(Cfg)
		if err != nil {
			return err
		}
		return printBudget(cmd.OutOrStdout(), steady, Cfg)
	},
	DisableAutoGenTag: true,
}

// GetStringMapString returns a map of strings from the given
// configuration variable, decoding from JSON if necessary.
func GetStringMapString(varName string, cfg *viper.Viper) map[string]string {
	i := cfg.Get(varName)
	switch t := i.(type) {
	case string:
		o := make(map[string]string)
		if err := json.Unmarshal([]byte(t), &o); err != nil {
			Log.WithError(err).Errorf("aquifern: parsing configuration variable %s", varName)
			os.Exit(1)
		}
		return o
	default:
		return cast.ToStringMapString(i)
	}
}
