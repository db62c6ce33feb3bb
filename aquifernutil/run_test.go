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
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/spatialmodel/aquifern"
)

func TestRun(t *testing.T) {
	cfg, outFile := testConfig(t)
	var buf bytes.Buffer
	if err := Run(&buf, cfg); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(outFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 51 { // header plus one row per cell
		t.Errorf("want 51 CSV rows, got %d", len(records))
	}
	wantHeader := append([]string{"x"}, aquifern.SpeciesNames...)
	for i, h := range wantHeader {
		if records[0][i] != h {
			t.Errorf("CSV header column %d: want %s, got %s", i, h, records[0][i])
		}
	}

	report := buf.String()
	for _, want := range []string{"AeroMin", "DONFluxUp", "N2FluxDown", "DONBalance", "removedn"} {
		if !strings.Contains(report, want) {
			t.Errorf("budget report missing %q:\n%s", want, report)
		}
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.Set("Parameters.KO2", -1)
	var buf bytes.Buffer
	err := Run(&buf, cfg)
	var pe *aquifern.InvalidParameterError
	if !errors.As(err, &pe) {
		t.Errorf("want InvalidParameterError, got %v", err)
	}
}

// A too-small iteration budget is retried with a doubled budget until
// the solve converges.
func TestSolveFromConfigRetry(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.Set("Solver.MaxIterations", 4)
	steady, err := solveFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if steady == nil || steady.Stats.ResidualNorm > 1.e-6 {
		t.Errorf("retry did not produce a converged solution: %+v", steady.Stats)
	}
}
