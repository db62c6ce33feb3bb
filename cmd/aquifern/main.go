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

// AquiferN computes steady-state nitrogen and oxygen cycling along a
// one-dimensional aquifer flow path.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/aquifern/aquifernutil"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if err := aquifernutil.Root.Execute(); err != nil {
		os.Exit(1)
	}
}
