// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"io/fs"

	"code.bundlemart.io/earnings/config"

	"github.com/jessevdk/go-flags"
)

// applyFlags parses the command line again over conf so flags win over the
// configuration file.
func applyFlags(conf *config.Config) error {
	if _, err := flags.NewParser(conf, flags.Default|flags.IgnoreUnknown).Parse(); err != nil {
		return err
	}
	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
