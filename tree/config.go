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

package tree

import (
	"code.bundlemart.io/earnings/config/encoding"
	"code.bundlemart.io/earnings/logging"
)

const namedLogger = "tree"

// Config represents the configuration of the tree builder.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`
	// BulkThreshold is the subtree size from which the whole subtree is
	// loaded in one query instead of one query per node.
	BulkThreshold int `long:"bulk-threshold" description:"Descendant count from which trees are built from a single subtree query"`
	MaxDepth      int `long:"max-depth" description:"Upper bound on requested depths, 0 for none"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:         encoding.LogLevel{Level: logging.InfoLevel},
		BulkThreshold: 1000,
		MaxDepth:      0,
	}
}
