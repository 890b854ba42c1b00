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

package referral

import (
	"time"

	"code.bundlemart.io/earnings/config/encoding"
	"code.bundlemart.io/earnings/logging"
)

const namedLogger = "referral"

// Config represents the configuration of the referral package.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	CodePrefix     string `long:"code-prefix" description:"Company prefix of every member code"`
	DefaultSeries  string `long:"default-series" description:"Series given to members registered without a parent"`
	SequenceWidth  int    `long:"sequence-width" description:"Zero padding of the sequence part of a code"`
	MaxCodeRetries uint64 `long:"max-code-retries" description:"Retries when a generated code collides"`

	CacheSize int               `long:"cache-size" description:"Number of members kept in the lookup cache"`
	CacheTTL  encoding.Duration `long:"cache-ttl" description:"Lifetime of a cached member"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:          encoding.LogLevel{Level: logging.InfoLevel},
		CodePrefix:     "BM",
		DefaultSeries:  "A",
		SequenceWidth:  6,
		MaxCodeRetries: 5,
		CacheSize:      10000,
		CacheTTL:       encoding.Duration{Duration: 30 * time.Second},
	}
}
