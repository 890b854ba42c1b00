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

package rest

import (
	"time"

	"code.bundlemart.io/earnings/config/encoding"
	"code.bundlemart.io/earnings/logging"
)

// namedLogger is the identifier for package and should ideally match the package name
// this is simply emitted as a hierarchical label e.g. 'api.rest'.
const namedLogger = "api.rest"

// Config represents the configuration of the rest api.
type Config struct {
	Level   encoding.LogLevel `long:"log-level"`
	Enabled encoding.Bool     `long:"enabled" description:"Serve the REST api"`
	IP      string            `long:"ip" description:"Bind to address <ip>"`
	Port    int               `long:"port" description:"Listen for connection on port <port>"`
	Timeout encoding.Duration `long:"timeout" description:"Read and write timeout of a request"`
	CORS    CORSConfig        `group:"CORS" namespace:"cors"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:   encoding.LogLevel{Level: logging.InfoLevel},
		Enabled: true,
		IP:      "0.0.0.0",
		Port:    3008,
		Timeout: encoding.Duration{Duration: 10 * time.Second},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
			MaxAge:         7200,
		},
	}
}
