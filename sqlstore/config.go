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

package sqlstore

import (
	"fmt"
	"time"

	"code.bundlemart.io/earnings/config/encoding"
	"code.bundlemart.io/earnings/logging"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Config struct {
	Level            encoding.LogLevel `long:"log-level"`
	ConnectionConfig ConnectionConfig  `group:"ConnectionConfig" namespace:"ConnectionConfig"`
	UseEmbedded      encoding.Bool     `long:"use-embedded" description:"Start an embedded postgres next to the node"`
	WipeOnStartup    encoding.Bool     `long:"wipe-on-startup" description:"Drop the schema before migrating, only for local setups"`
}

type ConnectionConfig struct {
	Host            string            `long:"host"`
	Port            int               `long:"port"`
	Username        string            `long:"username"`
	Password        string            `long:"password"`
	Database        string            `long:"database"`
	SocketDir       string            `long:"socket-dir" description:"location of the postgres UNIX socket directory (used if host is empty string)"`
	MaxConnPoolSize int               `long:"max-conn-pool-size" description:"Maximum number of pooled connections"`
	MinConnPoolSize int32             `long:"min-conn-pool-size" description:"Minimum number of pooled connections"`
	ConnectTimeout  encoding.Duration `long:"connect-timeout"`
}

func (conf ConnectionConfig) GetConnectionString() string {
	host := conf.Host
	if len(host) == 0 {
		host = conf.SocketDir
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		host,
		conf.Port,
		conf.Username,
		conf.Password,
		conf.Database)
}

func (conf ConnectionConfig) GetPoolConfig() (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(conf.GetConnectionString())
	if err != nil {
		return nil, err
	}
	cfg.ConnConfig.RuntimeParams["application_name"] = "BundleMart Earnings"
	if conf.ConnectTimeout.Duration > 0 {
		cfg.ConnConfig.ConnectTimeout = conf.ConnectTimeout.Duration
	}
	if conf.MaxConnPoolSize > 0 {
		cfg.MaxConns = int32(conf.MaxConnPoolSize)
	}
	cfg.MinConns = conf.MinConnPoolSize
	return cfg, nil
}

func NewDefaultConfig() Config {
	return Config{
		Level: encoding.LogLevel{Level: logging.InfoLevel},
		ConnectionConfig: ConnectionConfig{
			Host:            "localhost",
			Port:            5432,
			Username:        "earnings",
			Password:        "earnings",
			Database:        "earnings",
			SocketDir:       "/tmp",
			MaxConnPoolSize: 20,
			MinConnPoolSize: 0,
			ConnectTimeout:  encoding.Duration{Duration: 10 * time.Second},
		},
		UseEmbedded:   false,
		WipeOnStartup: false,
	}
}
