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

//lint:file-ignore SA5008 duplicated struct tags are ok for config

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"code.bundlemart.io/earnings/api/rest"
	"code.bundlemart.io/earnings/broker"
	"code.bundlemart.io/earnings/commission"
	"code.bundlemart.io/earnings/config/encoding"
	"code.bundlemart.io/earnings/earnings"
	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/metrics"
	"code.bundlemart.io/earnings/orders"
	"code.bundlemart.io/earnings/referral"
	"code.bundlemart.io/earnings/repair"
	"code.bundlemart.io/earnings/sqlstore"
	"code.bundlemart.io/earnings/tree"

	"github.com/BurntSushi/toml"
)

// Empty is used when a command or sub-command receives no argument and no
// flags.
type Empty struct{}

// HomeFlag points at the directory holding config.toml and the embedded
// postgres state.
type HomeFlag struct {
	Home string `long:"home" description:"Path to the earnings home directory" default:"."`
}

// Config ties together all other application configuration types.
type Config struct {
	API        rest.Config       `group:"API" namespace:"api"`
	Broker     broker.Config     `group:"Broker" namespace:"broker"`
	Commission commission.Config `group:"Commission" namespace:"commission"`
	Earnings   earnings.Config   `group:"Earnings" namespace:"earnings"`
	Logging    logging.Config    `group:"Logging" namespace:"logging"`
	Metrics    metrics.Config    `group:"Metrics" namespace:"metrics"`
	Orders     orders.Config     `group:"Orders" namespace:"orders"`
	Referral   referral.Config   `group:"Referral" namespace:"referral"`
	Repair     repair.Config     `group:"Repair" namespace:"repair"`
	SQLStore   sqlstore.Config   `group:"SQLStore" namespace:"sqlstore"`
	Tree       tree.Config       `group:"Tree" namespace:"tree"`

	// InMemory swaps postgres for the in-memory store, nothing survives a
	// restart.
	InMemory encoding.Bool `long:"in-memory" description:"Keep all data in memory instead of postgres"`
}

// NewDefaultConfig returns a set of default configs for all packages, as
// specified at the per package config level.
func NewDefaultConfig() Config {
	return Config{
		API:        rest.NewDefaultConfig(),
		Broker:     broker.NewDefaultConfig(),
		Commission: commission.NewDefaultConfig(),
		Earnings:   earnings.NewDefaultConfig(),
		Logging:    logging.NewDefaultConfig(),
		Metrics:    metrics.NewDefaultConfig(),
		Orders:     orders.NewDefaultConfig(),
		Referral:   referral.NewDefaultConfig(),
		Repair:     repair.NewDefaultConfig(),
		SQLStore:   sqlstore.NewDefaultConfig(),
		Tree:       tree.NewDefaultConfig(),
		InMemory:   false,
	}
}

// Validate checks the settings that have no safe fallback.
func (c Config) Validate() error {
	if err := c.Commission.Validate(); err != nil {
		return fmt.Errorf("commission: %w", err)
	}
	if c.Tree.BulkThreshold < 0 {
		return fmt.Errorf("tree: bulk threshold must not be negative")
	}
	return nil
}

// Path returns the location of the configuration file under home.
func Path(home string) string {
	return filepath.Join(home, configFileName)
}

// Read loads the configuration file of home on top of the defaults.
func Read(home string) (*Config, error) {
	cfg := NewDefaultConfig()
	if _, err := toml.DecodeFile(Path(home), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg as the configuration file of home, creating the
// directory when needed.
func Save(home string, cfg *Config) error {
	if err := os.MkdirAll(home, 0o700); err != nil {
		return fmt.Errorf("couldn't create home %s: %w", home, err)
	}
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return err
	}
	return os.WriteFile(Path(home), buf.Bytes(), 0o600)
}
