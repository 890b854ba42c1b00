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
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"code.bundlemart.io/earnings/config"
	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/sqlstore"

	"github.com/jessevdk/go-flags"
)

type PostgresCmd struct {
	Run PostgresRunCmd `command:"run"`
}

var postgresCmd PostgresCmd

func Postgres(ctx context.Context, parser *flags.Parser) error {
	postgresCmd = PostgresCmd{
		Run: PostgresRunCmd{},
	}

	_, err := parser.AddCommand("postgres", "Embedded Postgres", "Embedded Postgres", &postgresCmd)
	return err
}

type PostgresRunCmd struct {
	config.HomeFlag
	config.Config
}

func (cmd *PostgresRunCmd) Execute(_ []string) error {
	log := logging.NewLoggerFromConfig(logging.NewDefaultConfig())
	defer log.AtExit()

	if err := loadConfig(cmd.Home, &cmd.Config); err != nil {
		return err
	}

	log.Info("Launching Postgres")

	pgLog := postgresLogWriter(cmd.Home)
	defer pgLog.Close()

	db, err := sqlstore.StartEmbeddedPostgres(log, cmd.Config.SQLStore,
		filepath.Join(cmd.Home, "postgres", "runtime"),
		filepath.Join(cmd.Home, "postgres", "data"),
		pgLog)
	if err != nil {
		return err
	}

	if err := sqlstore.MigrateToLatestSchema(log, cmd.Config.SQLStore); err != nil {
		_ = db.Stop()
		return fmt.Errorf("couldn't migrate the database schema: %w", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	log.Info("Caught signal", logging.String("name", fmt.Sprintf("%+v", sig)))

	return db.Stop()
}
