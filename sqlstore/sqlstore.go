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
	"context"
	"embed"
	"errors"
	"fmt"
	"io"

	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/types"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	shopspring "github.com/jackc/pgtype/ext/shopspring-numeric"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/jackc/pgx/v4/stdlib"
	perrors "github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

const (
	namedLogger      = "sqlstore"
	SQLMigrationsDir = "migrations"

	uniqueViolation = "23505"
)

var tableNames = [...]string{"earnings", "orders", "members", "series_counters"}

//go:embed migrations/*.sql
var EmbedMigrations embed.FS

// MigrateToLatestSchema applies every embedded migration not applied yet.
func MigrateToLatestSchema(log *logging.Logger, config Config) error {
	goose.SetBaseFS(EmbedMigrations)
	goose.SetLogger(log.Named("db migration").GooseLogger())

	poolConfig, err := config.ConnectionConfig.GetPoolConfig()
	if err != nil {
		return fmt.Errorf("failed to get pool config: %w", err)
	}

	db := stdlib.OpenDB(*poolConfig.ConnConfig)
	defer db.Close()

	currentVersion, err := goose.GetDBVersion(db)
	if err != nil {
		return err
	}

	if currentVersion > 0 && bool(config.WipeOnStartup) {
		log.Warn("wiping the database schema")
		if err := goose.Reset(db, SQLMigrationsDir); err != nil {
			return fmt.Errorf("error clearing sql schema: %w", err)
		}
	}

	if err := goose.Up(db, SQLMigrationsDir); err != nil {
		return fmt.Errorf("error migrating sql schema: %w", err)
	}
	return nil
}

func registerNumericType(poolConfig *pgxpool.Config) {
	// Cause postgres numeric types to be loaded as shopspring decimals and vice-versa
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		conn.ConnInfo().RegisterDataType(pgtype.DataType{
			Value: &shopspring.Numeric{},
			Name:  "numeric",
			OID:   pgtype.NumericOID,
		})
		return nil
	}
}

// StartEmbeddedPostgres runs a local postgres matching the connection
// configuration. Binaries are downloaded to runtimePath on first use.
func StartEmbeddedPostgres(log *logging.Logger, config Config, runtimePath, dataPath string, postgresLog io.Writer) (*embeddedpostgres.EmbeddedPostgres, error) {
	if postgresLog == nil {
		postgresLog = io.Discard
	}
	conn := config.ConnectionConfig
	dbConfig := embeddedpostgres.DefaultConfig().
		Username(conn.Username).
		Password(conn.Password).
		Database(conn.Database).
		Port(uint32(conn.Port)).
		Logger(postgresLog)

	if len(runtimePath) > 0 {
		dbConfig = dbConfig.RuntimePath(runtimePath).BinariesPath(runtimePath)
	}
	if len(dataPath) > 0 {
		dbConfig = dbConfig.DataPath(dataPath)
	}

	db := embeddedpostgres.NewDatabase(dbConfig)
	if err := db.Start(); err != nil {
		return nil, fmt.Errorf("use embedded database was true, but failed to start: %w", err)
	}
	log.Info("embedded postgres started",
		logging.Int("port", conn.Port),
		logging.String("data-path", dataPath),
	)
	return db, nil
}

// DeleteEverything truncates all tables, tests use it between cases.
func DeleteEverything(ctx context.Context, cs *ConnectionSource) error {
	for _, table := range tableNames {
		if _, err := cs.Connection.Exec(ctx, "truncate table "+table+" CASCADE"); err != nil {
			return fmt.Errorf("error truncating table: %s %w", table, err)
		}
	}
	return nil
}

// wrapE maps driver errors onto the domain errors: a missing row becomes
// types.ErrNotFound and a unique violation types.ErrConflict.
func wrapE(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return types.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, types.ErrConflict)
	}
	return perrors.Wrap(err, "sqlstore")
}
