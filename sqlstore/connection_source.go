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
	"fmt"

	"code.bundlemart.io/earnings/logging"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Connection is satisfied by both the pool and an open transaction.
type Connection interface {
	pgxscan.Querier
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type txKey struct{}

// ConnectionSource hands out either the pool or the transaction carried by
// the context, so stores take part in RunInTx without knowing about it.
type ConnectionSource struct {
	Connection Connection
	pool       *pgxpool.Pool
	log        *logging.Logger
}

func NewConnectionSource(ctx context.Context, log *logging.Logger, conf ConnectionConfig) (*ConnectionSource, error) {
	poolConfig, err := conf.GetPoolConfig()
	if err != nil {
		return nil, fmt.Errorf("error configuring database: %w", err)
	}
	registerNumericType(poolConfig)

	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	return &ConnectionSource{
		Connection: pool,
		pool:       pool,
		log:        log.Named(namedLogger),
	}, nil
}

// conn returns the transaction of ctx when there is one.
func (s *ConnectionSource) conn(ctx context.Context) Connection {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.Connection
}

// RunInTx runs fn in a read committed transaction. It is committed when fn
// returns nil and rolled back otherwise. A nested call joins the outer
// transaction.
func (s *ConnectionSource) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return wrapE(err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.Background())
			panic(p)
		} else if err != nil {
			if rerr := tx.Rollback(context.Background()); rerr != nil {
				s.log.Error("rollback failed", logging.Error(rerr))
			}
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	return wrapE(tx.Commit(ctx))
}

func (s *ConnectionSource) Close() {
	s.pool.Close()
}
