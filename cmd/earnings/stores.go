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
	"path/filepath"

	"code.bundlemart.io/earnings/api/rest"
	"code.bundlemart.io/earnings/broker"
	"code.bundlemart.io/earnings/config"
	"code.bundlemart.io/earnings/earnings"
	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/memstore"
	"code.bundlemart.io/earnings/orders"
	"code.bundlemart.io/earnings/referral"
	"code.bundlemart.io/earnings/repair"
	"code.bundlemart.io/earnings/sqlstore"

	"gopkg.in/natefinch/lumberjack.v2"
)

type orderStore interface {
	orders.Store
	repair.Orders
}

type ledgerStore interface {
	earnings.Ledger
	rest.Ledger
}

// stores groups the persistence the services run on, either postgres or
// the in-memory store.
type stores struct {
	members referral.MemberStore
	series  referral.SeriesCounter
	orders  orderStore
	ledger  ledgerStore
	tx      earnings.TxManager

	closers []func()
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// postgresLogWriter rotates the output of the embedded postgres under home.
func postgresLogWriter(home string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(home, "postgres", "postgres.log"),
		MaxSize:    100, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
}

func openStores(ctx context.Context, log *logging.Logger, conf config.Config, home string) (*stores, error) {
	if conf.InMemory {
		log.Warn("using the in-memory store, nothing is kept on shutdown")
		ms := memstore.New()
		return &stores{
			members: ms.Members(),
			series:  ms.Series(),
			orders:  ms.Orders(),
			ledger:  ms.Earnings(),
			tx:      ms,
		}, nil
	}

	s := &stores{}
	if conf.SQLStore.UseEmbedded {
		pgLog := postgresLogWriter(home)
		db, err := sqlstore.StartEmbeddedPostgres(log, conf.SQLStore,
			filepath.Join(home, "postgres", "runtime"),
			filepath.Join(home, "postgres", "data"),
			pgLog)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() {
			if err := db.Stop(); err != nil {
				log.Error("error stopping embedded postgres", logging.Error(err))
			}
			_ = pgLog.Close()
		})
	}

	if err := sqlstore.MigrateToLatestSchema(log, conf.SQLStore); err != nil {
		s.Close()
		return nil, fmt.Errorf("couldn't migrate the database schema: %w", err)
	}

	cs, err := sqlstore.NewConnectionSource(ctx, log, conf.SQLStore.ConnectionConfig)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("couldn't connect to the database: %w", err)
	}
	s.closers = append(s.closers, cs.Close)

	s.members = sqlstore.NewMembers(cs)
	s.series = sqlstore.NewSeries(cs)
	s.orders = sqlstore.NewOrders(cs)
	s.ledger = sqlstore.NewEarnings(cs)
	s.tx = cs
	return s, nil
}

// startBroker starts the event broker, publishing to kafka when enabled.
// The returned function stops it after delivering what is queued.
func startBroker(ctx context.Context, log *logging.Logger, conf broker.Config) (*broker.Broker, func()) {
	b := broker.New(log, conf)

	var sink *broker.KafkaSink
	if conf.Kafka.Enabled {
		sink = broker.NewKafkaSink(conf.Kafka)
		b.Subscribe(sink)
		log.Info("publishing events to kafka",
			logging.Strings("brokers", conf.Kafka.Brokers),
			logging.String("topic", conf.Kafka.Topic),
		)
	}

	go b.Start(ctx)

	return b, func() {
		b.Stop()
		if sink != nil {
			if err := sink.Close(); err != nil {
				log.Error("error closing kafka writer", logging.Error(err))
			}
		}
	}
}

// loadConfig reads the configuration of home, falling back to the defaults
// when the file does not exist, then applies the command line on top.
func loadConfig(home string, conf *config.Config) error {
	c, err := config.Read(home)
	switch {
	case err == nil:
		*conf = *c
	case isNotExist(err):
		*conf = config.NewDefaultConfig()
	default:
		return fmt.Errorf("couldn't read configuration: %w", err)
	}
	if err := applyFlags(conf); err != nil {
		return err
	}
	return conf.Validate()
}
