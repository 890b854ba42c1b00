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
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code.bundlemart.io/earnings/api/rest"
	"code.bundlemart.io/earnings/broker"
	"code.bundlemart.io/earnings/config"
	"code.bundlemart.io/earnings/earnings"
	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/metrics"
	"code.bundlemart.io/earnings/orders"
	"code.bundlemart.io/earnings/referral"
	"code.bundlemart.io/earnings/tree"

	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type NodeCmd struct {
	config.HomeFlag
	config.Config
}

var nodeCmd NodeCmd

func (cmd *NodeCmd) Execute(args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher, err := config.NewWatcher(ctx, logging.NewProdLogger(), cmd.Home)
	if err != nil {
		return fmt.Errorf("couldn't load configuration, run `earnings init` first: %w", err)
	}

	conf := watcher.Get()
	if err := applyFlags(&conf); err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return err
	}

	log := logging.NewLoggerFromConfig(conf.Logging)
	defer log.AtExit()

	node := &NodeCommand{
		ctx:           ctx,
		cancel:        cancel,
		Log:           log,
		home:          cmd.Home,
		conf:          conf,
		configWatcher: watcher,
	}
	return node.Run(args)
}

func Node(ctx context.Context, parser *flags.Parser) error {
	nodeCmd = NodeCmd{
		Config: config.NewDefaultConfig(),
	}
	short := "Runs the earnings node"
	long := "Serves the REST API and generates earnings for submitted orders"
	_, err := parser.AddCommand("node", short, long, &nodeCmd)
	return err
}

// NodeCommand holds the services of a running node.
type NodeCommand struct {
	ctx    context.Context
	cancel context.CancelFunc

	stores     *stores
	broker     *broker.Broker
	stopBroker func()

	registry *referral.Registry
	engine   *earnings.Engine
	orders   *orders.Service
	trees    *tree.Builder
	api      *rest.Server

	Log           *logging.Logger
	home          string
	configWatcher *config.Watcher
	conf          config.Config
}

func (l *NodeCommand) Run(args []string) error {
	stages := []func([]string) error{
		l.preRun,
		l.runNode,
		l.postRun,
	}
	for _, fn := range stages {
		if err := fn(args); err != nil {
			l.postRun(args)
			return err
		}
	}
	return nil
}

func (l *NodeCommand) preRun(_ []string) (err error) {
	if l.stores, err = openStores(l.ctx, l.Log, l.conf, l.home); err != nil {
		return err
	}
	l.broker, l.stopBroker = startBroker(l.ctx, l.Log, l.conf.Broker)

	cached := referral.NewCachedMembers(l.stores.members, l.conf.Referral.CacheSize, l.conf.Referral.CacheTTL.Get())

	l.registry = referral.NewRegistry(l.Log, l.conf.Referral, cached, l.stores.series).WithBroker(l.broker)
	// generation reads ancestors from the store directly, a stale cached
	// parent would credit the wrong chain.
	l.engine = earnings.New(l.Log, l.conf.Earnings, l.conf.Commission,
		l.stores.members, l.stores.orders, l.stores.ledger, l.stores.tx, l.broker)
	l.orders = orders.NewService(l.Log, l.conf.Orders, cached, l.stores.orders, l.engine, l.broker)
	l.trees = tree.New(l.Log, l.conf.Tree, cached)
	l.api = rest.New(l.Log, l.conf.API, l.orders, l.engine, l.registry, l.trees, l.stores.ledger)

	l.setupConfigWatchers()
	return nil
}

func (l *NodeCommand) setupConfigWatchers() {
	l.configWatcher.OnConfigUpdate(
		func(cfg config.Config) {
			if err := applyFlags(&cfg); err != nil {
				l.Log.Error("couldn't apply flags to the new configuration", logging.Error(err))
				return
			}
			l.registry.ReloadConf(cfg.Referral)
			l.engine.ReloadConf(cfg.Earnings)
			l.engine.UpdateCommission(cfg.Commission)
			l.orders.ReloadConf(cfg.Orders)
			l.trees.ReloadConf(cfg.Tree)
		},
	)
}

// runNode is the entry of node command.
func (l *NodeCommand) runNode(_ []string) error {
	ctx, cancel := context.WithCancel(l.ctx)
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return l.api.Start() })

	eg.Go(func() error {
		<-ctx.Done()
		sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer scancel()
		return l.api.Stop(sctx)
	})

	// waitSig will wait for a sigterm or sigint interrupt.
	eg.Go(func() error {
		gracefulStop := make(chan os.Signal, 1)
		signal.Notify(gracefulStop, syscall.SIGTERM, syscall.SIGINT)

		select {
		case sig := <-gracefulStop:
			l.Log.Info("Caught signal", logging.String("name", fmt.Sprintf("%+v", sig)))
			cancel()
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	})

	metrics.Start(l.conf.Metrics)

	l.Log.Info("earnings node startup complete",
		logging.String("version", CLIVersion),
		logging.String("version-hash", CLIVersionHash),
	)

	err := eg.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (l *NodeCommand) postRun(_ []string) error {
	if l.stopBroker != nil {
		l.stopBroker()
		l.stopBroker = nil
	}
	if l.stores != nil {
		l.stores.Close()
		l.stores = nil
	}
	l.cancel()
	return nil
}
