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
	"syscall"

	"code.bundlemart.io/earnings/config"
	"code.bundlemart.io/earnings/earnings"
	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/repair"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
)

// RepairCmd runs one maintenance job over the whole order history and exits.
type RepairCmd struct {
	config.HomeFlag
	config.Config

	job  func(*repair.Jobs, context.Context) (repair.Summary, error)
	name string
}

var (
	backfillCmd    RepairCmd
	recomputePVCmd RepairCmd
)

func (cmd *RepairCmd) Execute(_ []string) error {
	if err := loadConfig(cmd.Home, &cmd.Config); err != nil {
		return err
	}

	log := logging.NewLoggerFromConfig(cmd.Config.Logging)
	defer log.AtExit()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := openStores(ctx, log, cmd.Config, cmd.Home)
	if err != nil {
		return err
	}
	defer st.Close()

	b, stopBroker := startBroker(ctx, log, cmd.Config.Broker)
	defer stopBroker()

	engine := earnings.New(log, cmd.Config.Earnings, cmd.Config.Commission,
		st.members, st.orders, st.ledger, st.tx, b)
	jobs := repair.New(log, cmd.Config.Repair, st.orders, engine)

	summary, err := cmd.job(jobs, ctx)
	printSummary(cmd.name, summary)
	return err
}

func printSummary(name string, s repair.Summary) {
	fmt.Fprintf(os.Stdout, "%s:\n", name)
	fmt.Fprintf(os.Stdout, "  scanned:   %s\n", humanize.Comma(s.Scanned))
	fmt.Fprintf(os.Stdout, "  updated:   %s\n", humanize.Comma(s.Updated))
	fmt.Fprintf(os.Stdout, "  generated: %s\n", humanize.Comma(s.Generated))
	fmt.Fprintf(os.Stdout, "  skipped:   %s\n", humanize.Comma(s.Skipped))
	fmt.Fprintf(os.Stdout, "  failed:    %s\n", humanize.Comma(s.Failed))
}

func Backfill(ctx context.Context, parser *flags.Parser) error {
	backfillCmd = RepairCmd{
		Config: config.NewDefaultConfig(),
		job:    (*repair.Jobs).BackfillEarnings,
		name:   "backfill-earnings",
	}
	short := "Generates the missing earnings of past orders"
	long := "Scans every order and generates the earnings of those that have none, using the PV stored on the order"
	_, err := parser.AddCommand("backfill-earnings", short, long, &backfillCmd)
	return err
}

func RecomputePV(ctx context.Context, parser *flags.Parser) error {
	recomputePVCmd = RepairCmd{
		Config: config.NewDefaultConfig(),
		job:    (*repair.Jobs).RecomputePV,
		name:   "recompute-pv",
	}
	short := "Recomputes the PV stored on past orders"
	long := "Recomputes the capped PV of every order with the configured rates and updates the orders where it changed"
	_, err := parser.AddCommand("recompute-pv", short, long, &recomputePVCmd)
	return err
}
