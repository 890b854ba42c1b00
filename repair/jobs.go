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

package repair

import (
	"context"
	"fmt"

	"code.bundlemart.io/earnings/earnings"
	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/metrics"
	"code.bundlemart.io/earnings/types"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

const (
	jobRecomputePV = "recompute_pv"
	jobBackfill    = "backfill_earnings"
)

// Summary counts what a job did. Updated is used by RecomputePV, Generated by
// BackfillEarnings.
type Summary struct {
	Scanned   int64 `json:"scanned"`
	Updated   int64 `json:"updated"`
	Generated int64 `json:"generated"`
	Skipped   int64 `json:"skipped"`
	Failed    int64 `json:"failed"`
}

type counters struct {
	scanned, updated, generated, skipped, failed atomic.Int64
}

func (c *counters) summary() Summary {
	return Summary{
		Scanned:   c.scanned.Load(),
		Updated:   c.updated.Load(),
		Generated: c.generated.Load(),
		Skipped:   c.skipped.Load(),
		Failed:    c.failed.Load(),
	}
}

// Jobs are the one-off maintenance tasks run against the order history.
// Both are safe to rerun: they only touch what is missing or out of date.
type Jobs struct {
	log      *logging.Logger
	cfg      Config
	orders   Orders
	earnings Earnings
}

func New(log *logging.Logger, cfg Config, orders Orders, earnings Earnings) *Jobs {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = NewDefaultConfig().ChunkSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Jobs{
		log:      log,
		cfg:      cfg,
		orders:   orders,
		earnings: earnings,
	}
}

// RecomputePV recomputes the capped PV of every order with the current rates
// and stores it where it differs.
func (j *Jobs) RecomputePV(ctx context.Context) (Summary, error) {
	calc := j.earnings.Calculator()
	c := &counters{}

	err := j.scan(ctx, jobRecomputePV, c, func(ctx context.Context, o types.Order) error {
		pv := calc.OrderPV(o.Items)
		if pv == o.TotalPV {
			c.skipped.Inc()
			metrics.RepairInc(jobRecomputePV, "unchanged")
			return nil
		}
		if err := j.orders.UpdateComputedFields(ctx, o.ID, types.OrderComputedFields{TotalPV: pv}); err != nil {
			return err
		}
		j.log.Debug("order pv updated",
			logging.OrderID(o.ID),
			logging.Int64("old", o.TotalPV),
			logging.Int64("new", pv),
		)
		c.updated.Inc()
		metrics.RepairInc(jobRecomputePV, "updated")
		return nil
	})

	s := c.summary()
	j.log.Info("pv recomputation done",
		logging.Int64("scanned", s.Scanned),
		logging.Int64("updated", s.Updated),
		logging.Int64("failed", s.Failed),
	)
	return s, err
}

// BackfillEarnings generates the earnings of every order lacking its self-PV
// record, crediting the PV stored on the order. Existing records are never
// rewritten.
func (j *Jobs) BackfillEarnings(ctx context.Context) (Summary, error) {
	c := &counters{}

	err := j.scan(ctx, jobBackfill, c, func(ctx context.Context, o types.Order) error {
		done, err := j.earnings.HasEarnings(ctx, o.ID)
		if err != nil {
			return err
		}
		if done {
			c.skipped.Inc()
			metrics.RepairInc(jobBackfill, "skipped")
			return nil
		}
		res, err := j.earnings.Generate(ctx, &o, earnings.Options{ReuseStoredPV: true})
		if err != nil {
			return err
		}
		if res.AlreadyGenerated {
			c.skipped.Inc()
			metrics.RepairInc(jobBackfill, "skipped")
			return nil
		}
		c.generated.Inc()
		metrics.RepairInc(jobBackfill, "generated")
		return nil
	})

	s := c.summary()
	j.log.Info("earnings backfill done",
		logging.Int64("scanned", s.Scanned),
		logging.Int64("generated", s.Generated),
		logging.Int64("skipped", s.Skipped),
		logging.Int64("failed", s.Failed),
	)
	return s, err
}

// scan walks all orders chunk by chunk. A failure on one order is logged and
// counted, only a failing listing or a cancelled context stops the scan.
func (j *Jobs) scan(ctx context.Context, job string, c *counters, fn func(context.Context, types.Order) error) error {
	var after string
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		chunk, err := j.orders.List(ctx, after, j.cfg.ChunkSize)
		if err != nil {
			return fmt.Errorf("listing orders after %q: %w", after, err)
		}
		if len(chunk) == 0 {
			return nil
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(j.cfg.Workers)
		for _, o := range chunk {
			o := o
			g.Go(func() error {
				c.scanned.Inc()
				if err := fn(gctx, o); err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					c.failed.Inc()
					metrics.RepairInc(job, "failed")
					j.log.Error("could not repair order",
						logging.String("job", job),
						logging.OrderID(o.ID),
						logging.Error(err),
					)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		after = chunk[len(chunk)-1].ID
		if len(chunk) < j.cfg.ChunkSize {
			return nil
		}
	}
}
