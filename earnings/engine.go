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

package earnings

import (
	"context"
	"errors"
	"time"

	"code.bundlemart.io/earnings/commission"
	"code.bundlemart.io/earnings/events"
	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/metrics"
	"code.bundlemart.io/earnings/types"

	"go.uber.org/atomic"
)

// Options tune a single generation.
type Options struct {
	// ReuseStoredPV credits the PV stored on the order instead of
	// recomputing it, keeping the cap applied when the order was created.
	// Repair tooling sets it.
	ReuseStoredPV bool
}

type Result struct {
	Records []types.EarningRecord
	// AlreadyGenerated is set when the order had its earnings before this
	// call. Records is empty in that case.
	AlreadyGenerated bool
}

// Engine turns a saved order into its earning records: one self-PV credit
// for the buyer, one direct income for the parent, one matching income per
// ancestor. All of an order's records are written in one transaction, and
// the self-PV uniqueness makes the operation idempotent.
type Engine struct {
	log     *logging.Logger
	members Members
	orders  Orders
	ledger  Ledger
	tx      TxManager
	broker  Broker

	calc *atomic.Pointer[commission.Calculator]
	now  func() time.Time
}

func New(
	log *logging.Logger,
	cfg Config,
	commissionCfg commission.Config,
	members Members,
	orders Orders,
	ledger Ledger,
	tx TxManager,
	broker Broker,
) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	return &Engine{
		log:     log,
		members: members,
		orders:  orders,
		ledger:  ledger,
		tx:      tx,
		broker:  broker,
		calc:    atomic.NewPointer(commission.New(commissionCfg)),
		now:     time.Now,
	}
}

// ReloadConf updates the internal configuration.
func (e *Engine) ReloadConf(cfg Config) {
	e.log.Info("reloading configuration")
	if e.log.GetLevel() != cfg.Level.Get() {
		e.log.Info("updating log level",
			logging.String("old", e.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		e.log.SetLevel(cfg.Level.Get())
	}
}

// UpdateCommission swaps the rates used by the next generations. An invalid
// configuration is logged and ignored.
func (e *Engine) UpdateCommission(cfg commission.Config) {
	if err := cfg.Validate(); err != nil {
		e.log.Error("invalid commission configuration, keeping the current one", logging.Error(err))
		return
	}
	e.calc.Store(commission.New(cfg))
	e.log.Info("commission rates updated")
}

// Calculator returns the calculator currently in use.
func (e *Engine) Calculator() *commission.Calculator {
	return e.calc.Load()
}

// GenerateForOrder loads the order then generates its earnings.
func (e *Engine) GenerateForOrder(ctx context.Context, orderID string, opts Options) (Result, error) {
	order, err := e.orders.Get(ctx, orderID)
	if err != nil {
		return Result{}, err
	}
	return e.Generate(ctx, &order, opts)
}

// Generate writes the earning records of a saved order, at most once.
//
// A missing buyer fails the whole generation with types.ErrBuyerNotFound. A
// missing parent or ancestor is logged and skipped.
func (e *Engine) Generate(ctx context.Context, order *types.Order, opts Options) (Result, error) {
	if len(order.ID) == 0 {
		return Result{}, types.NewValidationError("order has no id")
	}
	if err := order.Validate(); err != nil {
		metrics.EarningsGenerationInc("invalid")
		return Result{}, err
	}

	log := e.log.With(logging.OrderID(order.ID), logging.MemberCode(order.BuyerCode))
	calc := e.calc.Load()

	totalDP := calc.TotalDP(order.Items)
	pv := calc.CapPV(calc.PV(totalDP))
	if opts.ReuseStoredPV {
		pv = order.TotalPV
	}

	// fast path, the unique self-PV constraint still settles races
	generated, err := e.hasSelfPV(ctx, order.ID)
	if err != nil {
		metrics.EarningsGenerationInc("failed")
		return Result{}, err
	}
	if generated {
		log.Debug("earnings already generated")
		metrics.EarningsGenerationInc("already_generated")
		return Result{AlreadyGenerated: true}, nil
	}

	buyer, err := e.members.GetByCode(ctx, order.BuyerCode)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			metrics.EarningsGenerationInc("failed")
			return Result{}, types.ErrBuyerNotFound
		}
		metrics.EarningsGenerationInc("failed")
		return Result{}, err
	}

	var records []types.EarningRecord
	err = e.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		records, err = e.write(ctx, log, calc, order, buyer, totalDP, pv)
		return err
	})
	if errors.Is(err, types.ErrAlreadyGenerated) || errors.Is(err, types.ErrConflict) {
		log.Info("concurrent generation won the race, nothing written")
		metrics.EarningsGenerationInc("already_generated")
		return Result{AlreadyGenerated: true}, nil
	}
	if err != nil {
		log.Error("could not generate earnings", logging.Error(err))
		metrics.EarningsGenerationInc("failed")
		return Result{}, err
	}

	for _, r := range records {
		metrics.EarningRecordsAdd(r.Kind.String(), 1)
	}
	metrics.EarningsGenerationInc("generated")
	log.Info("earnings generated",
		logging.Int64("total-dp", totalDP),
		logging.Int64("pv", pv),
		logging.Int("records", len(records)),
	)

	if e.broker != nil {
		e.broker.Send(events.NewEarningsGenerated(ctx, *order, records))
	}
	return Result{Records: records}, nil
}

// HasEarnings reports whether the self-PV record of the order exists.
func (e *Engine) HasEarnings(ctx context.Context, orderID string) (bool, error) {
	return e.hasSelfPV(ctx, orderID)
}

func (e *Engine) hasSelfPV(ctx context.Context, orderID string) (bool, error) {
	_, err := e.ledger.Get(ctx, orderID, types.EarningKindSelfPV)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, types.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (e *Engine) write(
	ctx context.Context,
	log *logging.Logger,
	calc *commission.Calculator,
	order *types.Order,
	buyer types.Member,
	totalDP, pv int64,
) ([]types.EarningRecord, error) {
	now := e.now()
	records := make([]types.EarningRecord, 0, 2+len(buyer.AncestorCodes))

	self := &types.EarningRecord{
		BeneficiaryCode: buyer.Code,
		SourceBuyerCode: buyer.Code,
		OrderID:         order.ID,
		Kind:            types.EarningKindSelfPV,
		PercentApplied:  calc.PVRate(),
		PV:              pv,
		Amount:          calc.SelfCreditAmount(pv),
		CreatedAt:       now,
	}
	if err := e.ledger.Create(ctx, self); err != nil {
		if errors.Is(err, types.ErrConflict) {
			return nil, types.ErrAlreadyGenerated
		}
		return nil, err
	}
	records = append(records, *self)

	if buyer.HasParent() {
		found, err := e.exists(ctx, buyer.Parent())
		if err != nil {
			return nil, err
		}
		if found {
			direct := &types.EarningRecord{
				BeneficiaryCode: buyer.Parent(),
				SourceBuyerCode: buyer.Code,
				OrderID:         order.ID,
				Kind:            types.EarningKindDirectReferral,
				PercentApplied:  calc.DirectRate(),
				Amount:          calc.DirectIncome(totalDP),
				CreatedAt:       now,
			}
			if err := e.ledger.Create(ctx, direct); err != nil {
				return nil, err
			}
			records = append(records, *direct)
		} else {
			log.Warn("parent not found, skipping direct income",
				logging.String("parent", buyer.Parent()))
		}
	}

	for _, share := range calc.MatchingIncome(totalDP, buyer.AncestorCodes) {
		found, err := e.exists(ctx, share.AncestorCode)
		if err != nil {
			return nil, err
		}
		if !found {
			log.Warn("ancestor not found, skipping matching income",
				logging.String("ancestor", share.AncestorCode),
				logging.Int("level", share.Level),
			)
			continue
		}
		matching := &types.EarningRecord{
			BeneficiaryCode: share.AncestorCode,
			SourceBuyerCode: buyer.Code,
			OrderID:         order.ID,
			Kind:            types.EarningKindAncestorMatching,
			Level:           share.Level,
			PercentApplied:  share.Percent,
			Amount:          share.Income,
			CreatedAt:       now,
		}
		if err := e.ledger.Create(ctx, matching); err != nil {
			return nil, err
		}
		records = append(records, *matching)
	}

	return records, nil
}

func (e *Engine) exists(ctx context.Context, code string) (bool, error) {
	_, err := e.members.GetByCode(ctx, code)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, types.ErrNotFound) {
		return false, nil
	}
	return false, err
}
