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

package orders

import (
	"context"
	"errors"
	"sync"

	"code.bundlemart.io/earnings/earnings"
	"code.bundlemart.io/earnings/events"
	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/metrics"
	"code.bundlemart.io/earnings/types"
)

// Submission is an order as placed by a buyer, before any totals are known.
type Submission struct {
	BuyerCode string           `json:"buyer_code"`
	Items     []types.LineItem `json:"items"`
}

// Receipt is the saved order plus the outcome of the earnings generation.
type Receipt struct {
	Order    types.Order           `json:"order"`
	Earnings []types.EarningRecord `json:"earnings"`
	// EarningsError is set when the order was saved but its earnings could
	// not be produced. The backfill job picks such orders up.
	EarningsError string `json:"earnings_error,omitempty"`
}

type Service struct {
	log      *logging.Logger
	members  Members
	store    Store
	earnings Earnings
	broker   Broker

	mu  sync.RWMutex
	cfg Config
}

func NewService(log *logging.Logger, cfg Config, members Members, store Store, earnings Earnings, broker Broker) *Service {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	return &Service{
		log:      log,
		members:  members,
		store:    store,
		earnings: earnings,
		broker:   broker,
		cfg:      cfg,
	}
}

// ReloadConf updates the internal configuration.
func (s *Service) ReloadConf(cfg Config) {
	s.log.Info("reloading configuration")
	if s.log.GetLevel() != cfg.Level.Get() {
		s.log.Info("updating log level",
			logging.String("old", s.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		s.log.SetLevel(cfg.Level.Get())
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

func (s *Service) config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Submit validates and saves an order then generates its earnings. An
// unknown buyer is rejected before anything is written. Once the order is
// saved a failing generation no longer fails the submission.
func (s *Service) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	order := types.Order{
		BuyerCode: sub.BuyerCode,
		Items:     sub.Items,
	}
	if err := order.Validate(); err != nil {
		metrics.OrderCounterInc("rejected")
		return Receipt{}, err
	}

	buyer, err := s.members.GetByCode(ctx, sub.BuyerCode)
	if err != nil {
		metrics.OrderCounterInc("rejected")
		if errors.Is(err, types.ErrNotFound) {
			return Receipt{}, types.ErrBuyerNotFound
		}
		return Receipt{}, err
	}

	calc := s.earnings.Calculator()
	order.BuyerID = buyer.ID
	order.TotalAmount = calc.TotalAmount(order.Items)
	order.TotalDP = calc.TotalDP(order.Items)
	order.TotalPV = calc.OrderPV(order.Items)

	if err := s.store.Create(ctx, &order); err != nil {
		metrics.OrderCounterInc("failed")
		return Receipt{}, err
	}
	metrics.OrderCounterInc("accepted")

	log := s.log.With(logging.OrderID(order.ID), logging.MemberCode(order.BuyerCode))
	log.Info("order saved",
		logging.Int64("total-dp", order.TotalDP),
		logging.Int64("total-pv", order.TotalPV),
	)
	if s.broker != nil {
		s.broker.Send(events.NewOrderSubmitted(ctx, order))
	}

	receipt := Receipt{Order: order, Earnings: []types.EarningRecord{}}
	if !bool(s.config().GenerateEarnings) {
		return receipt, nil
	}

	res, err := s.earnings.Generate(ctx, &order, earnings.Options{})
	if err != nil {
		log.Error("order saved without earnings", logging.Error(err))
		receipt.EarningsError = err.Error()
		return receipt, nil
	}
	receipt.Earnings = res.Records
	return receipt, nil
}

func (s *Service) Get(ctx context.Context, id string) (types.Order, error) {
	return s.store.Get(ctx, id)
}
