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

package orders_test

import (
	"context"
	"errors"
	"testing"

	"code.bundlemart.io/earnings/commission"
	"code.bundlemart.io/earnings/earnings"
	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/memstore"
	"code.bundlemart.io/earnings/orders"
	"code.bundlemart.io/earnings/orders/mocks"
	"code.bundlemart.io/earnings/types"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testService struct {
	*orders.Service
	store  *memstore.Store
	broker *mocks.MockBroker
	ctx    context.Context
}

func getTestService(t *testing.T, cfg orders.Config) *testService {
	t.Helper()
	log := logging.NewTestLogger()
	store := memstore.New()
	broker := mocks.NewMockBroker(gomock.NewController(t))
	engine := earnings.New(log, earnings.NewDefaultConfig(), commission.NewDefaultConfig(),
		store.Members(), store.Orders(), store.Earnings(), store, nil)
	return &testService{
		Service: orders.NewService(log, cfg, store.Members(), store.Orders(), engine, broker),
		store:   store,
		broker:  broker,
		ctx:     context.Background(),
	}
}

func (ts *testService) seed(t *testing.T) {
	t.Helper()
	parent := "R"
	members := []types.Member{
		{Code: "R", AncestorCodes: []string{}, Active: true},
		{Code: "P", ParentCode: &parent, AncestorCodes: []string{"R"}, Active: true},
	}
	p := "P"
	members = append(members, types.Member{Code: "B", ParentCode: &p, AncestorCodes: []string{"P", "R"}, Active: true})
	for i := range members {
		require.NoError(t, ts.store.Members().Create(ts.ctx, &members[i]))
	}
}

func basket() []types.LineItem {
	return []types.LineItem{
		{ProductID: "bundle-a", UnitDP: 500, UnitMRP: 600, Qty: 2},
		{ProductID: "bundle-b", UnitDP: 250, UnitMRP: 300, Qty: 4},
	}
}

func TestSubmit(t *testing.T) {
	t.Run("order is priced, saved and credited", testSubmitGeneratesEarnings)
	t.Run("pv is capped on the stored order", testSubmitCapsPV)
	t.Run("unknown buyer is rejected before saving", testSubmitUnknownBuyer)
	t.Run("invalid items are rejected", testSubmitInvalid)
	t.Run("generation can be deferred to backfill", testSubmitWithoutGeneration)
	t.Run("generation failure keeps the order", testSubmitGenerationFailure)
}

func testSubmitGeneratesEarnings(t *testing.T) {
	ts := getTestService(t, orders.NewDefaultConfig())
	ts.seed(t)
	ts.broker.EXPECT().Send(gomock.Any()).Times(1)

	r, err := ts.Submit(ts.ctx, orders.Submission{BuyerCode: "B", Items: basket()})
	require.NoError(t, err)
	assert.NotEmpty(t, r.Order.ID)
	assert.Equal(t, int64(2400), r.Order.TotalAmount)
	assert.Equal(t, int64(2000), r.Order.TotalDP)
	assert.Equal(t, int64(200), r.Order.TotalPV)
	assert.Empty(t, r.EarningsError)
	assert.Len(t, r.Earnings, 4)

	stored, err := ts.Get(ts.ctx, r.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Order.TotalPV, stored.TotalPV)
	assert.Equal(t, int64(3), stored.BuyerID)

	recs, err := ts.store.Earnings().ListByOrder(ts.ctx, r.Order.ID)
	require.NoError(t, err)
	assert.Len(t, recs, 4)
}

func testSubmitCapsPV(t *testing.T) {
	ts := getTestService(t, orders.NewDefaultConfig())
	ts.seed(t)
	ts.broker.EXPECT().Send(gomock.Any()).Times(1)

	r, err := ts.Submit(ts.ctx, orders.Submission{
		BuyerCode: "R",
		Items:     []types.LineItem{{ProductID: "bundle-x", UnitDP: 60000, UnitMRP: 70000, Qty: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), r.Order.TotalPV)
	require.Len(t, r.Earnings, 1)
	assert.Equal(t, int64(5000), r.Earnings[0].PV)
	assert.Equal(t, "6000", r.Earnings[0].Amount.String())
}

func testSubmitUnknownBuyer(t *testing.T) {
	ts := getTestService(t, orders.NewDefaultConfig())
	ts.seed(t)

	_, err := ts.Submit(ts.ctx, orders.Submission{BuyerCode: "nobody", Items: basket()})
	assert.ErrorIs(t, err, types.ErrBuyerNotFound)
	assert.ErrorIs(t, err, types.ErrNotFound)

	list, err := ts.store.Orders().List(ts.ctx, "", 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func testSubmitInvalid(t *testing.T) {
	ts := getTestService(t, orders.NewDefaultConfig())
	ts.seed(t)

	_, err := ts.Submit(ts.ctx, orders.Submission{BuyerCode: "B"})
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = ts.Submit(ts.ctx, orders.Submission{
		BuyerCode: "B",
		Items:     []types.LineItem{{ProductID: "bundle-a", UnitDP: 500, Qty: 0}},
	})
	assert.ErrorIs(t, err, types.ErrValidation)
}

func testSubmitWithoutGeneration(t *testing.T) {
	cfg := orders.NewDefaultConfig()
	cfg.GenerateEarnings = false
	ts := getTestService(t, cfg)
	ts.seed(t)
	ts.broker.EXPECT().Send(gomock.Any()).Times(1)

	r, err := ts.Submit(ts.ctx, orders.Submission{BuyerCode: "B", Items: basket()})
	require.NoError(t, err)
	assert.Empty(t, r.Earnings)

	recs, err := ts.store.Earnings().ListByOrder(ts.ctx, r.Order.ID)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func testSubmitGenerationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := memstore.New()
	ctx := context.Background()
	engine := mocks.NewMockEarnings(ctrl)
	engine.EXPECT().Calculator().Return(commission.New(commission.NewDefaultConfig()))
	engine.EXPECT().Generate(gomock.Any(), gomock.Any(), earnings.Options{}).
		Return(earnings.Result{}, errors.New("ledger unavailable"))

	svc := orders.NewService(logging.NewTestLogger(), orders.NewDefaultConfig(),
		store.Members(), store.Orders(), engine, nil)
	buyer := types.Member{Code: "B", AncestorCodes: []string{}, Active: true}
	require.NoError(t, store.Members().Create(ctx, &buyer))

	r, err := svc.Submit(ctx, orders.Submission{BuyerCode: "B", Items: basket()})
	require.NoError(t, err)
	assert.Equal(t, "ledger unavailable", r.EarningsError)

	_, err = store.Orders().Get(ctx, r.Order.ID)
	assert.NoError(t, err)
}
