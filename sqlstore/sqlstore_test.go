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

package sqlstore_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"code.bundlemart.io/earnings/commission"
	"code.bundlemart.io/earnings/earnings"
	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/sqlstore"
	"code.bundlemart.io/earnings/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tests in this package need a postgres; they download and start an
// embedded one when EARNINGS_SQL_TESTS=1 and are skipped otherwise.
var connectionSource *sqlstore.ConnectionSource

func TestMain(m *testing.M) {
	if os.Getenv("EARNINGS_SQL_TESTS") != "1" {
		os.Exit(m.Run())
	}

	log := logging.NewTestLogger()
	cfg := sqlstore.NewDefaultConfig()
	cfg.ConnectionConfig.Port = 25432
	cfg.ConnectionConfig.Host = "localhost"

	dir, err := os.MkdirTemp("", "earnings-sqlstore")
	if err != nil {
		panic(err)
	}

	db, err := sqlstore.StartEmbeddedPostgres(log, cfg,
		filepath.Join(dir, "runtime"), filepath.Join(dir, "data"), nil)
	if err != nil {
		panic(err)
	}

	code := func() int {
		defer os.RemoveAll(dir)
		defer db.Stop()

		if err := sqlstore.MigrateToLatestSchema(log, cfg); err != nil {
			panic(fmt.Sprintf("failed to migrate: %v", err))
		}
		connectionSource, err = sqlstore.NewConnectionSource(context.Background(), log, cfg.ConnectionConfig)
		if err != nil {
			panic(err)
		}
		defer connectionSource.Close()
		return m.Run()
	}()
	os.Exit(code)
}

func setup(t *testing.T) context.Context {
	t.Helper()
	if connectionSource == nil {
		t.Skip("set EARNINGS_SQL_TESTS=1 to run the postgres tests")
	}
	ctx := context.Background()
	require.NoError(t, sqlstore.DeleteEverything(ctx, connectionSource))
	return ctx
}

func addChain(t *testing.T, ctx context.Context, codes ...string) []types.Member {
	t.Helper()
	members := sqlstore.NewMembers(connectionSource)
	out := make([]types.Member, 0, len(codes))
	ancestors := []string{}
	for i, code := range codes {
		m := types.Member{Code: code, AncestorCodes: append([]string{}, ancestors...), Active: true}
		if i > 0 {
			parent := codes[i-1]
			m.ParentCode = &parent
		}
		require.NoError(t, members.Create(ctx, &m))
		out = append(out, m)
		ancestors = append([]string{code}, ancestors...)
	}
	return out
}

func TestMembers(t *testing.T) {
	ctx := setup(t)
	members := sqlstore.NewMembers(connectionSource)
	chain := addChain(t, ctx, "BM-A-000001", "BM-A-000002", "BM-A-000003")

	got, err := members.GetByCode(ctx, "BM-A-000003")
	require.NoError(t, err)
	assert.Equal(t, chain[2].ID, got.ID)
	assert.Equal(t, []string{"BM-A-000002", "BM-A-000001"}, got.AncestorCodes)
	assert.Equal(t, "BM-A-000002", got.Parent())

	_, err = members.GetByCode(ctx, "BM-A-999999")
	assert.ErrorIs(t, err, types.ErrNotFound)

	dup := types.Member{Code: "BM-A-000001", AncestorCodes: []string{}}
	assert.ErrorIs(t, members.Create(ctx, &dup), types.ErrConflict)

	sub, err := members.ListByAncestor(ctx, "BM-A-000001")
	require.NoError(t, err)
	assert.Len(t, sub, 2)
	n, err := members.CountByAncestor(ctx, "BM-A-000001")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	children, err := members.ListByParent(ctx, "BM-A-000001")
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "BM-A-000002", children[0].Code)

	require.NoError(t, members.UpdatePlacement(ctx, "BM-A-000002", types.PlacementLeft))
	require.NoError(t, members.UpdateActive(ctx, "BM-A-000002", false))
	got, err = members.GetByCode(ctx, "BM-A-000002")
	require.NoError(t, err)
	assert.Equal(t, types.PlacementLeft, got.PlacementSide)
	assert.False(t, got.Active)

	assert.ErrorIs(t, members.UpdateActive(ctx, "BM-A-999999", true), types.ErrNotFound)
}

func TestPlacementSlotIsUnique(t *testing.T) {
	ctx := setup(t)
	members := sqlstore.NewMembers(connectionSource)
	chain := addChain(t, ctx, "BM-A-000001", "BM-A-000002")
	parent := chain[0].Code
	sibling := types.Member{Code: "BM-A-000003", ParentCode: &parent, AncestorCodes: []string{parent}}
	require.NoError(t, members.Create(ctx, &sibling))

	require.NoError(t, members.UpdatePlacement(ctx, "BM-A-000002", types.PlacementRight))
	err := members.UpdatePlacement(ctx, "BM-A-000003", types.PlacementRight)
	assert.ErrorIs(t, err, types.ErrConflict)
}

func TestSeriesSequenceIsAtomic(t *testing.T) {
	ctx := setup(t)
	series := sqlstore.NewSeries(connectionSource)

	var (
		mu   sync.Mutex
		seen = map[int64]struct{}{}
		wg   sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := series.NextSequence(ctx, "A")
			assert.NoError(t, err)
			mu.Lock()
			seen[n] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 20)

	n, err := series.NextSequence(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestOrders(t *testing.T) {
	ctx := setup(t)
	orders := sqlstore.NewOrders(connectionSource)

	o := types.Order{
		BuyerID:   1,
		BuyerCode: "BM-A-000001",
		Items:     []types.LineItem{{ProductID: "bundle-a", UnitDP: 500, UnitMRP: 600, Qty: 2}},
		TotalDP:   1000,
		TotalPV:   100,
	}
	require.NoError(t, orders.Create(ctx, &o))
	assert.NotEmpty(t, o.ID)

	got, err := orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.Items, got.Items)
	assert.Equal(t, int64(100), got.TotalPV)

	require.NoError(t, orders.UpdateComputedFields(ctx, o.ID, types.OrderComputedFields{TotalPV: 90}))
	got, err = orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(90), got.TotalPV)

	list, err := orders.List(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = orders.List(ctx, o.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = orders.Get(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSelfPVIsUniquePerOrder(t *testing.T) {
	ctx := setup(t)
	addChain(t, ctx, "BM-A-000001")
	orders := sqlstore.NewOrders(connectionSource)
	ledger := sqlstore.NewEarnings(connectionSource)

	o := types.Order{BuyerCode: "BM-A-000001", Items: []types.LineItem{{ProductID: "p", UnitDP: 1000, Qty: 1}}}
	require.NoError(t, orders.Create(ctx, &o))

	rec := func() *types.EarningRecord {
		return &types.EarningRecord{
			BeneficiaryCode: "BM-A-000001",
			SourceBuyerCode: "BM-A-000001",
			OrderID:         o.ID,
			Kind:            types.EarningKindSelfPV,
			PercentApplied:  decimal.RequireFromString("1.2"),
			PV:              100,
			Amount:          decimal.RequireFromString("120"),
		}
	}
	require.NoError(t, ledger.Create(ctx, rec()))
	assert.ErrorIs(t, ledger.Create(ctx, rec()), types.ErrConflict)

	got, err := ledger.Get(ctx, o.ID, types.EarningKindSelfPV)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("120").Equal(got.Amount))
	assert.True(t, decimal.RequireFromString("1.2").Equal(got.PercentApplied))
}

func TestRunInTxRollsBack(t *testing.T) {
	ctx := setup(t)
	members := sqlstore.NewMembers(connectionSource)
	boom := errors.New("boom")

	err := connectionSource.RunInTx(ctx, func(ctx context.Context) error {
		m := types.Member{Code: "BM-A-000001", AncestorCodes: []string{}}
		if err := members.Create(ctx, &m); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = members.GetByCode(ctx, "BM-A-000001")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestEngineOnPostgres(t *testing.T) {
	ctx := setup(t)
	addChain(t, ctx, "R", "P", "B")
	members := sqlstore.NewMembers(connectionSource)
	orders := sqlstore.NewOrders(connectionSource)
	ledger := sqlstore.NewEarnings(connectionSource)

	engine := earnings.New(logging.NewTestLogger(), earnings.NewDefaultConfig(), commission.NewDefaultConfig(),
		members, orders, ledger, connectionSource, nil)

	o := types.Order{
		BuyerCode: "B",
		Items: []types.LineItem{
			{ProductID: "bundle-a", UnitDP: 500, UnitMRP: 600, Qty: 2},
			{ProductID: "bundle-b", UnitDP: 250, UnitMRP: 300, Qty: 4},
		},
		TotalDP: 2000,
		TotalPV: 200,
	}
	require.NoError(t, orders.Create(ctx, &o))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		generated int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := engine.GenerateForOrder(ctx, o.ID, earnings.Options{})
			assert.NoError(t, err)
			if !res.AlreadyGenerated {
				mu.Lock()
				generated++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, generated)

	recs, err := ledger.ListByOrder(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, recs, 4)
	assert.Equal(t, types.EarningKindSelfPV, recs[0].Kind)
	assert.Equal(t, types.EarningKindDirectReferral, recs[1].Kind)
	assert.Equal(t, "240", recs[1].Amount.String())
	assert.Equal(t, 1, recs[2].Level)
	assert.Equal(t, 2, recs[3].Level)
	assert.Equal(t, "120", recs[3].Amount.String())
}
