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

package memstore_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"code.bundlemart.io/earnings/memstore"
	"code.bundlemart.io/earnings/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMembers(t *testing.T) {
	t.Run("code is unique", testMemberCodeUnique)
	t.Run("subtree queries are ordered by id", testMemberSubtreeQueries)
	t.Run("placement slot is unique among siblings", testPlacementSlotUnique)
	t.Run("series counter is atomic", testSeriesCounterAtomic)
}

func testMemberCodeUnique(t *testing.T) {
	ctx := context.Background()
	members := memstore.New().Members()

	m := types.Member{Code: "BM-A-000001"}
	require.NoError(t, members.Create(ctx, &m))
	assert.NotZero(t, m.ID)
	assert.False(t, m.CreatedAt.IsZero())

	dup := types.Member{Code: "BM-A-000001"}
	assert.ErrorIs(t, members.Create(ctx, &dup), types.ErrConflict)

	_, err := members.GetByCode(ctx, "BM-A-000404")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func testMemberSubtreeQueries(t *testing.T) {
	ctx := context.Background()
	members := memstore.New().Members()

	root := types.Member{Code: "R"}
	a := types.Member{Code: "A", ParentCode: strPtr("R"), AncestorCodes: []string{"R"}}
	b := types.Member{Code: "B", ParentCode: strPtr("R"), AncestorCodes: []string{"R"}}
	c := types.Member{Code: "C", ParentCode: strPtr("A"), AncestorCodes: []string{"A", "R"}}
	for _, m := range []*types.Member{&root, &a, &b, &c} {
		require.NoError(t, members.Create(ctx, m))
	}

	children, err := members.ListByParent(ctx, "R")
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "A", children[0].Code)
	assert.Equal(t, "B", children[1].Code)

	subtree, err := members.ListByAncestor(ctx, "R")
	require.NoError(t, err)
	assert.Len(t, subtree, 3)

	n, err := members.CountByAncestor(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func testPlacementSlotUnique(t *testing.T) {
	ctx := context.Background()
	members := memstore.New().Members()

	for _, code := range []string{"A", "B"} {
		m := types.Member{Code: code, ParentCode: strPtr("R"), AncestorCodes: []string{"R"}}
		require.NoError(t, members.Create(ctx, &m))
	}
	require.NoError(t, members.UpdatePlacement(ctx, "A", types.PlacementLeft))
	assert.ErrorIs(t, members.UpdatePlacement(ctx, "B", types.PlacementLeft), types.ErrConflict)
	require.NoError(t, members.UpdatePlacement(ctx, "B", types.PlacementRight))
	// moving itself to the slot it holds is fine
	require.NoError(t, members.UpdatePlacement(ctx, "A", types.PlacementLeft))
	assert.ErrorIs(t, members.UpdatePlacement(ctx, "Z", types.PlacementLeft), types.ErrNotFound)
}

func testSeriesCounterAtomic(t *testing.T) {
	ctx := context.Background()
	series := memstore.New().Series()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[int64]struct{}{}
	)
	for i := 0; i < 50; i++ {
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
	assert.Len(t, seen, 50)

	n, err := series.NextSequence(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestEarningsAndTransactions(t *testing.T) {
	t.Run("second self-PV record for an order conflicts", testSelfPVUnique)
	t.Run("failed transaction leaves nothing behind", testRollback)
	t.Run("committed transaction is visible", testCommit)
	t.Run("transaction reads committed writes of others", testReadCommitted)
	t.Run("conflicting commit undoes the applied writes", testCommitUndo)
	t.Run("orders are listed in chunks", testOrderChunks)
}

func selfPV(orderID string) *types.EarningRecord {
	return &types.EarningRecord{
		BeneficiaryCode: "B",
		OrderID:         orderID,
		Kind:            types.EarningKindSelfPV,
		Amount:          decimal.NewFromInt(240),
	}
}

func testSelfPVUnique(t *testing.T) {
	ctx := context.Background()
	earnings := memstore.New().Earnings()

	require.NoError(t, earnings.Create(ctx, selfPV("o1")))
	assert.ErrorIs(t, earnings.Create(ctx, selfPV("o1")), types.ErrConflict)

	// other kinds can repeat
	for i := 0; i < 2; i++ {
		require.NoError(t, earnings.Create(ctx, &types.EarningRecord{OrderID: "o1", Kind: types.EarningKindAncestorMatching, Level: i + 1}))
	}
	recs, err := earnings.ListByOrder(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, types.EarningKindSelfPV, recs[0].Kind)

	_, err = earnings.Get(ctx, "o2", types.EarningKindSelfPV)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func testRollback(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	earnings := store.Earnings()
	boom := errors.New("boom")

	err := store.RunInTx(ctx, func(ctx context.Context) error {
		require.NoError(t, earnings.Create(ctx, selfPV("o1")))
		// visible inside the transaction
		_, err := earnings.Get(ctx, "o1", types.EarningKindSelfPV)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = earnings.Get(ctx, "o1", types.EarningKindSelfPV)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func testCommit(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	earnings := store.Earnings()

	err := store.RunInTx(ctx, func(ctx context.Context) error {
		if err := earnings.Create(ctx, selfPV("o1")); err != nil {
			return err
		}
		// not visible outside until commit
		_, err := earnings.Get(context.Background(), "o1", types.EarningKindSelfPV)
		assert.ErrorIs(t, err, types.ErrNotFound)
		return nil
	})
	require.NoError(t, err)

	_, err = earnings.Get(ctx, "o1", types.EarningKindSelfPV)
	require.NoError(t, err)

	// a concurrent writer that committed first wins the constraint
	err = store.RunInTx(ctx, func(txCtx context.Context) error {
		if err := earnings.Create(txCtx, selfPV("o2")); err != nil {
			return err
		}
		return earnings.Create(ctx, selfPV("o2"))
	})
	assert.ErrorIs(t, err, types.ErrConflict)
	recs, err := earnings.ListByOrder(ctx, "o2")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func testReadCommitted(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	members := store.Members()
	orders := store.Orders()

	require.NoError(t, members.Create(ctx, &types.Member{Code: "R"}))

	err := store.RunInTx(ctx, func(txCtx context.Context) error {
		a := types.Member{Code: "A", ParentCode: strPtr("R"), AncestorCodes: []string{"R"}}
		if err := members.Create(txCtx, &a); err != nil {
			return err
		}
		// committed by someone else while the transaction runs
		b := types.Member{Code: "B", ParentCode: strPtr("R"), AncestorCodes: []string{"R"}}
		require.NoError(t, members.Create(ctx, &b))

		children, err := members.ListByParent(txCtx, "R")
		require.NoError(t, err)
		assert.Len(t, children, 2)

		outside, err := members.ListByParent(ctx, "R")
		require.NoError(t, err)
		require.Len(t, outside, 1)
		assert.Equal(t, "B", outside[0].Code)

		o := types.Order{ID: "o1", BuyerCode: "A"}
		if err := orders.Create(txCtx, &o); err != nil {
			return err
		}
		return orders.UpdateComputedFields(txCtx, "o1", types.OrderComputedFields{TotalPV: 40})
	})
	require.NoError(t, err)

	children, err := members.ListByParent(ctx, "R")
	require.NoError(t, err)
	assert.Len(t, children, 2)
	o, err := orders.Get(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, int64(40), o.TotalPV)
}

func testCommitUndo(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	members := store.Members()
	orders := store.Orders()
	earnings := store.Earnings()
	series := store.Series()

	require.NoError(t, members.Create(ctx, &types.Member{Code: "R"}))
	_, err := series.NextSequence(ctx, "A")
	require.NoError(t, err)

	err = store.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := series.NextSequence(txCtx, "A"); err != nil {
			return err
		}
		if err := members.UpdateActive(txCtx, "R", true); err != nil {
			return err
		}
		if err := orders.Create(txCtx, &types.Order{ID: "o1", BuyerCode: "R"}); err != nil {
			return err
		}
		if err := earnings.Create(txCtx, selfPV("o1")); err != nil {
			return err
		}
		// wins the self-PV constraint before the transaction commits
		return earnings.Create(ctx, selfPV("o1"))
	})
	assert.ErrorIs(t, err, types.ErrConflict)

	// writes replayed before the conflict are undone
	next, err := series.NextSequence(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, int64(2), next)
	r, err := members.GetByCode(ctx, "R")
	require.NoError(t, err)
	assert.False(t, r.Active)
	_, err = orders.Get(ctx, "o1")
	assert.ErrorIs(t, err, types.ErrNotFound)
	recs, err := earnings.ListByOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func testOrderChunks(t *testing.T) {
	ctx := context.Background()
	orders := memstore.New().Orders()

	for i := 0; i < 7; i++ {
		o := types.Order{ID: fmt.Sprintf("order-%02d", i), BuyerCode: "B"}
		require.NoError(t, orders.Create(ctx, &o))
	}

	var (
		after string
		seen  []string
	)
	for {
		chunk, err := orders.List(ctx, after, 3)
		require.NoError(t, err)
		if len(chunk) == 0 {
			break
		}
		for _, o := range chunk {
			seen = append(seen, o.ID)
		}
		after = chunk[len(chunk)-1].ID
	}
	assert.Len(t, seen, 7)
	assert.Equal(t, "order-00", seen[0])
	assert.Equal(t, "order-06", seen[6])

	require.NoError(t, orders.UpdateComputedFields(ctx, "order-03", types.OrderComputedFields{TotalPV: 300}))
	o, err := orders.Get(ctx, "order-03")
	require.NoError(t, err)
	assert.Equal(t, int64(300), o.TotalPV)
}
