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

package tree_test

import (
	"context"
	"errors"
	"testing"

	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/memstore"
	"code.bundlemart.io/earnings/referral"
	"code.bundlemart.io/earnings/tree"
	"code.bundlemart.io/earnings/tree/mocks"
	"code.bundlemart.io/earnings/types"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testBuilder struct {
	*tree.Builder
	store    *memstore.Store
	registry *referral.Registry
	ctx      context.Context
}

func getTestBuilder(t *testing.T) *testBuilder {
	t.Helper()
	log := logging.NewTestLogger()
	store := memstore.New()
	return &testBuilder{
		Builder:  tree.New(log, tree.NewDefaultConfig(), store.Members()),
		store:    store,
		registry: referral.NewRegistry(log, referral.NewDefaultConfig(), store.Members(), store.Series()),
		ctx:      context.Background(),
	}
}

func (tb *testBuilder) register(t *testing.T, parent string) types.Member {
	t.Helper()
	m, err := tb.registry.Register(tb.ctx, referral.Registration{ParentCode: parent})
	require.NoError(t, err)
	return m
}

// seed builds
//
//	root
//	├── a
//	│   ├── c
//	│   │   └── f
//	│   └── d
//	└── b
//	    └── e
func (tb *testBuilder) seed(t *testing.T) map[string]types.Member {
	t.Helper()
	out := map[string]types.Member{}
	out["root"] = tb.register(t, "")
	out["a"] = tb.register(t, out["root"].Code)
	out["b"] = tb.register(t, out["root"].Code)
	out["c"] = tb.register(t, out["a"].Code)
	out["d"] = tb.register(t, out["a"].Code)
	out["e"] = tb.register(t, out["b"].Code)
	out["f"] = tb.register(t, out["c"].Code)
	return out
}

func TestHierarchy(t *testing.T) {
	t.Run("recursive and bulk builds are identical", testStrategiesEquivalent)
	t.Run("depth limit is honoured by both strategies", testDepthLimit)
	t.Run("children are ordered by id", testChildrenOrdered)
	t.Run("configured max depth caps requests", testConfiguredMaxDepth)
	t.Run("leaf member has no children", testLeaf)
	t.Run("unknown root", testUnknownRoot)
}

func testStrategiesEquivalent(t *testing.T) {
	tb := getTestBuilder(t)
	ms := tb.seed(t)

	for _, root := range []string{"root", "a", "b", "f"} {
		rec, err := tb.BuildRecursive(tb.ctx, ms[root].Code, 0)
		require.NoError(t, err)
		bulk, err := tb.BuildBulk(tb.ctx, ms[root].Code, 0)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(rec, bulk), "root %s", root)
	}

	full, err := tb.Hierarchy(tb.ctx, ms["root"].Code, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, full.Size())
	assert.Len(t, full.Edges(), 6)
}

func testDepthLimit(t *testing.T) {
	tb := getTestBuilder(t)
	ms := tb.seed(t)

	for depth, size := range map[int]int{1: 3, 2: 6, 3: 7, 10: 7} {
		rec, err := tb.BuildRecursive(tb.ctx, ms["root"].Code, depth)
		require.NoError(t, err)
		bulk, err := tb.BuildBulk(tb.ctx, ms["root"].Code, depth)
		require.NoError(t, err)
		assert.Equal(t, size, rec.Size(), "depth %d", depth)
		assert.Empty(t, cmp.Diff(rec, bulk), "depth %d", depth)
	}
}

func testChildrenOrdered(t *testing.T) {
	tb := getTestBuilder(t)
	ms := tb.seed(t)

	n, err := tb.BuildBulk(tb.ctx, ms["root"].Code, 0)
	require.NoError(t, err)
	require.Len(t, n.Children, 2)
	assert.Equal(t, ms["a"].Code, n.Children[0].Member.Code)
	assert.Equal(t, ms["b"].Code, n.Children[1].Member.Code)
	assert.Equal(t, 1, n.Children[0].Depth)
	assert.Equal(t, ms["f"].Code, n.Children[0].Children[0].Children[0].Member.Code)
	assert.Equal(t, 3, n.Children[0].Children[0].Children[0].Depth)
}

func testConfiguredMaxDepth(t *testing.T) {
	tb := getTestBuilder(t)
	ms := tb.seed(t)

	cfg := tree.NewDefaultConfig()
	cfg.MaxDepth = 1
	tb.ReloadConf(cfg)

	n, err := tb.Hierarchy(tb.ctx, ms["root"].Code, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n.Size())

	n, err = tb.Hierarchy(tb.ctx, ms["root"].Code, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, n.Size())
}

func testLeaf(t *testing.T) {
	tb := getTestBuilder(t)
	ms := tb.seed(t)

	n, err := tb.Hierarchy(tb.ctx, ms["e"].Code, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n.Size())
	assert.NotNil(t, n.Children)
	assert.Empty(t, n.Children)
}

func testUnknownRoot(t *testing.T) {
	tb := getTestBuilder(t)

	_, err := tb.BuildRecursive(tb.ctx, "BM-A-999999", 0)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = tb.BuildBulk(tb.ctx, "BM-A-999999", 0)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestBinary(t *testing.T) {
	t.Run("projects placement sides", testBinaryProjection)
	t.Run("unplaced children are left out", testBinaryUnplaced)
}

func testBinaryProjection(t *testing.T) {
	tb := getTestBuilder(t)
	ms := tb.seed(t)

	require.NoError(t, tb.registry.SetPlacement(tb.ctx, ms["a"].Code, types.PlacementRight))
	require.NoError(t, tb.registry.SetPlacement(tb.ctx, ms["b"].Code, types.PlacementLeft))
	require.NoError(t, tb.registry.SetPlacement(tb.ctx, ms["c"].Code, types.PlacementLeft))
	require.NoError(t, tb.registry.SetPlacement(tb.ctx, ms["d"].Code, types.PlacementRight))

	bn, err := tb.Binary(tb.ctx, ms["root"].Code, 0)
	require.NoError(t, err)
	require.NotNil(t, bn.Left)
	require.NotNil(t, bn.Right)
	assert.Equal(t, ms["b"].Code, bn.Left.Member.Code)
	assert.Equal(t, ms["a"].Code, bn.Right.Member.Code)
	assert.Equal(t, ms["c"].Code, bn.Right.Left.Member.Code)
	assert.Equal(t, ms["d"].Code, bn.Right.Right.Member.Code)
	// e and f have no placement
	assert.Nil(t, bn.Left.Left)
	assert.Nil(t, bn.Right.Left.Left)
	assert.Equal(t, 5, bn.Size())
}

func testBinaryUnplaced(t *testing.T) {
	tb := getTestBuilder(t)
	ms := tb.seed(t)

	bn, err := tb.Binary(tb.ctx, ms["root"].Code, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, bn.Size())
}

func TestStrategySelection(t *testing.T) {
	t.Run("large subtrees are built in bulk", testLargeSubtreeUsesBulk)
	t.Run("small subtrees are built recursively", testSmallSubtreeUsesRecursive)
	t.Run("count failure is returned", testCountFailure)
	t.Run("parse strategy", testParseStrategy)
}

func getMockedBuilder(t *testing.T) (*tree.Builder, *mocks.MockMembers) {
	t.Helper()
	ctrl := gomock.NewController(t)
	members := mocks.NewMockMembers(ctrl)
	return tree.New(logging.NewTestLogger(), tree.NewDefaultConfig(), members), members
}

func testLargeSubtreeUsesBulk(t *testing.T) {
	b, members := getMockedBuilder(t)
	ctx := context.Background()
	root := types.Member{ID: 1, Code: "BM-A-000001", AncestorCodes: []string{}}

	members.EXPECT().CountByAncestor(gomock.Any(), root.Code).Return(1000, nil)
	members.EXPECT().GetByCode(gomock.Any(), root.Code).Return(root, nil)
	members.EXPECT().ListByAncestor(gomock.Any(), root.Code).Return([]types.Member{}, nil)

	n, err := b.Hierarchy(ctx, root.Code, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n.Size())
}

func testSmallSubtreeUsesRecursive(t *testing.T) {
	b, members := getMockedBuilder(t)
	ctx := context.Background()
	root := types.Member{ID: 1, Code: "BM-A-000001", AncestorCodes: []string{}}

	members.EXPECT().CountByAncestor(gomock.Any(), root.Code).Return(999, nil)
	members.EXPECT().GetByCode(gomock.Any(), root.Code).Return(root, nil)
	members.EXPECT().ListByParent(gomock.Any(), root.Code).Return([]types.Member{}, nil)

	n, err := b.Hierarchy(ctx, root.Code, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n.Size())
}

func testCountFailure(t *testing.T) {
	b, members := getMockedBuilder(t)
	boom := errors.New("connection reset")
	members.EXPECT().CountByAncestor(gomock.Any(), gomock.Any()).Return(0, boom)

	_, err := b.Hierarchy(context.Background(), "BM-A-000001", 0)
	assert.ErrorIs(t, err, boom)
}

func testParseStrategy(t *testing.T) {
	s, err := tree.ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, tree.StrategyAuto, s)

	s, err = tree.ParseStrategy("bulk")
	require.NoError(t, err)
	assert.Equal(t, tree.StrategyBulk, s)

	_, err = tree.ParseStrategy("sideways")
	assert.ErrorIs(t, err, types.ErrValidation)
}
