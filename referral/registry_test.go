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

package referral_test

import (
	"context"
	"errors"
	"testing"

	"code.bundlemart.io/earnings/events"
	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/referral"
	"code.bundlemart.io/earnings/referral/mocks"
	"code.bundlemart.io/earnings/types"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRegistry struct {
	*referral.Registry
	ctrl    *gomock.Controller
	members *mocks.MockMemberStore
	counter *mocks.MockSeriesCounter
}

func getTestRegistry(t *testing.T) *testRegistry {
	t.Helper()
	ctrl := gomock.NewController(t)
	members := mocks.NewMockMemberStore(ctrl)
	counter := mocks.NewMockSeriesCounter(ctrl)
	cfg := referral.NewDefaultConfig()
	cfg.MaxCodeRetries = 2
	return &testRegistry{
		Registry: referral.NewRegistry(logging.NewTestLogger(), cfg, members, counter),
		ctrl:     ctrl,
		members:  members,
		counter:  counter,
	}
}

func strPtr(s string) *string { return &s }

func TestRegister(t *testing.T) {
	t.Run("root uses the default series", testRegisterRoot)
	t.Run("child inherits series and ancestors", testRegisterChild)
	t.Run("unknown parent is a not found error", testRegisterUnknownParent)
	t.Run("malformed parent code is a validation error", testRegisterMalformedParent)
	t.Run("code collision is retried", testRegisterRetriesOnConflict)
	t.Run("storage failure is not retried", testRegisterStorageFailure)
	t.Run("new members are announced", testRegisterAnnounces)
}

func testRegisterAnnounces(t *testing.T) {
	r := getTestRegistry(t)
	ctx := context.Background()
	broker := mocks.NewMockBroker(r.ctrl)
	r.WithBroker(broker)

	r.counter.EXPECT().NextSequence(ctx, "A").Return(int64(7), nil)
	r.members.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	broker.EXPECT().Send(gomock.Any()).Do(func(evt events.Event) {
		assert.Equal(t, events.MemberRegisteredEvent, evt.Type())
		assert.Equal(t, "BM-A-000007", evt.Key())
	})

	_, err := r.Register(ctx, referral.Registration{})
	require.NoError(t, err)
}

func testRegisterRoot(t *testing.T) {
	r := getTestRegistry(t)
	ctx := context.Background()

	r.counter.EXPECT().NextSequence(ctx, "A").Return(int64(1), nil)
	r.members.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, m *types.Member) error {
		m.ID = 1
		return nil
	})

	m, err := r.Register(ctx, referral.Registration{Name: "root"})
	require.NoError(t, err)
	assert.Equal(t, "BM-A-000001", m.Code)
	assert.Equal(t, int64(1), m.ID)
	assert.Nil(t, m.ParentCode)
	assert.Empty(t, m.AncestorCodes)
	assert.True(t, m.Active)
}

func testRegisterChild(t *testing.T) {
	r := getTestRegistry(t)
	ctx := context.Background()

	parent := types.Member{
		ID:            7,
		Code:          "BM-C-000007",
		ParentCode:    strPtr("BM-C-000002"),
		AncestorCodes: []string{"BM-C-000002", "BM-C-000001"},
	}
	r.members.EXPECT().GetByCode(ctx, parent.Code).Return(parent, nil)
	r.counter.EXPECT().NextSequence(ctx, "C").Return(int64(12), nil)
	r.members.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	m, err := r.Register(ctx, referral.Registration{ParentCode: parent.Code, Name: "child"})
	require.NoError(t, err)
	assert.Equal(t, "BM-C-000012", m.Code)
	assert.Equal(t, parent.Code, m.Parent())
	assert.Equal(t, []string{"BM-C-000007", "BM-C-000002", "BM-C-000001"}, m.AncestorCodes)
}

func testRegisterUnknownParent(t *testing.T) {
	r := getTestRegistry(t)
	ctx := context.Background()

	r.members.EXPECT().GetByCode(ctx, "BM-A-000099").Return(types.Member{}, types.ErrNotFound)

	_, err := r.Register(ctx, referral.Registration{ParentCode: "BM-A-000099"})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func testRegisterMalformedParent(t *testing.T) {
	r := getTestRegistry(t)
	ctx := context.Background()

	r.members.EXPECT().GetByCode(ctx, "legacy-7").Return(types.Member{ID: 7, Code: "legacy-7"}, nil)

	_, err := r.Register(ctx, referral.Registration{ParentCode: "legacy-7"})
	assert.ErrorIs(t, err, types.ErrValidation)
}

func testRegisterRetriesOnConflict(t *testing.T) {
	r := getTestRegistry(t)
	ctx := context.Background()

	gomock.InOrder(
		r.counter.EXPECT().NextSequence(ctx, "A").Return(int64(3), nil),
		r.members.EXPECT().Create(ctx, gomock.Any()).Return(types.ErrConflict),
		r.counter.EXPECT().NextSequence(ctx, "A").Return(int64(4), nil),
		r.members.EXPECT().Create(ctx, gomock.Any()).Return(nil),
	)

	m, err := r.Register(ctx, referral.Registration{})
	require.NoError(t, err)
	assert.Equal(t, "BM-A-000004", m.Code)
}

func testRegisterStorageFailure(t *testing.T) {
	r := getTestRegistry(t)
	ctx := context.Background()
	boom := errors.New("connection reset")

	r.counter.EXPECT().NextSequence(ctx, "A").Return(int64(0), boom).Times(1)

	_, err := r.Register(ctx, referral.Registration{})
	assert.ErrorIs(t, err, boom)
}

func TestSetPlacement(t *testing.T) {
	ctx := context.Background()
	child := types.Member{Code: "BM-A-000002", ParentCode: strPtr("BM-A-000001")}
	sibling := types.Member{Code: "BM-A-000003", ParentCode: strPtr("BM-A-000001"), PlacementSide: types.PlacementLeft}

	t.Run("free slot is assigned", func(t *testing.T) {
		r := getTestRegistry(t)
		r.members.EXPECT().GetByCode(ctx, child.Code).Return(child, nil)
		r.members.EXPECT().ListByParent(ctx, "BM-A-000001").Return([]types.Member{child, sibling}, nil)
		r.members.EXPECT().UpdatePlacement(ctx, child.Code, types.PlacementRight).Return(nil)
		require.NoError(t, r.SetPlacement(ctx, child.Code, types.PlacementRight))
	})

	t.Run("occupied slot is rejected", func(t *testing.T) {
		r := getTestRegistry(t)
		r.members.EXPECT().GetByCode(ctx, child.Code).Return(child, nil)
		r.members.EXPECT().ListByParent(ctx, "BM-A-000001").Return([]types.Member{child, sibling}, nil)
		err := r.SetPlacement(ctx, child.Code, types.PlacementLeft)
		assert.ErrorIs(t, err, types.ErrConflict)
	})

	t.Run("clearing never checks siblings", func(t *testing.T) {
		r := getTestRegistry(t)
		r.members.EXPECT().GetByCode(ctx, sibling.Code).Return(sibling, nil)
		r.members.EXPECT().UpdatePlacement(ctx, sibling.Code, types.PlacementNone).Return(nil)
		require.NoError(t, r.SetPlacement(ctx, sibling.Code, types.PlacementNone))
	})

	t.Run("invalid side and root are rejected", func(t *testing.T) {
		r := getTestRegistry(t)
		assert.ErrorIs(t, r.SetPlacement(ctx, child.Code, "up"), types.ErrValidation)

		r.members.EXPECT().GetByCode(ctx, "BM-A-000001").Return(types.Member{Code: "BM-A-000001"}, nil)
		assert.ErrorIs(t, r.SetPlacement(ctx, "BM-A-000001", types.PlacementLeft), referral.ErrRootHasNoPlacement)
	})
}

func TestSetActive(t *testing.T) {
	r := getTestRegistry(t)
	ctx := context.Background()
	r.members.EXPECT().UpdateActive(ctx, "BM-A-000002", false).Return(nil)
	require.NoError(t, r.SetActive(ctx, "BM-A-000002", false))

	r.members.EXPECT().UpdateActive(ctx, "BM-A-000404", true).Return(types.ErrNotFound)
	assert.ErrorIs(t, r.SetActive(ctx, "BM-A-000404", true), types.ErrNotFound)
}
