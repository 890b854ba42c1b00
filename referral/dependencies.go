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

package referral

import (
	"context"

	"code.bundlemart.io/earnings/events"
	"code.bundlemart.io/earnings/types"
)

//go:generate go run github.com/golang/mock/mockgen -destination mocks/mocks.go -package mocks code.bundlemart.io/earnings/referral MemberStore,SeriesCounter,Broker

// MemberStore persists members. Create must fail with types.ErrConflict when
// the code, or the placement slot under the same parent, is already used.
type MemberStore interface {
	GetByCode(ctx context.Context, code string) (types.Member, error)
	ListByParent(ctx context.Context, parentCode string) ([]types.Member, error)
	ListByAncestor(ctx context.Context, ancestorCode string) ([]types.Member, error)
	CountByAncestor(ctx context.Context, ancestorCode string) (int, error)
	Create(ctx context.Context, m *types.Member) error
	UpdatePlacement(ctx context.Context, code string, side types.PlacementSide) error
	UpdateActive(ctx context.Context, code string, active bool) error
}

// SeriesCounter hands out sequence numbers, atomically per series.
type SeriesCounter interface {
	NextSequence(ctx context.Context, series string) (int64, error)
}

type Broker interface {
	Send(event events.Event)
}
