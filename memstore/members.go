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

package memstore

import (
	"context"

	"code.bundlemart.io/earnings/types"

	"golang.org/x/exp/slices"
)

type Members struct {
	store *Store
}

func (m *Members) GetByCode(ctx context.Context, code string) (types.Member, error) {
	var out types.Member
	err := m.store.read(ctx, func(v *view) error {
		mem, ok := get(v, membersOf, code)
		if !ok {
			return types.ErrNotFound
		}
		out = mem.Clone()
		return nil
	})
	return out, err
}

func (m *Members) ListByParent(ctx context.Context, parentCode string) ([]types.Member, error) {
	return m.filter(ctx, func(mem types.Member) bool {
		return mem.Parent() == parentCode
	})
}

func (m *Members) ListByAncestor(ctx context.Context, ancestorCode string) ([]types.Member, error) {
	return m.filter(ctx, func(mem types.Member) bool {
		return slices.Contains(mem.AncestorCodes, ancestorCode)
	})
}

func (m *Members) CountByAncestor(ctx context.Context, ancestorCode string) (int, error) {
	out, err := m.ListByAncestor(ctx, ancestorCode)
	return len(out), err
}

func (m *Members) filter(ctx context.Context, keep func(types.Member) bool) ([]types.Member, error) {
	out := []types.Member{}
	err := m.store.read(ctx, func(v *view) error {
		each(v, membersOf, func(_ string, mem types.Member) {
			if keep(mem) {
				out = append(out, mem.Clone())
			}
		})
		return nil
	})
	slices.SortFunc(out, func(a, b types.Member) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out, err
}

// Create stores a new member, assigning its ID and creation time.
func (m *Members) Create(ctx context.Context, mem *types.Member) error {
	if mem.CreatedAt.IsZero() {
		mem.CreatedAt = m.store.now()
	}
	mem.ID = m.store.memberIDs.Inc()
	stored := mem.Clone()
	return m.store.write(ctx, func(v *view) error {
		if _, ok := get(v, membersOf, stored.Code); ok {
			return types.ErrConflict
		}
		if slotTaken(v, stored.Code, stored.Parent(), stored.PlacementSide) {
			return types.ErrConflict
		}
		put(v, membersOf, stored.Code, stored.Clone())
		return nil
	})
}

func (m *Members) UpdatePlacement(ctx context.Context, code string, side types.PlacementSide) error {
	return m.store.write(ctx, func(v *view) error {
		mem, ok := get(v, membersOf, code)
		if !ok {
			return types.ErrNotFound
		}
		if slotTaken(v, code, mem.Parent(), side) {
			return types.ErrConflict
		}
		mem = mem.Clone()
		mem.PlacementSide = side
		put(v, membersOf, code, mem)
		return nil
	})
}

func (m *Members) UpdateActive(ctx context.Context, code string, active bool) error {
	return m.store.write(ctx, func(v *view) error {
		mem, ok := get(v, membersOf, code)
		if !ok {
			return types.ErrNotFound
		}
		mem = mem.Clone()
		mem.Active = active
		put(v, membersOf, code, mem)
		return nil
	})
}

// slotTaken mirrors the partial unique index on (parent_code, placement_side).
func slotTaken(v *view, code, parent string, side types.PlacementSide) bool {
	if side == types.PlacementNone || len(parent) == 0 {
		return false
	}
	taken := false
	each(v, membersOf, func(_ string, other types.Member) {
		if other.Code != code && other.Parent() == parent && other.PlacementSide == side {
			taken = true
		}
	})
	return taken
}

// Series is the per series sequence counter.
type Series struct {
	store *Store
}

func (s *Series) NextSequence(ctx context.Context, series string) (int64, error) {
	var next int64
	err := s.store.write(ctx, func(v *view) error {
		cur, _ := get(v, countersOf, series)
		next = cur + 1
		put(v, countersOf, series, next)
		return nil
	})
	return next, err
}
