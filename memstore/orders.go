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

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Orders struct {
	store *Store
}

// Create stores a new order, assigning an ID when it has none.
func (o *Orders) Create(ctx context.Context, order *types.Order) error {
	if len(order.ID) == 0 {
		order.ID = uuid.NewString()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = o.store.now()
	}
	stored := cloneOrder(*order)
	return o.store.write(ctx, func(v *view) error {
		if _, ok := get(v, ordersOf, stored.ID); ok {
			return types.ErrConflict
		}
		put(v, ordersOf, stored.ID, cloneOrder(stored))
		return nil
	})
}

func (o *Orders) Get(ctx context.Context, id string) (types.Order, error) {
	var out types.Order
	err := o.store.read(ctx, func(v *view) error {
		order, ok := get(v, ordersOf, id)
		if !ok {
			return types.ErrNotFound
		}
		out = cloneOrder(order)
		return nil
	})
	return out, err
}

// List returns at most limit orders with an ID greater than afterID, in ID
// order, for chunked scans.
func (o *Orders) List(ctx context.Context, afterID string, limit int) ([]types.Order, error) {
	out := []types.Order{}
	err := o.store.read(ctx, func(v *view) error {
		byID := map[string]types.Order{}
		each(v, ordersOf, func(id string, order types.Order) {
			if id > afterID {
				byID[id] = order
			}
		})
		ids := maps.Keys(byID)
		slices.Sort(ids)
		for _, id := range ids {
			if limit > 0 && len(out) >= limit {
				break
			}
			out = append(out, cloneOrder(byID[id]))
		}
		return nil
	})
	return out, err
}

func (o *Orders) UpdateComputedFields(ctx context.Context, id string, fields types.OrderComputedFields) error {
	return o.store.write(ctx, func(v *view) error {
		order, ok := get(v, ordersOf, id)
		if !ok {
			return types.ErrNotFound
		}
		order = cloneOrder(order)
		order.TotalPV = fields.TotalPV
		put(v, ordersOf, id, order)
		return nil
	})
}
