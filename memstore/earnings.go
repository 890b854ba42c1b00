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
	"golang.org/x/exp/slices"
)

var kindRank = map[types.EarningKind]int{
	types.EarningKindSelfPV:               0,
	types.EarningKindDirectReferral:       1,
	types.EarningKindAncestorMatching:     2,
	types.EarningKindSponsorMatchingBonus: 3,
}

type Earnings struct {
	store *Store
}

// Create appends a record to the ledger. A second self-PV record for the
// same order is a conflict.
func (e *Earnings) Create(ctx context.Context, rec *types.EarningRecord) error {
	if len(rec.ID) == 0 {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = e.store.now()
	}
	stored := *rec
	return e.store.write(ctx, func(v *view) error {
		if _, ok := get(v, earningsOf, stored.ID); ok {
			return types.ErrConflict
		}
		if stored.Kind == types.EarningKindSelfPV {
			if _, ok := get(v, selfPVOf, stored.OrderID); ok {
				return types.ErrConflict
			}
			put(v, selfPVOf, stored.OrderID, stored.ID)
		}
		put(v, earningsOf, stored.ID, stored)
		return nil
	})
}

// Get returns the first record of the given kind written for an order.
func (e *Earnings) Get(ctx context.Context, orderID string, kind types.EarningKind) (types.EarningRecord, error) {
	recs, err := e.list(ctx, func(r types.EarningRecord) bool {
		return r.OrderID == orderID && r.Kind == kind
	})
	if err != nil {
		return types.EarningRecord{}, err
	}
	if len(recs) == 0 {
		return types.EarningRecord{}, types.ErrNotFound
	}
	return recs[0], nil
}

func (e *Earnings) ListByOrder(ctx context.Context, orderID string) ([]types.EarningRecord, error) {
	return e.list(ctx, func(r types.EarningRecord) bool {
		return r.OrderID == orderID
	})
}

func (e *Earnings) ListByBeneficiary(ctx context.Context, code string) ([]types.EarningRecord, error) {
	return e.list(ctx, func(r types.EarningRecord) bool {
		return r.BeneficiaryCode == code
	})
}

func (e *Earnings) list(ctx context.Context, keep func(types.EarningRecord) bool) ([]types.EarningRecord, error) {
	out := []types.EarningRecord{}
	err := e.store.read(ctx, func(v *view) error {
		each(v, earningsOf, func(_ string, r types.EarningRecord) {
			if keep(r) {
				out = append(out, r)
			}
		})
		return nil
	})
	slices.SortFunc(out, func(a, b types.EarningRecord) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if ka, kb := kindRank[a.Kind], kindRank[b.Kind]; ka != kb {
			return ka - kb
		}
		if a.Level != b.Level {
			return a.Level - b.Level
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out, err
}
