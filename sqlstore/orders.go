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

package sqlstore

import (
	"context"

	"code.bundlemart.io/earnings/metrics"
	"code.bundlemart.io/earnings/types"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/google/uuid"
)

const orderColumns = `id, buyer_id, buyer_code, items, total_amount, total_dp, total_pv, created_at`

type Orders struct {
	*ConnectionSource
}

func NewOrders(connectionSource *ConnectionSource) *Orders {
	return &Orders{
		ConnectionSource: connectionSource,
	}
}

func (os *Orders) Create(ctx context.Context, o *types.Order) error {
	defer metrics.StartSQLQuery("Orders", "Create")()
	if len(o.ID) == 0 {
		o.ID = uuid.NewString()
	}
	row := os.conn(ctx).QueryRow(ctx, `
		INSERT INTO orders (id, buyer_id, buyer_code, items, total_amount, total_dp, total_pv)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		o.ID,
		o.BuyerID,
		o.BuyerCode,
		o.Items,
		o.TotalAmount,
		o.TotalDP,
		o.TotalPV,
	)
	return wrapE(row.Scan(&o.CreatedAt))
}

func (os *Orders) Get(ctx context.Context, id string) (types.Order, error) {
	defer metrics.StartSQLQuery("Orders", "Get")()
	o := types.Order{}
	err := pgxscan.Get(ctx, os.conn(ctx), &o,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return o, wrapE(err)
}

// List returns at most limit orders with an ID greater than afterID, in ID
// order. A limit of 0 returns everything.
func (os *Orders) List(ctx context.Context, afterID string, limit int) ([]types.Order, error) {
	defer metrics.StartSQLQuery("Orders", "List")()
	orders := []types.Order{}
	err := pgxscan.Select(ctx, os.conn(ctx), &orders,
		`SELECT `+orderColumns+` FROM orders WHERE id > $1 ORDER BY id LIMIT NULLIF($2::INT, 0)`,
		afterID, limit)
	return orders, wrapE(err)
}

func (os *Orders) UpdateComputedFields(ctx context.Context, id string, fields types.OrderComputedFields) error {
	defer metrics.StartSQLQuery("Orders", "UpdateComputedFields")()
	tag, err := os.conn(ctx).Exec(ctx,
		`UPDATE orders SET total_pv = $2 WHERE id = $1`, id, fields.TotalPV)
	if err != nil {
		return wrapE(err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
