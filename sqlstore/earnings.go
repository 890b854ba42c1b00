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

const (
	earningColumns = `id, beneficiary_code, source_buyer_code, order_id, kind, level, percent_applied, pv, amount, created_at`

	earningOrdering = `ORDER BY created_at,
		CASE kind
			WHEN 'self_pv' THEN 0
			WHEN 'direct_referral' THEN 1
			WHEN 'ancestor_matching' THEN 2
			ELSE 3
		END,
		level, id`
)

// Earnings is the append only ledger of earning records.
type Earnings struct {
	*ConnectionSource
}

func NewEarnings(connectionSource *ConnectionSource) *Earnings {
	return &Earnings{
		ConnectionSource: connectionSource,
	}
}

// Create appends a record. A second self-PV record for an order violates
// earnings_self_pv_once_idx and is returned as types.ErrConflict.
func (es *Earnings) Create(ctx context.Context, rec *types.EarningRecord) error {
	defer metrics.StartSQLQuery("Earnings", "Create")()
	if !rec.Kind.IsValid() {
		return types.NewValidationError("unknown earning kind %q", rec.Kind)
	}
	if len(rec.ID) == 0 {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		row := es.conn(ctx).QueryRow(ctx, `
			INSERT INTO earnings (id, beneficiary_code, source_buyer_code, order_id, kind, level, percent_applied, pv, amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING created_at`,
			rec.ID, rec.BeneficiaryCode, rec.SourceBuyerCode, rec.OrderID, string(rec.Kind),
			rec.Level, rec.PercentApplied, rec.PV, rec.Amount,
		)
		return wrapE(row.Scan(&rec.CreatedAt))
	}
	_, err := es.conn(ctx).Exec(ctx, `
		INSERT INTO earnings (id, beneficiary_code, source_buyer_code, order_id, kind, level, percent_applied, pv, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.BeneficiaryCode, rec.SourceBuyerCode, rec.OrderID, string(rec.Kind),
		rec.Level, rec.PercentApplied, rec.PV, rec.Amount, rec.CreatedAt,
	)
	return wrapE(err)
}

// Get returns the first record of kind for the order.
func (es *Earnings) Get(ctx context.Context, orderID string, kind types.EarningKind) (types.EarningRecord, error) {
	defer metrics.StartSQLQuery("Earnings", "Get")()
	rec := types.EarningRecord{}
	err := pgxscan.Get(ctx, es.conn(ctx), &rec,
		`SELECT `+earningColumns+` FROM earnings WHERE order_id = $1 AND kind = $2 `+earningOrdering+` LIMIT 1`,
		orderID, string(kind))
	return rec, wrapE(err)
}

func (es *Earnings) ListByOrder(ctx context.Context, orderID string) ([]types.EarningRecord, error) {
	defer metrics.StartSQLQuery("Earnings", "ListByOrder")()
	recs := []types.EarningRecord{}
	err := pgxscan.Select(ctx, es.conn(ctx), &recs,
		`SELECT `+earningColumns+` FROM earnings WHERE order_id = $1 `+earningOrdering, orderID)
	return recs, wrapE(err)
}

func (es *Earnings) ListByBeneficiary(ctx context.Context, code string) ([]types.EarningRecord, error) {
	defer metrics.StartSQLQuery("Earnings", "ListByBeneficiary")()
	recs := []types.EarningRecord{}
	err := pgxscan.Select(ctx, es.conn(ctx), &recs,
		`SELECT `+earningColumns+` FROM earnings WHERE beneficiary_code = $1 `+earningOrdering, code)
	return recs, wrapE(err)
}
