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
)

const memberColumns = `id, code, parent_code, ancestor_codes, placement_side, active, name, created_at`

type Members struct {
	*ConnectionSource
}

func NewMembers(connectionSource *ConnectionSource) *Members {
	return &Members{
		ConnectionSource: connectionSource,
	}
}

// Create inserts a member, setting its ID and creation time. A taken code
// or placement slot is reported as types.ErrConflict.
func (ms *Members) Create(ctx context.Context, m *types.Member) error {
	defer metrics.StartSQLQuery("Members", "Create")()
	if m.AncestorCodes == nil {
		m.AncestorCodes = []string{}
	}
	row := ms.conn(ctx).QueryRow(ctx, `
		INSERT INTO members (code, parent_code, ancestor_codes, placement_side, active, name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		m.Code,
		m.ParentCode,
		m.AncestorCodes,
		string(m.PlacementSide),
		m.Active,
		m.Name,
	)
	return wrapE(row.Scan(&m.ID, &m.CreatedAt))
}

func (ms *Members) GetByCode(ctx context.Context, code string) (types.Member, error) {
	defer metrics.StartSQLQuery("Members", "GetByCode")()
	m := types.Member{}
	err := pgxscan.Get(ctx, ms.conn(ctx), &m,
		`SELECT `+memberColumns+` FROM members WHERE code = $1`, code)
	return m, wrapE(err)
}

func (ms *Members) ListByParent(ctx context.Context, parentCode string) ([]types.Member, error) {
	defer metrics.StartSQLQuery("Members", "ListByParent")()
	members := []types.Member{}
	err := pgxscan.Select(ctx, ms.conn(ctx), &members,
		`SELECT `+memberColumns+` FROM members WHERE parent_code = $1 ORDER BY id`, parentCode)
	return members, wrapE(err)
}

// ListByAncestor returns the whole subtree below ancestorCode, served by the
// GIN index on ancestor_codes.
func (ms *Members) ListByAncestor(ctx context.Context, ancestorCode string) ([]types.Member, error) {
	defer metrics.StartSQLQuery("Members", "ListByAncestor")()
	members := []types.Member{}
	err := pgxscan.Select(ctx, ms.conn(ctx), &members,
		`SELECT `+memberColumns+` FROM members WHERE ancestor_codes @> ARRAY[$1::TEXT] ORDER BY id`, ancestorCode)
	return members, wrapE(err)
}

func (ms *Members) CountByAncestor(ctx context.Context, ancestorCode string) (int, error) {
	defer metrics.StartSQLQuery("Members", "CountByAncestor")()
	var n int
	err := ms.conn(ctx).QueryRow(ctx,
		`SELECT count(*) FROM members WHERE ancestor_codes @> ARRAY[$1::TEXT]`, ancestorCode).Scan(&n)
	return n, wrapE(err)
}

func (ms *Members) UpdatePlacement(ctx context.Context, code string, side types.PlacementSide) error {
	defer metrics.StartSQLQuery("Members", "UpdatePlacement")()
	tag, err := ms.conn(ctx).Exec(ctx,
		`UPDATE members SET placement_side = $2 WHERE code = $1`, code, string(side))
	if err != nil {
		return wrapE(err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (ms *Members) UpdateActive(ctx context.Context, code string, active bool) error {
	defer metrics.StartSQLQuery("Members", "UpdateActive")()
	tag, err := ms.conn(ctx).Exec(ctx,
		`UPDATE members SET active = $2 WHERE code = $1`, code, active)
	if err != nil {
		return wrapE(err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Series hands out member code sequence numbers. The upsert takes a row
// lock so concurrent registrations in one series never share a number.
type Series struct {
	*ConnectionSource
}

func NewSeries(connectionSource *ConnectionSource) *Series {
	return &Series{
		ConnectionSource: connectionSource,
	}
}

func (ss *Series) NextSequence(ctx context.Context, series string) (int64, error) {
	defer metrics.StartSQLQuery("Series", "NextSequence")()
	var next int64
	err := ss.conn(ctx).QueryRow(ctx, `
		INSERT INTO series_counters (series, last_seq) VALUES ($1, 1)
		ON CONFLICT (series) DO UPDATE SET last_seq = series_counters.last_seq + 1
		RETURNING last_seq`, series).Scan(&next)
	return next, wrapE(err)
}
