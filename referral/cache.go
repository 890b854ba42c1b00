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
	"time"

	"code.bundlemart.io/earnings/types"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachedMembers decorates a MemberStore with an expiring LRU over code
// lookups. Only reads that tolerate staleness (tree views, API lookups)
// should go through it; earnings generation reads the store directly.
type CachedMembers struct {
	MemberStore
	cache *expirable.LRU[string, types.Member]
}

func NewCachedMembers(store MemberStore, size int, ttl time.Duration) *CachedMembers {
	return &CachedMembers{
		MemberStore: store,
		cache:       expirable.NewLRU[string, types.Member](size, nil, ttl),
	}
}

func (c *CachedMembers) GetByCode(ctx context.Context, code string) (types.Member, error) {
	if m, ok := c.cache.Get(code); ok {
		return m.Clone(), nil
	}
	m, err := c.MemberStore.GetByCode(ctx, code)
	if err != nil {
		return m, err
	}
	c.cache.Add(code, m.Clone())
	return m, nil
}

func (c *CachedMembers) UpdatePlacement(ctx context.Context, code string, side types.PlacementSide) error {
	defer c.cache.Remove(code)
	return c.MemberStore.UpdatePlacement(ctx, code, side)
}

func (c *CachedMembers) UpdateActive(ctx context.Context, code string, active bool) error {
	defer c.cache.Remove(code)
	return c.MemberStore.UpdateActive(ctx, code, active)
}

func (c *CachedMembers) Purge() {
	c.cache.Purge()
}
