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

// Package memstore is an in-memory implementation of every store the
// engines depend on. It enforces the same uniqueness rules as the
// Postgres schema and supports transactions, which makes it suitable for
// tests and single process deployments.
package memstore

import (
	"context"
	"sync"
	"time"

	"code.bundlemart.io/earnings/types"

	"go.uber.org/atomic"
)

type txKey struct{}

// state is everything a transaction can see and change.
type state struct {
	members  map[string]types.Member
	counters map[string]int64
	orders   map[string]types.Order
	earnings map[string]types.EarningRecord
	// order id -> self-PV record id
	selfPV map[string]string
}

func newState() *state {
	return &state{
		members:  map[string]types.Member{},
		counters: map[string]int64{},
		orders:   map[string]types.Order{},
		earnings: map[string]types.EarningRecord{},
		selfPV:   map[string]string{},
	}
}

func membersOf(s *state) map[string]types.Member        { return s.members }
func countersOf(s *state) map[string]int64               { return s.counters }
func ordersOf(s *state) map[string]types.Order           { return s.orders }
func earningsOf(s *state) map[string]types.EarningRecord { return s.earnings }
func selfPVOf(s *state) map[string]string                { return s.selfPV }

// view is what an op reads and writes: the committed state, overlaid with
// the writes of a running transaction when staged is set.
type view struct {
	live   *state
	staged *state
	// undo, when set, collects how to revert every write made to live.
	undo *[]func()
}

func get[K comparable, V any](v *view, m func(*state) map[K]V, k K) (V, bool) {
	if v.staged != nil {
		if val, ok := m(v.staged)[k]; ok {
			return val, true
		}
	}
	val, ok := m(v.live)[k]
	return val, ok
}

func each[K comparable, V any](v *view, m func(*state) map[K]V, fn func(K, V)) {
	var staged map[K]V
	if v.staged != nil {
		staged = m(v.staged)
		for k, val := range staged {
			fn(k, val)
		}
	}
	for k, val := range m(v.live) {
		if _, ok := staged[k]; ok {
			continue
		}
		fn(k, val)
	}
}

func put[K comparable, V any](v *view, m func(*state) map[K]V, k K, val V) {
	if v.staged != nil {
		m(v.staged)[k] = val
		return
	}
	live := m(v.live)
	if v.undo != nil {
		prev, existed := live[k]
		*v.undo = append(*v.undo, func() {
			if existed {
				live[k] = prev
			} else {
				delete(live, k)
			}
		})
	}
	live[k] = val
}

type op func(*view) error

type tx struct {
	mu     sync.Mutex
	staged *state
	ops    []op
}

// Store holds the data. The typed accessors (Members, Orders, ...) share it.
type Store struct {
	mu    sync.RWMutex
	state *state

	// member ids behave like a database sequence, they are not given back
	// when a transaction rolls back.
	memberIDs *atomic.Int64

	now func() time.Time
}

func New() *Store {
	return &Store{
		state:     newState(),
		memberIDs: atomic.NewInt64(0),
		now:       time.Now,
	}
}

// RunInTx runs fn in a read committed transaction. Writes made through ctx
// inside fn are only visible to fn until it returns nil, then they are
// replayed on the committed state, checking every constraint again. A
// failed replay is undone and any error from fn discards them.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*tx); ok {
		// already in a transaction, join it
		return fn(ctx)
	}

	t := &tx{staged: newState()}
	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	var undo []func()
	v := &view{live: s.state, undo: &undo}
	for _, o := range t.ops {
		if err := o(v); err != nil {
			for i := len(undo) - 1; i >= 0; i-- {
				undo[i]()
			}
			return err
		}
	}
	return nil
}

// read runs f against the state visible from ctx.
func (s *Store) read(ctx context.Context, f func(*view) error) error {
	if t, ok := ctx.Value(txKey{}).(*tx); ok {
		t.mu.Lock()
		defer t.mu.Unlock()
		s.mu.RLock()
		defer s.mu.RUnlock()
		return f(&view{live: s.state, staged: t.staged})
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return f(&view{live: s.state})
}

// write applies o to the state visible from ctx. Inside a transaction the
// op is also recorded so it can be replayed, and checked again, on commit.
func (s *Store) write(ctx context.Context, o op) error {
	if t, ok := ctx.Value(txKey{}).(*tx); ok {
		t.mu.Lock()
		defer t.mu.Unlock()
		s.mu.RLock()
		defer s.mu.RUnlock()
		if err := o(&view{live: s.state, staged: t.staged}); err != nil {
			return err
		}
		t.ops = append(t.ops, o)
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return o(&view{live: s.state})
}

func (s *Store) Members() *Members {
	return &Members{store: s}
}

func (s *Store) Series() *Series {
	return &Series{store: s}
}

func (s *Store) Orders() *Orders {
	return &Orders{store: s}
}

func (s *Store) Earnings() *Earnings {
	return &Earnings{store: s}
}

func cloneOrder(o types.Order) types.Order {
	o.Items = append([]types.LineItem(nil), o.Items...)
	return o
}
