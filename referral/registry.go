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
	"errors"
	"fmt"
	"sync"

	"code.bundlemart.io/earnings/events"
	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/types"

	"github.com/cenkalti/backoff/v4"
)

var (
	ErrUnknownParent = func(code string) error {
		return fmt.Errorf("parent %q: %w", code, types.ErrNotFound)
	}

	ErrSlotTaken = func(parent string, side types.PlacementSide) error {
		return fmt.Errorf("%s slot under %q is already taken: %w", side, parent, types.ErrConflict)
	}

	ErrRootHasNoPlacement = fmt.Errorf("the root member cannot be placed: %w", types.ErrValidation)
)

// Registration is a signup request. Series is only honoured for members
// without a parent, everyone else inherits the series of their parent.
type Registration struct {
	ParentCode string
	Name       string
	Series     string
}

// Registry owns the member lifecycle: creation with a fresh code and the
// admin mutations of placement and active flag.
type Registry struct {
	log     *logging.Logger
	members MemberStore
	counter SeriesCounter
	broker  Broker

	mu  sync.RWMutex
	cfg Config
}

func NewRegistry(log *logging.Logger, cfg Config, members MemberStore, counter SeriesCounter) *Registry {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	return &Registry{
		log:     log,
		members: members,
		counter: counter,
		cfg:     cfg,
	}
}

// ReloadConf updates the internal configuration.
func (r *Registry) ReloadConf(cfg Config) {
	r.log.Info("reloading configuration")
	if r.log.GetLevel() != cfg.Level.Get() {
		r.log.Info("updating log level",
			logging.String("old", r.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		r.log.SetLevel(cfg.Level.Get())
	}

	r.mu.Lock()
	r.cfg = cfg
	r.mu.Unlock()
}

// WithBroker makes the registry announce every new member.
func (r *Registry) WithBroker(b Broker) *Registry {
	r.broker = b
	return r
}

func (r *Registry) config() Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

// Register creates a member under its parent. The sequence number comes from
// an atomic per series counter, a code collision (e.g. codes imported from
// elsewhere) is retried with a fresh sequence.
func (r *Registry) Register(ctx context.Context, reg Registration) (types.Member, error) {
	cfg := r.config()

	m := types.Member{
		Name:          reg.Name,
		Active:        true,
		AncestorCodes: []string{},
	}

	series := cfg.DefaultSeries
	if len(reg.ParentCode) > 0 {
		parent, err := r.members.GetByCode(ctx, reg.ParentCode)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return types.Member{}, ErrUnknownParent(reg.ParentCode)
			}
			return types.Member{}, err
		}
		_, series, _, err = ParseCode(parent.Code)
		if err != nil {
			return types.Member{}, err
		}
		parentCode := parent.Code
		m.ParentCode = &parentCode
		m.AncestorCodes = append([]string{parent.Code}, parent.AncestorCodes...)
	} else if len(reg.Series) > 0 {
		series = reg.Series
	}

	if !IsValidSeries(series) {
		return types.Member{}, types.NewValidationError("invalid series %q", series)
	}

	op := func() error {
		seq, err := r.counter.NextSequence(ctx, series)
		if err != nil {
			return backoff.Permanent(err)
		}
		m.Code = FormatCode(cfg.CodePrefix, series, seq, cfg.SequenceWidth)
		err = r.members.Create(ctx, &m)
		if errors.Is(err, types.ErrConflict) {
			r.log.Warn("generated member code already in use, retrying",
				logging.MemberCode(m.Code))
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), cfg.MaxCodeRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return types.Member{}, err
	}

	r.log.Debug("member registered",
		logging.MemberCode(m.Code),
		logging.String("parent", m.Parent()),
		logging.Int("depth", len(m.AncestorCodes)),
	)
	if r.broker != nil {
		r.broker.Send(events.NewMemberRegistered(ctx, m))
	}
	return m, nil
}

// SetPlacement assigns the binary tree slot of a member. At most one sibling
// may hold each side.
func (r *Registry) SetPlacement(ctx context.Context, code string, side types.PlacementSide) error {
	if !side.IsValid() {
		return types.NewValidationError("invalid placement side %q", side)
	}
	m, err := r.members.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if !m.HasParent() {
		return ErrRootHasNoPlacement
	}
	if m.PlacementSide == side {
		return nil
	}

	if side != types.PlacementNone {
		siblings, err := r.members.ListByParent(ctx, m.Parent())
		if err != nil {
			return err
		}
		for _, s := range siblings {
			if s.Code != code && s.PlacementSide == side {
				return ErrSlotTaken(m.Parent(), side)
			}
		}
	}

	if err := r.members.UpdatePlacement(ctx, code, side); err != nil {
		if errors.Is(err, types.ErrConflict) {
			return ErrSlotTaken(m.Parent(), side)
		}
		return err
	}
	r.log.Info("member placement updated",
		logging.MemberCode(code),
		logging.String("side", string(side)),
	)
	return nil
}

func (r *Registry) SetActive(ctx context.Context, code string, active bool) error {
	if err := r.members.UpdateActive(ctx, code, active); err != nil {
		return err
	}
	r.log.Info("member active flag updated",
		logging.MemberCode(code),
		logging.Bool("active", active),
	)
	return nil
}

// Get resolves a member by code.
func (r *Registry) Get(ctx context.Context, code string) (types.Member, error) {
	return r.members.GetByCode(ctx, code)
}
