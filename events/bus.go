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

package events

import (
	"context"

	"code.bundlemart.io/earnings/types"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrUnsuportedEvent = errors.New("unknown payload for event")

type Type int

type traceIDKey struct{}

// Base common denominator all events share.
type Base struct {
	ctx     context.Context
	traceID string
	et      Type
}

type Event interface {
	Type() Type
	Context() context.Context
	TraceID() string
	// Key partitions the event stream, events sharing a key keep their order.
	Key() string
}

const (
	// All event type -> used by sinks to just receive all events, has no
	// actual corresponding event payload.
	All Type = iota
	OrderSubmittedEvent
	EarningsGeneratedEvent
	MemberRegisteredEvent
)

var eventStrings = map[Type]string{
	All:                    "ALL",
	OrderSubmittedEvent:    "OrderSubmitted",
	EarningsGeneratedEvent: "EarningsGenerated",
	MemberRegisteredEvent:  "MemberRegistered",
}

// New is a generic constructor, based on the type of v the specific event is
// returned.
func New(ctx context.Context, v interface{}) (Event, error) {
	switch tv := v.(type) {
	case types.Order:
		return NewOrderSubmitted(ctx, tv), nil
	case *types.Order:
		return NewOrderSubmitted(ctx, *tv), nil
	case types.Member:
		return NewMemberRegistered(ctx, tv), nil
	}
	return nil, ErrUnsuportedEvent
}

// WithTraceID stores the trace id events created from ctx will carry.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace id of ctx, creating one if needed.
func TraceIDFromContext(ctx context.Context) (context.Context, string) {
	if tID, ok := ctx.Value(traceIDKey{}).(string); ok && len(tID) > 0 {
		return ctx, tID
	}
	tID := uuid.NewString()
	return WithTraceID(ctx, tID), tID
}

// A base event holds no data, so the constructor will not be called directly.
func newBase(ctx context.Context, t Type) *Base {
	ctx, tID := TraceIDFromContext(ctx)
	return &Base{
		ctx:     ctx,
		traceID: tID,
		et:      t,
	}
}

func (b Base) TraceID() string {
	return b.traceID
}

func (b Base) Context() context.Context {
	return b.ctx
}

func (b Base) Type() Type {
	return b.et
}

// String get string representation of event type.
func (t Type) String() string {
	s, ok := eventStrings[t]
	if !ok {
		return "UNKNOWN EVENT"
	}
	return s
}
