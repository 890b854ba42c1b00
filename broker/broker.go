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

package broker

import (
	"context"
	"sync"

	"code.bundlemart.io/earnings/events"
	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/metrics"

	"go.uber.org/atomic"
)

// Sink receives the events of the types it declares. Push is called from
// the broker goroutine, one event at a time.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/sink_mock.go -package mocks code.bundlemart.io/earnings/broker Sink
type Sink interface {
	Push(ctx context.Context, evt events.Event) error
	Types() []events.Type
}

// Broker fans events out to sinks. Send never blocks the caller: when the
// queue is full the event is dropped and logged.
type Broker struct {
	log *logging.Logger

	mu    sync.RWMutex
	sinks []Sink

	queue chan events.Event
	quit  chan struct{}
	done  chan struct{}
	once  sync.Once
	// started is claimed by whichever of Start or Stop runs first.
	started atomic.Bool
}

// New creates a new broker, Start must be called for events to flow.
func New(log *logging.Logger, config Config) *Broker {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	size := config.BufferSize
	if size <= 0 {
		size = 1
	}
	return &Broker{
		log:   log,
		queue: make(chan events.Event, size),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

func (b *Broker) Subscribe(s Sink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, s)
}

func (b *Broker) Send(evt events.Event) {
	select {
	case b.queue <- evt:
		metrics.BrokerQueueSet(len(b.queue))
	default:
		metrics.BrokerDroppedInc()
		b.log.Warn("event queue full, dropping event",
			logging.String("event-type", evt.Type().String()),
			logging.String("key", evt.Key()),
		)
	}
}

// Start consumes the queue until ctx is cancelled or Stop is called. The
// events still queued at that point are delivered before returning.
// Start returns at once when the broker was already started or stopped.
func (b *Broker) Start(ctx context.Context) {
	if !b.started.CompareAndSwap(false, true) {
		return
	}
	defer close(b.done)
	for {
		select {
		case evt := <-b.queue:
			b.dispatch(ctx, evt)
		case <-ctx.Done():
			b.drain(context.Background())
			return
		case <-b.quit:
			b.drain(ctx)
			return
		}
	}
}

// Stop asks Start to return and waits for it. When Start never ran, the
// queued events are delivered by Stop itself.
func (b *Broker) Stop() {
	if b.started.CompareAndSwap(false, true) {
		b.drain(context.Background())
		close(b.done)
		return
	}
	b.once.Do(func() { close(b.quit) })
	<-b.done
}

func (b *Broker) drain(ctx context.Context) {
	for {
		select {
		case evt := <-b.queue:
			b.dispatch(ctx, evt)
		default:
			return
		}
	}
}

func (b *Broker) dispatch(ctx context.Context, evt events.Event) {
	metrics.BrokerQueueSet(len(b.queue))
	b.mu.RLock()
	sinks := b.sinks
	b.mu.RUnlock()

	for _, s := range sinks {
		if !wants(s, evt.Type()) {
			continue
		}
		if err := s.Push(ctx, evt); err != nil {
			b.log.Error("sink could not handle event",
				logging.String("event-type", evt.Type().String()),
				logging.String("key", evt.Key()),
				logging.Error(err),
			)
		}
	}
}

func wants(s Sink, t events.Type) bool {
	for _, st := range s.Types() {
		if st == events.All || st == t {
			return true
		}
	}
	return false
}
