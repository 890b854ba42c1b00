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

package broker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"code.bundlemart.io/earnings/broker"
	"code.bundlemart.io/earnings/broker/mocks"
	"code.bundlemart.io/earnings/events"
	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/types"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

type brokerTst struct {
	*broker.Broker
	ctrl *gomock.Controller
}

func getBroker(t *testing.T, bufferSize int) *brokerTst {
	t.Helper()
	cfg := broker.NewDefaultConfig()
	cfg.BufferSize = bufferSize
	return &brokerTst{
		Broker: broker.New(logging.NewTestLogger(), cfg),
		ctrl:   gomock.NewController(t),
	}
}

func TestBroker(t *testing.T) {
	t.Run("events reach the sinks that want them", testEventsReachSinks)
	t.Run("a failing sink does not stop the others", testFailingSink)
	t.Run("full queue drops events", testFullQueueDrops)
	t.Run("stop without start delivers and returns", testStopWithoutStart)
}

func testEventsReachSinks(t *testing.T) {
	b := getBroker(t, 10)
	ctx := context.Background()

	all := mocks.NewMockSink(b.ctrl)
	all.EXPECT().Types().Return([]events.Type{events.All}).AnyTimes()
	earningsOnly := mocks.NewMockSink(b.ctrl)
	earningsOnly.EXPECT().Types().Return([]events.Type{events.EarningsGeneratedEvent}).AnyTimes()

	b.Subscribe(all)
	b.Subscribe(earningsOnly)

	order := types.Order{ID: "o1", BuyerCode: "B"}
	all.EXPECT().Push(gomock.Any(), gomock.Any()).Times(2).Return(nil)
	earningsOnly.EXPECT().Push(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(
		func(_ context.Context, evt events.Event) error {
			assert.Equal(t, events.EarningsGeneratedEvent, evt.Type())
			assert.Equal(t, "o1", evt.Key())
			return nil
		})

	// queued before start, delivered once started
	b.Send(events.NewOrderSubmitted(ctx, order))
	b.Send(events.NewEarningsGenerated(ctx, order, nil))

	go b.Start(ctx)
	b.Stop()
}

func testFailingSink(t *testing.T) {
	b := getBroker(t, 10)
	ctx := context.Background()

	failing := mocks.NewMockSink(b.ctrl)
	failing.EXPECT().Types().Return([]events.Type{events.All}).AnyTimes()
	failing.EXPECT().Push(gomock.Any(), gomock.Any()).Return(errors.New("unreachable"))
	ok := mocks.NewMockSink(b.ctrl)
	ok.EXPECT().Types().Return([]events.Type{events.All}).AnyTimes()
	ok.EXPECT().Push(gomock.Any(), gomock.Any()).Return(nil)

	b.Subscribe(failing)
	b.Subscribe(ok)
	b.Send(events.NewOrderSubmitted(ctx, types.Order{ID: "o1"}))

	go b.Start(ctx)
	b.Stop()
}

func testFullQueueDrops(t *testing.T) {
	b := getBroker(t, 1)
	ctx := context.Background()

	sink := mocks.NewMockSink(b.ctrl)
	sink.EXPECT().Types().Return([]events.Type{events.All}).AnyTimes()
	sink.EXPECT().Push(gomock.Any(), gomock.Any()).Times(1).Return(nil)
	b.Subscribe(sink)

	b.Send(events.NewOrderSubmitted(ctx, types.Order{ID: "o1"}))
	b.Send(events.NewOrderSubmitted(ctx, types.Order{ID: "o2"}))

	go b.Start(ctx)
	b.Stop()
}

func testStopWithoutStart(t *testing.T) {
	b := getBroker(t, 10)
	ctx := context.Background()

	sink := mocks.NewMockSink(b.ctrl)
	sink.EXPECT().Types().Return([]events.Type{events.All}).AnyTimes()
	sink.EXPECT().Push(gomock.Any(), gomock.Any()).Times(1).Return(nil)
	b.Subscribe(sink)
	b.Send(events.NewOrderSubmitted(ctx, types.Order{ID: "o1"}))

	stopped := make(chan struct{})
	go func() {
		b.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop blocked on a broker that was never started")
	}

	// a late Start and a second Stop are no-ops
	b.Start(ctx)
	b.Stop()
}
