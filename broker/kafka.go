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
	"encoding/json"
	"time"

	"code.bundlemart.io/earnings/events"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// Writer is the part of kafka.Writer the sink uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type envelope struct {
	Type    string       `json:"type"`
	TraceID string       `json:"trace_id"`
	Payload events.Event `json:"payload"`
}

// KafkaSink publishes every event as JSON, keyed so that all events of an
// order land on the same partition.
type KafkaSink struct {
	writer  Writer
	timeout time.Duration
}

func NewKafkaSink(cfg KafkaConfig) *KafkaSink {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
	return NewKafkaSinkWithWriter(w, cfg.WriteTimeout.Get())
}

// NewKafkaSinkWithWriter allows injecting a writer.
func NewKafkaSinkWithWriter(w Writer, timeout time.Duration) *KafkaSink {
	return &KafkaSink{
		writer:  w,
		timeout: timeout,
	}
}

func (k *KafkaSink) Types() []events.Type {
	return []events.Type{events.All}
}

func (k *KafkaSink) Push(ctx context.Context, evt events.Event) error {
	b, err := json.Marshal(envelope{
		Type:    evt.Type().String(),
		TraceID: evt.TraceID(),
		Payload: evt,
	})
	if err != nil {
		return errors.Wrap(err, "marshalling event")
	}

	if k.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, k.timeout)
		defer cancel()
	}

	msg := kafka.Message{
		Key:   []byte(evt.Key()),
		Value: b,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(evt.Type().String())},
		},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, "writing kafka message")
	}
	return nil
}

func (k *KafkaSink) Close() error {
	return k.writer.Close()
}
