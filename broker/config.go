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
	"time"

	"code.bundlemart.io/earnings/config/encoding"
	"code.bundlemart.io/earnings/logging"
)

const namedLogger = "broker"

// Config represents the configuration of the broker.
type Config struct {
	Level      encoding.LogLevel `long:"log-level"`
	BufferSize int               `long:"buffer-size" description:"Events queued before new ones are dropped"`
	Kafka      KafkaConfig       `group:"Kafka" namespace:"kafka"`
}

type KafkaConfig struct {
	Enabled      encoding.Bool     `long:"enabled" description:"Publish events to kafka"`
	Brokers      []string          `long:"brokers" description:"Kafka bootstrap addresses"`
	Topic        string            `long:"topic"`
	WriteTimeout encoding.Duration `long:"write-timeout"`
}

// NewDefaultConfig creates an instance of config with default values.
func NewDefaultConfig() Config {
	return Config{
		Level:      encoding.LogLevel{Level: logging.InfoLevel},
		BufferSize: 1000,
		Kafka: KafkaConfig{
			Enabled:      false,
			Brokers:      []string{"localhost:9092"},
			Topic:        "earnings.events",
			WriteTimeout: encoding.Duration{Duration: 10 * time.Second},
		},
	}
}
