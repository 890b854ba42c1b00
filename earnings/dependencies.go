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

package earnings

import (
	"context"

	"code.bundlemart.io/earnings/events"
	"code.bundlemart.io/earnings/types"
)

//go:generate go run github.com/golang/mock/mockgen -destination mocks/mocks.go -package mocks code.bundlemart.io/earnings/earnings Members,Orders,Ledger,TxManager,Broker

type Members interface {
	GetByCode(ctx context.Context, code string) (types.Member, error)
}

type Orders interface {
	Get(ctx context.Context, id string) (types.Order, error)
}

// Ledger is the append only earning record store. Create must fail with
// types.ErrConflict on a second self-PV record for the same order.
type Ledger interface {
	Create(ctx context.Context, rec *types.EarningRecord) error
	Get(ctx context.Context, orderID string, kind types.EarningKind) (types.EarningRecord, error)
}

// TxManager runs fn in a single transaction carried by the context given to
// fn. Returning an error rolls everything back.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Broker interface {
	Send(event events.Event)
}
