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

package rest

import (
	"context"

	"code.bundlemart.io/earnings/earnings"
	"code.bundlemart.io/earnings/orders"
	"code.bundlemart.io/earnings/referral"
	"code.bundlemart.io/earnings/tree"
	"code.bundlemart.io/earnings/types"
)

//go:generate go run github.com/golang/mock/mockgen -destination mocks/mocks.go -package mocks code.bundlemart.io/earnings/api/rest OrderService,EarningsEngine,MemberRegistry,TreeBuilder,Ledger

type OrderService interface {
	Submit(ctx context.Context, sub orders.Submission) (orders.Receipt, error)
	Get(ctx context.Context, id string) (types.Order, error)
}

type EarningsEngine interface {
	GenerateForOrder(ctx context.Context, orderID string, opts earnings.Options) (earnings.Result, error)
}

type MemberRegistry interface {
	Register(ctx context.Context, reg referral.Registration) (types.Member, error)
	Get(ctx context.Context, code string) (types.Member, error)
	SetPlacement(ctx context.Context, code string, side types.PlacementSide) error
	SetActive(ctx context.Context, code string, active bool) error
}

type TreeBuilder interface {
	Build(ctx context.Context, rootCode string, maxDepth int, strategy tree.Strategy) (*tree.Node, error)
	Binary(ctx context.Context, rootCode string, maxDepth int) (*tree.BinaryNode, error)
}

// Ledger is the read side of the earning records.
type Ledger interface {
	ListByOrder(ctx context.Context, orderID string) ([]types.EarningRecord, error)
	ListByBeneficiary(ctx context.Context, code string) ([]types.EarningRecord, error)
}
