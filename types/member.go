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

package types

import (
	"time"
)

// PlacementSide is the slot of a member in the binary placement tree.
// It is independent from the referral relationship.
type PlacementSide string

const (
	PlacementNone  PlacementSide = ""
	PlacementLeft  PlacementSide = "left"
	PlacementRight PlacementSide = "right"
)

func (p PlacementSide) IsValid() bool {
	switch p {
	case PlacementNone, PlacementLeft, PlacementRight:
		return true
	default:
		return false
	}
}

// Member is a node of the referral graph.
type Member struct {
	ID   int64  `json:"id" db:"id"`
	Code string `json:"code" db:"code"`
	// ParentCode is nil for the root member.
	ParentCode *string `json:"parent_code,omitempty" db:"parent_code"`
	// AncestorCodes goes from the nearest parent to the root. It is set
	// once at creation and never rewritten.
	AncestorCodes []string      `json:"ancestor_codes" db:"ancestor_codes"`
	PlacementSide PlacementSide `json:"placement_side,omitempty" db:"placement_side"`
	Active        bool          `json:"active" db:"active"`
	Name          string        `json:"name" db:"name"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

func (m Member) HasParent() bool {
	return m.ParentCode != nil && len(*m.ParentCode) > 0
}

// Parent returns the parent code or an empty string for the root.
func (m Member) Parent() string {
	if m.ParentCode == nil {
		return ""
	}
	return *m.ParentCode
}

func (m Member) Clone() Member {
	cpy := m
	if m.ParentCode != nil {
		p := *m.ParentCode
		cpy.ParentCode = &p
	}
	cpy.AncestorCodes = append([]string(nil), m.AncestorCodes...)
	return cpy
}
