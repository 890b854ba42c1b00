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
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when a member, order or record
	// does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned by stores when a uniqueness constraint is
	// violated (duplicate code, second self-PV record for an order).
	ErrConflict = errors.New("conflict")
	// ErrValidation marks malformed input rejected before any persistence.
	ErrValidation = errors.New("validation error")
	// ErrBuyerNotFound aborts earnings generation; it still matches ErrNotFound.
	ErrBuyerNotFound = fmt.Errorf("buyer %w", ErrNotFound)
	// ErrAlreadyGenerated signals an order already carries its self-PV record.
	ErrAlreadyGenerated = errors.New("earnings already generated")
)

// NewValidationError wraps ErrValidation with some detail.
func NewValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
