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
	"fmt"
	"strconv"
	"strings"

	"code.bundlemart.io/earnings/types"
)

var ErrMalformedCode = func(code string) error {
	return types.NewValidationError("malformed member code %q", code)
}

// FormatCode builds a PREFIX-SERIES-SEQUENCE code with the sequence zero
// padded to width digits.
func FormatCode(prefix, series string, seq int64, width int) string {
	return fmt.Sprintf("%s-%s-%0*d", prefix, series, width, seq)
}

// ParseCode splits a member code into its parts.
func ParseCode(code string) (prefix, series string, seq int64, err error) {
	parts := strings.Split(code, "-")
	if len(parts) != 3 || len(parts[0]) == 0 || !IsValidSeries(parts[1]) {
		return "", "", 0, ErrMalformedCode(code)
	}
	seq, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil || seq <= 0 {
		return "", "", 0, ErrMalformedCode(code)
	}
	return parts[0], parts[1], seq, nil
}

// IsValidSeries accepts a single upper case letter.
func IsValidSeries(series string) bool {
	return len(series) == 1 && series[0] >= 'A' && series[0] <= 'Z'
}
