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

package referral_test

import (
	"testing"

	"code.bundlemart.io/earnings/referral"
	"code.bundlemart.io/earnings/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodes(t *testing.T) {
	t.Run("format pads the sequence", func(t *testing.T) {
		assert.Equal(t, "BM-A-000042", referral.FormatCode("BM", "A", 42, 6))
		assert.Equal(t, "BM-C-1234567", referral.FormatCode("BM", "C", 1234567, 6))
	})

	t.Run("parse round trips", func(t *testing.T) {
		prefix, series, seq, err := referral.ParseCode("BM-B-000017")
		require.NoError(t, err)
		assert.Equal(t, "BM", prefix)
		assert.Equal(t, "B", series)
		assert.Equal(t, int64(17), seq)
	})

	t.Run("parse rejects malformed codes", func(t *testing.T) {
		for _, code := range []string{"", "BM", "BM-A", "BM-AB-000001", "BM-a-000001", "-A-000001", "BM-A-xyz", "BM-A-000000", "BM-A-1-2"} {
			_, _, _, err := referral.ParseCode(code)
			assert.ErrorIs(t, err, types.ErrValidation, code)
		}
	})
}
