// Copyright (C) 2025 l3montree GmbH
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
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifference(t *testing.T) {
	t.Run("should return only the elements missing in b", func(t *testing.T) {
		assert.Equal(t, []int{1, 3}, Difference([]int{1, 2, 3}, []int{2, 4}))
	})
	t.Run("should return an empty slice if everything is contained", func(t *testing.T) {
		assert.Empty(t, Difference([]int{1}, []int{1}))
	})
}
