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

package licenses

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	tests := []struct {
		expr string
		keys []string
	}{
		{"mit", []string{"mit"}},
		{"mit AND apache-2.0", []string{"mit", "apache-2.0"}},
		{"gpl-2.0 with classpath-exception-2.0 or mit", []string{"gpl-2.0", "classpath-exception-2.0", "mit"}},
		{"(bsd-new OR mit) AND (mit OR zlib)", []string{"bsd-new", "mit", "zlib"}},
		{"LicenseRef-scancode-public-domain AND gpl-2.0-plus", []string{"LicenseRef-scancode-public-domain", "gpl-2.0-plus"}},
		{"   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			keys, err := Keys(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.keys, keys)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, expr := range []string{
		"mit AND",
		"(mit OR apache-2.0",
		"mit apache-2.0",
		"AND mit",
		"(mit OR bsd) WITH exception",
		"mit WITH",
		"mit & apache",
		"mit)",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr)
			var exprErr *ExpressionError
			assert.True(t, errors.As(err, &exprErr), "expected an expression error, got %v", err)
		})
	}
}

func TestNormalize(t *testing.T) {
	normalized, err := Normalize("mit or (apache-2.0 and bsd-new) or gpl-2.0 with classpath-exception-2.0")
	require.NoError(t, err)
	assert.Equal(t, "mit OR (apache-2.0 AND bsd-new) OR gpl-2.0 WITH classpath-exception-2.0", normalized)

	normalized, err = Normalize("(mit OR zlib) OR isc")
	require.NoError(t, err)
	assert.Equal(t, "mit OR zlib OR isc", normalized)
}

func TestValidate(t *testing.T) {
	known := map[string]bool{"mit": true, "apache-2.0": true}
	isKnown := func(key string) bool { return known[key] }

	keys, err := Validate("mit AND apache-2.0", isKnown)
	require.NoError(t, err)
	assert.Equal(t, []string{"mit", "apache-2.0"}, keys)

	_, err = Validate("mit AND zlib AND bsd-new", isKnown)
	var unknown *UnknownKeysError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{"bsd-new", "zlib"}, unknown.Keys)
}

func TestDetectSPDXKey(t *testing.T) {
	t.Run("should not detect anything in an empty text", func(t *testing.T) {
		_, ok := DetectSPDXKey("")
		assert.False(t, ok)
	})

	t.Run("should not detect anything in unrelated prose", func(t *testing.T) {
		_, ok := DetectSPDXKey("This is the readme of a project which does not contain any license text at all.")
		assert.False(t, ok)
	})

	t.Run("should detect the MIT license", func(t *testing.T) {
		key, ok := DetectSPDXKey(mitText)
		require.True(t, ok)
		assert.Equal(t, "MIT", key)
	})
}

func TestIsValidKey(t *testing.T) {
	assert.True(t, IsValidKey("gpl-2.0-plus"))
	assert.True(t, IsValidKey("lgpl-2.1+"))
	assert.False(t, IsValidKey(""))
	assert.False(t, IsValidKey("mit license"))
	assert.False(t, IsValidKey("with"))
}

const mitText = `Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`
