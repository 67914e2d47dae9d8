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

package commands

import (
	"testing"

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/stretchr/testify/assert"
)

func TestParseExcludeFlags(t *testing.T) {
	t.Run("should parse fields and the skip sentinel", func(t *testing.T) {
		exclude, err := parseExcludeFlags([]string{"license=guidance;admin_notes", "subcomponent=SKIP", "owner="})

		assert.NoError(t, err)
		assert.Equal(t, map[string]models.ExclusionEntry{
			"license":      {Fields: []string{"guidance", "admin_notes"}},
			"subcomponent": {Skip: true},
			"owner":        {Fields: []string{}},
		}, exclude)
	})

	t.Run("should return nil without flags", func(t *testing.T) {
		exclude, err := parseExcludeFlags(nil)
		assert.NoError(t, err)
		assert.Nil(t, exclude)
	})

	t.Run("should reject a value without model", func(t *testing.T) {
		_, err := parseExcludeFlags([]string{"guidance"})
		assert.Error(t, err)
	})
}

func TestCommandTree(t *testing.T) {
	root := GetRootCmd()
	root.AddCommand(NewDataspaceCommand(), NewPackagesCommand())

	cmd, _, err := root.Find([]string{"dataspace", "copy-defaults", "import"})
	assert.NoError(t, err)
	assert.Equal(t, "import", cmd.Name())

	cmd, _, err = root.Find([]string{"packages", "set-purl"})
	assert.NoError(t, err)
	assert.NotNil(t, cmd.Flags().Lookup("dataspace"))
}
