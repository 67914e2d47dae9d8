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

package copier

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestExclusionFromEntry(t *testing.T) {
	t.Run("SKIP decodes to skip entirely", func(t *testing.T) {
		var entry models.ExclusionEntry
		require.NoError(t, json.Unmarshal([]byte(`"SKIP"`), &entry))
		assert.Equal(t, SkipEntirely, ExclusionFromEntry(entry).Kind)
	})

	t.Run("an empty list includes every field", func(t *testing.T) {
		var entry models.ExclusionEntry
		require.NoError(t, json.Unmarshal([]byte(`[]`), &entry))
		assert.Equal(t, Include, ExclusionFromEntry(entry).Kind)
	})

	t.Run("a list of fields excludes them", func(t *testing.T) {
		var entry models.ExclusionEntry
		require.NoError(t, json.Unmarshal([]byte(`["guidance","usage_policy"]`), &entry))
		exclusion := ExclusionFromEntry(entry)
		assert.Equal(t, ExcludeFields, exclusion.Kind)
		assert.Equal(t, []string{"guidance", "usage_policy"}, exclusion.Fields)
	})

	t.Run("any other string is rejected", func(t *testing.T) {
		var entry models.ExclusionEntry
		assert.Error(t, json.Unmarshal([]byte(`"skip"`), &entry))
	})

	t.Run("entries round trip through their persisted form", func(t *testing.T) {
		for _, exclusion := range []Exclusion{Skip(), IncludeAll(), Exclude("name")} {
			b, err := json.Marshal(exclusion.Entry())
			require.NoError(t, err)
			var entry models.ExclusionEntry
			require.NoError(t, json.Unmarshal(b, &entry))
			assert.Equal(t, exclusion.Kind, ExclusionFromEntry(entry).Kind)
		}
	})
}

func TestExcludes(t *testing.T) {
	spec, ok := DefaultRegistry().SpecByName("license")
	require.True(t, ok)
	sch := spec.Schema()

	exclusion := Exclude("usage_policy", "Guidance")
	assert.True(t, exclusion.Excludes(sch.FieldsByDBName["usage_policy_id"]))
	assert.True(t, exclusion.Excludes(sch.FieldsByDBName["guidance"]))
	assert.False(t, exclusion.Excludes(sch.FieldsByDBName["name"]))

	assert.False(t, Skip().Excludes(sch.FieldsByDBName["name"]))
	assert.False(t, IncludeAll().Excludes(sch.FieldsByDBName["name"]))
}

func TestPolicyResolver(t *testing.T) {
	db := tests.NewSQLiteDB(t)
	dataspace := tests.CreateDataspace(t, db, "Alternate")
	registry := DefaultRegistry()
	license, _ := registry.SpecByName("license")
	owner, _ := registry.SpecByName("owner")

	t.Run("should fall back to the hard coded defaults", func(t *testing.T) {
		resolver := NewPolicyResolver(8, time.Minute)
		exclusion, err := resolver.CopyExclusion(db, dataspace.ID, license, nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultCopyExclude["license"], exclusion)

		exclusion, err = resolver.UpdateExclusion(db, dataspace.ID, owner, nil)
		require.NoError(t, err)
		assert.Equal(t, IncludeAll(), exclusion)
	})

	t.Run("should prefer explicit overrides", func(t *testing.T) {
		resolver := NewPolicyResolver(8, time.Minute)
		exclusion, err := resolver.CopyExclusion(db, dataspace.ID, license, Overrides{"license": Exclude("name")})
		require.NoError(t, err)
		assert.Equal(t, []string{"name"}, exclusion.Fields)
	})

	t.Run("should cache the configuration until it is invalidated", func(t *testing.T) {
		resolver := NewPolicyResolver(8, time.Minute)
		configuration := models.DataspaceConfiguration{
			DataspaceID: dataspace.ID,
			UpdateDefaults: datatypes.NewJSONType(models.ExclusionConfig{
				AppOrganization: {"owner": {Skip: true}},
			}),
		}
		require.NoError(t, db.Create(&configuration).Error)

		exclusion, err := resolver.UpdateExclusion(db, dataspace.ID, owner, nil)
		require.NoError(t, err)
		assert.Equal(t, SkipEntirely, exclusion.Kind)

		configuration.UpdateDefaults = datatypes.NewJSONType(models.ExclusionConfig{
			AppOrganization: {"owner": {Fields: []string{"notes"}}},
		})
		require.NoError(t, db.Save(&configuration).Error)

		exclusion, err = resolver.UpdateExclusion(db, dataspace.ID, owner, nil)
		require.NoError(t, err)
		assert.Equal(t, SkipEntirely, exclusion.Kind)

		resolver.Invalidate(dataspace.ID)
		exclusion, err = resolver.UpdateExclusion(db, dataspace.ID, owner, nil)
		require.NoError(t, err)
		assert.Equal(t, Exclude("notes"), exclusion)
	})
}
