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
	"testing"

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()

	t.Run("should resolve specs by value, pointer and slice type", func(t *testing.T) {
		byPointer, ok := registry.SpecFor(&models.License{})
		require.True(t, ok)
		byValue, ok := registry.SpecFor(models.License{})
		require.True(t, ok)
		bySlice, ok := registry.SpecFor([]*models.License{})
		require.True(t, ok)

		assert.Same(t, byPointer, byValue)
		assert.Same(t, byPointer, bySlice)
		assert.Equal(t, "license_library.license", byPointer.ContentType())
		assert.Equal(t, "licenses", byPointer.Table())
	})

	t.Run("should walk one-to-many relations before through relations", func(t *testing.T) {
		spec, ok := registry.SpecByName("license")
		require.True(t, ok)
		require.Len(t, spec.Relations, 2)
		assert.Equal(t, "Annotations", spec.Relations[0].Field)
		assert.Equal(t, "Tags", spec.Relations[1].Field)
	})

	t.Run("should not register users and dataspaces", func(t *testing.T) {
		_, ok := registry.SpecFor(&models.User{})
		assert.False(t, ok)
		_, ok = registry.SpecFor(&models.Dataspace{})
		assert.False(t, ok)
	})

	t.Run("should reject relations which are not has-many associations", func(t *testing.T) {
		r := NewRegistry()
		err := r.Register(ModelSpec{
			App:       AppLicenseLibrary,
			Name:      "license",
			New:       func() Copyable { return &models.License{} },
			Relations: []Relation{{Field: "Owner", Kind: OneToMany}},
		})
		assert.Error(t, err)

		err = r.Register(ModelSpec{
			App:       AppLicenseLibrary,
			Name:      "license",
			New:       func() Copyable { return &models.License{} },
			Relations: []Relation{{Field: "Unknown", Kind: OneToMany}},
		})
		assert.Error(t, err)
	})

	t.Run("should list registered names", func(t *testing.T) {
		assert.Contains(t, registry.Names(), "component")
		assert.Contains(t, registry.Names(), "licenseassignedtag")
		assert.Len(t, registry.Names(), 11)
	})
}
