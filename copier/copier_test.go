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
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/tests"
	"github.com/aboutcode-org/dejacode/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type copyEnv struct {
	db        *gorm.DB
	copier    *Copier
	reference models.Dataspace
	target    models.Dataspace
	user      models.User
	owner     models.Owner
}

func newCopyEnv(t *testing.T) copyEnv {
	db := tests.NewSQLiteDB(t)
	reference := tests.CreateDataspace(t, db, "nexB")
	target := tests.CreateDataspace(t, db, "Alternate")
	return copyEnv{
		db:        db,
		copier:    NewCopier(DefaultRegistry(), NewPolicyResolver(16, time.Minute)),
		reference: reference,
		target:    target,
		user:      tests.CreateUser(t, db, reference, "nexb_user"),
		owner:     tests.CreateOwner(t, db, reference, "Apache Software Foundation"),
	}
}

func (e copyEnv) copy(t *testing.T, obj Copyable, opts CopyOptions) (Result, error) {
	t.Helper()
	var result Result
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = e.copier.CopyObject(context.Background(), tx, obj, e.target.ID, &e.user, opts)
		return err
	})
	return result, err
}

func (e copyEnv) licenseIn(t *testing.T, dataspace models.Dataspace, id uuid.UUID) models.License {
	t.Helper()
	var license models.License
	require.NoError(t, e.db.Where("dataspace_id = ? AND uuid = ?", dataspace.ID, id).First(&license).Error)
	return license
}

func count(t *testing.T, db *gorm.DB, model any, dataspace models.Dataspace) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where("dataspace_id = ?", dataspace.ID).Count(&n).Error)
	return n
}

func TestCopyObject(t *testing.T) {
	t.Run("should copy an unmatched license into the target keeping its uuid", func(t *testing.T) {
		env := newCopyEnv(t)
		policy := tests.CreateUsagePolicy(t, env.db, env.reference, "Approved")
		license := tests.CreateLicense(t, env.db, env.reference, env.owner, "apache-2.0")
		license.UsagePolicyID = &policy.ID
		license.AdminNotes = "internal"
		license.RequestCount = 12
		require.NoError(t, env.db.Save(&license).Error)

		result, err := env.copy(t, &license, CopyOptions{})
		require.NoError(t, err)
		assert.Equal(t, StatusCopied, result.Status)

		copied := env.licenseIn(t, env.target, license.UUID)
		assert.NotEqual(t, license.ID, copied.ID)
		assert.Equal(t, env.target.ID, copied.DataspaceID)
		assert.Equal(t, license.Key, copied.Key)
		assert.Equal(t, license.FullText, copied.FullText)
		assert.Equal(t, &env.user.ID, copied.CreatedByID)

		// excluded by default
		assert.Empty(t, copied.Guidance)
		assert.Empty(t, copied.AdminNotes)
		assert.Nil(t, copied.UsagePolicyID)
		assert.Zero(t, copied.RequestCount)

		// the owner followed the foreign key
		var owner models.Owner
		require.NoError(t, env.db.First(&owner, copied.OwnerID).Error)
		assert.Equal(t, env.owner.UUID, owner.UUID)
		assert.Equal(t, env.target.ID, owner.DataspaceID)

		var history []models.History
		require.NoError(t, env.db.Where("dataspace_id = ?", env.target.ID).Order("id").Find(&history).Error)
		require.Len(t, history, 2)
		assert.Equal(t, "organization.owner", history[0].ContentType)
		assert.Equal(t, "license_library.license", history[1].ContentType)
		assert.Equal(t, models.ActionAddition, history[1].ActionFlag)
		assert.Equal(t, copied.ID, history[1].ObjectID)
		assert.Contains(t, history[1].ChangeMessage, "nexB")
	})

	t.Run("should copy the one-to-many and through relations of a license", func(t *testing.T) {
		env := newCopyEnv(t)
		license := tests.CreateLicense(t, env.db, env.reference, env.owner, "mit")
		tag := tests.CreateLicenseTag(t, env.db, env.reference, "Attribution required", uuid.New())
		assigned := tests.AssignTag(t, env.db, license, tag, utils.Ptr(true))
		annotation := models.LicenseAnnotation{LicenseID: license.ID, AssignedTagID: &assigned.ID, Text: "see section 2"}
		annotation.DataspaceID = env.reference.ID
		require.NoError(t, env.db.Create(&annotation).Error)

		_, err := env.copy(t, &license, CopyOptions{})
		require.NoError(t, err)

		copied := env.licenseIn(t, env.target, license.UUID)

		var copiedAssigned models.LicenseAssignedTag
		require.NoError(t, env.db.Where("dataspace_id = ? AND uuid = ?", env.target.ID, assigned.UUID).First(&copiedAssigned).Error)
		assert.Equal(t, copied.ID, copiedAssigned.LicenseID)
		assert.Equal(t, utils.Ptr(true), copiedAssigned.Value)

		var copiedAnnotation models.LicenseAnnotation
		require.NoError(t, env.db.Where("dataspace_id = ? AND uuid = ?", env.target.ID, annotation.UUID).First(&copiedAnnotation).Error)
		assert.Equal(t, copied.ID, copiedAnnotation.LicenseID)
		assert.Equal(t, &copiedAssigned.ID, copiedAnnotation.AssignedTagID)
	})

	t.Run("should add a through row created after the first copy on update", func(t *testing.T) {
		env := newCopyEnv(t)
		license := tests.CreateLicense(t, env.db, env.reference, env.owner, "apache-2.0")
		_, err := env.copy(t, &license, CopyOptions{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), count(t, env.db, &models.LicenseAssignedTag{}, env.target))

		tag := tests.CreateLicenseTag(t, env.db, env.reference, "Patent grant", uuid.New())
		assigned := tests.AssignTag(t, env.db, license, tag, utils.Ptr(false))

		_, err = env.copy(t, &license, CopyOptions{Update: true})
		require.NoError(t, err)

		copied := env.licenseIn(t, env.target, license.UUID)
		var copiedAssigned models.LicenseAssignedTag
		require.NoError(t, env.db.Where("dataspace_id = ? AND uuid = ?", env.target.ID, assigned.UUID).First(&copiedAssigned).Error)
		assert.Equal(t, copied.ID, copiedAssigned.LicenseID)
		assert.Equal(t, utils.Ptr(false), copiedAssigned.Value)

		var copiedTag models.LicenseTag
		require.NoError(t, env.db.Where("dataspace_id = ? AND uuid = ?", env.target.ID, tag.UUID).First(&copiedTag).Error)
		assert.Equal(t, copiedTag.ID, copiedAssigned.LicenseTagID)
	})

	t.Run("should be a no-op when the object is matched and no update is requested", func(t *testing.T) {
		env := newCopyEnv(t)
		license := tests.CreateLicense(t, env.db, env.reference, env.owner, "bsd-new")

		_, err := env.copy(t, &license, CopyOptions{})
		require.NoError(t, err)
		before := env.licenseIn(t, env.target, license.UUID)

		license.Name = "changed in the reference"
		require.NoError(t, env.db.Save(&license).Error)

		result, err := env.copy(t, &license, CopyOptions{})
		require.NoError(t, err)
		assert.Equal(t, StatusNoop, result.Status)
		assert.Equal(t, before.ID, result.Object.GetID())

		after := env.licenseIn(t, env.target, license.UUID)
		assert.Equal(t, before.Name, after.Name)
		assert.Equal(t, int64(1), count(t, env.db, &models.License{}, env.target))
	})

	t.Run("should update only the fields which are not excluded", func(t *testing.T) {
		env := newCopyEnv(t)
		license := tests.CreateLicense(t, env.db, env.reference, env.owner, "gpl-2.0")
		_, err := env.copy(t, &license, CopyOptions{})
		require.NoError(t, err)

		local := env.licenseIn(t, env.target, license.UUID)
		local.Guidance = "local guidance"
		local.Reviewed = true
		require.NoError(t, env.db.Save(&local).Error)

		license.Name = "GNU General Public License 2.0"
		license.Guidance = "reference guidance"
		require.NoError(t, env.db.Save(&license).Error)

		result, err := env.copy(t, &license, CopyOptions{Update: true})
		require.NoError(t, err)
		assert.Equal(t, StatusUpdated, result.Status)
		assert.Equal(t, []string{"name"}, result.ChangedFields())

		updated := env.licenseIn(t, env.target, license.UUID)
		assert.Equal(t, "GNU General Public License 2.0", updated.Name)
		assert.Equal(t, "local guidance", updated.Guidance)
		assert.True(t, updated.Reviewed)
		assert.Equal(t, local.ID, updated.ID)
		assert.Equal(t, &env.user.ID, updated.LastModifiedByID)

		var change models.History
		require.NoError(t, env.db.Where("object_id = ? AND action_flag = ?", updated.ID, models.ActionChange).First(&change).Error)
		assert.Equal(t, "Changed name.", change.ChangeMessage)
		assert.Contains(t, string(change.SerializedData), "GNU General Public License 2.0")
	})

	t.Run("should never overwrite a known boolean with an unknown source value", func(t *testing.T) {
		env := newCopyEnv(t)
		license := tests.CreateLicense(t, env.db, env.reference, env.owner, "zlib")
		_, err := env.copy(t, &license, CopyOptions{})
		require.NoError(t, err)

		license.IsActive = nil
		require.NoError(t, env.db.Save(&license).Error)
		_, err = env.copy(t, &license, CopyOptions{Update: true})
		require.NoError(t, err)
		assert.Equal(t, utils.Ptr(true), env.licenseIn(t, env.target, license.UUID).IsActive)

		license.IsActive = utils.Ptr(false)
		require.NoError(t, env.db.Save(&license).Error)
		_, err = env.copy(t, &license, CopyOptions{Update: true})
		require.NoError(t, err)
		assert.Equal(t, utils.Ptr(false), env.licenseIn(t, env.target, license.UUID).IsActive)
	})

	t.Run("should reuse a tag matched by uuid even when its label differs", func(t *testing.T) {
		env := newCopyEnv(t)
		tagUUID := uuid.New()
		tag := tests.CreateLicenseTag(t, env.db, env.reference, "Network redistribution", tagUUID)
		localTag := tests.CreateLicenseTag(t, env.db, env.target, "Local label", tagUUID)

		license := tests.CreateLicense(t, env.db, env.reference, env.owner, "agpl-3.0")
		assigned := tests.AssignTag(t, env.db, license, tag, utils.Ptr(true))

		_, err := env.copy(t, &license, CopyOptions{})
		require.NoError(t, err)

		var copiedAssigned models.LicenseAssignedTag
		require.NoError(t, env.db.Where("dataspace_id = ? AND uuid = ?", env.target.ID, assigned.UUID).First(&copiedAssigned).Error)
		assert.Equal(t, localTag.ID, copiedAssigned.LicenseTagID)
		assert.Equal(t, utils.Ptr(true), copiedAssigned.Value)
		assert.Equal(t, int64(1), count(t, env.db, &models.LicenseTag{}, env.target))

		var reloaded models.LicenseTag
		require.NoError(t, env.db.First(&reloaded, localTag.ID).Error)
		assert.Equal(t, "Local label", reloaded.Label)
	})

	t.Run("should report a unique key collision as integrity error and roll back", func(t *testing.T) {
		env := newCopyEnv(t)
		license := tests.CreateLicense(t, env.db, env.reference, env.owner, "epl-1.0")
		localOwner := tests.CreateOwner(t, env.db, env.target, "Eclipse")
		tests.CreateLicense(t, env.db, env.target, localOwner, "epl-1.0")

		_, err := env.copy(t, &license, CopyOptions{})
		require.Error(t, err)

		var integrityErr *IntegrityError
		require.True(t, errors.As(err, &integrityErr))
		assert.Equal(t, "license", integrityErr.Model)

		// the owner copied before the failure is rolled back with it
		var owners int64
		require.NoError(t, env.db.Model(&models.Owner{}).Where("dataspace_id = ? AND uuid = ?", env.target.ID, env.owner.UUID).Count(&owners).Error)
		assert.Zero(t, owners)
	})

	t.Run("should refuse to copy into the source dataspace", func(t *testing.T) {
		env := newCopyEnv(t)
		var result Result
		err := env.db.Transaction(func(tx *gorm.DB) error {
			var err error
			result, err = env.copier.CopyObject(context.Background(), tx, &env.owner, env.reference.ID, &env.user, CopyOptions{})
			return err
		})
		assert.ErrorIs(t, err, ErrSameDataspace)
		assert.Empty(t, result.Status)
	})

	t.Run("should skip a relation when its model is skipped entirely", func(t *testing.T) {
		env := newCopyEnv(t)
		license := tests.CreateLicense(t, env.db, env.reference, env.owner, "lgpl-2.1")
		tag := tests.CreateLicenseTag(t, env.db, env.reference, "Copyleft", uuid.New())
		tests.AssignTag(t, env.db, license, tag, utils.Ptr(false))

		_, err := env.copy(t, &license, CopyOptions{Overrides: Overrides{"licenseassignedtag": Skip()}})
		require.NoError(t, err)
		assert.Zero(t, count(t, env.db, &models.LicenseAssignedTag{}, env.target))
		assert.Zero(t, count(t, env.db, &models.LicenseTag{}, env.target))
	})

	t.Run("should use the copy defaults of the target dataspace", func(t *testing.T) {
		env := newCopyEnv(t)
		configuration := models.DataspaceConfiguration{
			DataspaceID: env.target.ID,
			CopyDefaults: datatypes.NewJSONType(models.ExclusionConfig{
				AppLicenseLibrary: {"license": {Fields: []string{"full_text"}}},
			}),
		}
		require.NoError(t, env.db.Create(&configuration).Error)

		license := tests.CreateLicense(t, env.db, env.reference, env.owner, "mpl-2.0")
		_, err := env.copy(t, &license, CopyOptions{})
		require.NoError(t, err)

		copied := env.licenseIn(t, env.target, license.UUID)
		assert.Empty(t, copied.FullText)
		assert.Equal(t, license.Guidance, copied.Guidance)
	})

	t.Run("should copy subcomponents and assigned licenses of a component", func(t *testing.T) {
		env := newCopyEnv(t)
		license := tests.CreateLicense(t, env.db, env.reference, env.owner, "zlib")
		parent := tests.CreateComponent(t, env.db, env.reference, "Zlib.Ada", "1.3")
		child := tests.CreateComponent(t, env.db, env.reference, "zlib", "1.2.13")

		sub := models.Subcomponent{ParentID: parent.ID, ChildID: child.ID, Purpose: "Core", ExtraAttributionText: "attribution"}
		sub.DataspaceID = env.reference.ID
		require.NoError(t, env.db.Create(&sub).Error)
		assignedLicense := models.ComponentAssignedLicense{ComponentID: parent.ID, LicenseID: license.ID}
		assignedLicense.DataspaceID = env.reference.ID
		require.NoError(t, env.db.Create(&assignedLicense).Error)

		result, err := env.copy(t, &parent, CopyOptions{})
		require.NoError(t, err)
		assert.Equal(t, StatusCopied, result.Status)

		assert.Equal(t, int64(2), count(t, env.db, &models.Component{}, env.target))
		assert.Equal(t, int64(1), count(t, env.db, &models.License{}, env.target))

		var copiedSub models.Subcomponent
		require.NoError(t, env.db.Where("dataspace_id = ? AND uuid = ?", env.target.ID, sub.UUID).First(&copiedSub).Error)
		assert.Equal(t, "Core", copiedSub.Purpose)
		assert.Empty(t, copiedSub.ExtraAttributionText)
		assert.Equal(t, result.Object.GetID(), copiedSub.ParentID)

		var copiedChild models.Component
		require.NoError(t, env.db.First(&copiedChild, copiedSub.ChildID).Error)
		assert.Equal(t, child.UUID, copiedChild.UUID)
	})
}

func TestCompare(t *testing.T) {
	t.Run("should report no match for an object missing in the target", func(t *testing.T) {
		env := newCopyEnv(t)
		cmp, err := env.copier.Compare(context.Background(), env.db, &env.owner, env.target.ID)
		require.NoError(t, err)
		assert.False(t, cmp.Matched())
		assert.Empty(t, cmp.Diffs)
	})

	t.Run("should list the differing fields of a matched object", func(t *testing.T) {
		env := newCopyEnv(t)
		license := tests.CreateLicense(t, env.db, env.reference, env.owner, "isc")
		_, err := env.copy(t, &license, CopyOptions{})
		require.NoError(t, err)

		license.Name = "ISC License"
		require.NoError(t, env.db.Save(&license).Error)

		cmp, err := env.copier.Compare(context.Background(), env.db, &license, env.target.ID)
		require.NoError(t, err)
		require.True(t, cmp.Matched())

		fields := utils.Map(cmp.Diffs, func(d FieldDiff) string { return d.Field })
		assert.Contains(t, fields, "name")
		// excluded on copy
		assert.Contains(t, fields, "guidance")
		// same owner uuid on both sides
		assert.NotContains(t, fields, "owner_id")
		assert.NotContains(t, fields, "uuid")
	})
}
