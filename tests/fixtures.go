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

package tests

import (
	"testing"

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func CreateDataspace(t *testing.T, db *gorm.DB, name string) models.Dataspace {
	t.Helper()
	dataspace := models.Dataspace{Name: name}
	require.NoError(t, db.Create(&dataspace).Error)
	return dataspace
}

func CreateUser(t *testing.T, db *gorm.DB, dataspace models.Dataspace, username string) models.User {
	t.Helper()
	user := models.User{Username: username, DataspaceID: dataspace.ID, APIKeyHash: models.HashAPIKey(username + "-key")}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func CreateOwner(t *testing.T, db *gorm.DB, dataspace models.Dataspace, name string) models.Owner {
	t.Helper()
	owner := models.Owner{Name: name}
	owner.DataspaceID = dataspace.ID
	require.NoError(t, db.Create(&owner).Error)
	return owner
}

func CreateLicenseTag(t *testing.T, db *gorm.DB, dataspace models.Dataspace, label string, id uuid.UUID) models.LicenseTag {
	t.Helper()
	tag := models.LicenseTag{Label: label}
	tag.DataspaceID = dataspace.ID
	tag.UUID = id
	require.NoError(t, db.Create(&tag).Error)
	return tag
}

func CreateUsagePolicy(t *testing.T, db *gorm.DB, dataspace models.Dataspace, label string) models.UsagePolicy {
	t.Helper()
	policy := models.UsagePolicy{Label: label, ContentType: "license"}
	policy.DataspaceID = dataspace.ID
	require.NoError(t, db.Create(&policy).Error)
	return policy
}

// CreateLicense creates a license owned by owner, key doubles as short name.
func CreateLicense(t *testing.T, db *gorm.DB, dataspace models.Dataspace, owner models.Owner, key string) models.License {
	t.Helper()
	license := models.License{
		Key:       key,
		Name:      key + " license",
		ShortName: key,
		OwnerID:   owner.ID,
		FullText:  "full text of " + key,
		IsActive:  utils.Ptr(true),
		Guidance:  "guidance for " + key,
	}
	license.DataspaceID = dataspace.ID
	require.NoError(t, db.Create(&license).Error)
	return license
}

func AssignTag(t *testing.T, db *gorm.DB, license models.License, tag models.LicenseTag, value *bool) models.LicenseAssignedTag {
	t.Helper()
	assigned := models.LicenseAssignedTag{LicenseID: license.ID, LicenseTagID: tag.ID, Value: value}
	assigned.DataspaceID = license.DataspaceID
	require.NoError(t, db.Create(&assigned).Error)
	return assigned
}

func CreateComponent(t *testing.T, db *gorm.DB, dataspace models.Dataspace, name, version string) models.Component {
	t.Helper()
	component := models.Component{Name: name, Version: version}
	component.DataspaceID = dataspace.ID
	require.NoError(t, db.Create(&component).Error)
	return component
}

func CreatePackage(t *testing.T, db *gorm.DB, dataspace models.Dataspace, filename string) models.Package {
	t.Helper()
	pkg := models.Package{Filename: filename}
	pkg.DataspaceID = dataspace.ID
	require.NoError(t, db.Create(&pkg).Error)
	return pkg
}
