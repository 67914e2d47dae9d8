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

package repositories

import (
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type licenseRepository struct {
	*dataspacedRepository[models.License]
}

func NewLicenseRepository(db *gorm.DB) *licenseRepository {
	return &licenseRepository{
		dataspacedRepository: newDataspacedRepository[models.License](db, "key", "key", "name", "short_name", "spdx_license_key"),
	}
}

func (r *licenseRepository) ReadByKey(tx *gorm.DB, dataspaceID uint, key string) (models.License, error) {
	var license models.License
	err := r.GetDB(tx).Where("dataspace_id = ? AND key = ?", dataspaceID, key).First(&license).Error
	return license, err
}

func (r *licenseRepository) FindByKeys(tx *gorm.DB, dataspaceID uint, keys []string) ([]models.License, error) {
	if len(keys) == 0 {
		return []models.License{}, nil
	}
	var licenses []models.License
	err := r.GetDB(tx).Where("dataspace_id = ? AND key IN ?", dataspaceID, keys).Order("key").Find(&licenses).Error
	return licenses, err
}

func (r *licenseRepository) ReadWithRelations(tx *gorm.DB, dataspaceID uint, id uuid.UUID) (models.License, error) {
	var license models.License
	err := r.GetDB(tx).
		Preload("Owner").
		Preload("UsagePolicy").
		Preload("Tags.LicenseTag").
		Preload("Annotations").
		Where("dataspace_id = ? AND uuid = ?", dataspaceID, id).
		First(&license).Error
	return license, err
}

type licenseTagRepository struct {
	*dataspacedRepository[models.LicenseTag]
}

func NewLicenseTagRepository(db *gorm.DB) *licenseTagRepository {
	return &licenseTagRepository{
		dataspacedRepository: newDataspacedRepository[models.LicenseTag](db, "label", "label", "text"),
	}
}
