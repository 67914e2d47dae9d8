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
	"github.com/aboutcode-org/dejacode/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type componentRepository struct {
	*dataspacedRepository[models.Component]
}

func NewComponentRepository(db *gorm.DB) *componentRepository {
	return &componentRepository{
		dataspacedRepository: newDataspacedRepository[models.Component](db, "name, version", "name", "version", "license_expression", "primary_language"),
	}
}

func (r *componentRepository) ReadByNameAndVersion(tx *gorm.DB, dataspaceID uint, name, version string) (models.Component, error) {
	var component models.Component
	err := r.GetDB(tx).Where("dataspace_id = ? AND name = ? AND version = ?", dataspaceID, name, version).First(&component).Error
	return component, err
}

func (r *componentRepository) ReadWithRelations(tx *gorm.DB, dataspaceID uint, id uuid.UUID) (models.Component, error) {
	var component models.Component
	err := r.GetDB(tx).
		Preload("Owner").
		Preload("UsagePolicy").
		Preload("Children.Child").
		Preload("Licenses.License").
		Preload("Packages.Package").
		Where("dataspace_id = ? AND uuid = ?", dataspaceID, id).
		First(&component).Error
	return component, err
}

// ReplaceAssignedLicenses makes the assigned licenses of the component equal to
// licenses. Rows for licenses which stay assigned keep their uuid.
func (r *componentRepository) ReplaceAssignedLicenses(tx *gorm.DB, component *models.Component, licenses []models.License) error {
	db := r.GetDB(tx)

	var existing []models.ComponentAssignedLicense
	if err := db.Where("component_id = ?", component.ID).Find(&existing).Error; err != nil {
		return err
	}

	wanted := utils.Map(licenses, func(l models.License) uint { return l.ID })
	assigned := utils.Map(existing, func(a models.ComponentAssignedLicense) uint { return a.LicenseID })

	if stale := utils.Difference(assigned, wanted); len(stale) > 0 {
		if err := db.Where("component_id = ? AND license_id IN ?", component.ID, stale).
			Delete(&models.ComponentAssignedLicense{}).Error; err != nil {
			return err
		}
	}

	missing := utils.Difference(wanted, assigned)
	if len(missing) == 0 {
		return nil
	}
	rows := make([]models.ComponentAssignedLicense, 0, len(missing))
	for _, licenseID := range missing {
		row := models.ComponentAssignedLicense{ComponentID: component.ID, LicenseID: licenseID}
		row.DataspaceID = component.DataspaceID
		row.SetCreatedBy(component.LastModifiedByID)
		rows = append(rows, row)
	}
	return db.Omit(clause.Associations).Create(&rows).Error
}

func (r *componentRepository) UpdateCompletionLevel(tx *gorm.DB, componentID uint, level int) error {
	return r.GetDB(tx).Model(&models.Component{}).Where("id = ?", componentID).UpdateColumn("completion_level", level).Error
}
