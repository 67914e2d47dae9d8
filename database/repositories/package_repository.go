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
	"gorm.io/gorm"
)

type packageRepository struct {
	*dataspacedRepository[models.Package]
}

func NewPackageRepository(db *gorm.DB) *packageRepository {
	return &packageRepository{
		dataspacedRepository: newDataspacedRepository[models.Package](db, "filename, id", "filename", "name", "namespace", "download_url"),
	}
}

// FindWithoutPackageURL lists the packages with a download url but no purl type or name.
func (r *packageRepository) FindWithoutPackageURL(tx *gorm.DB, dataspaceID uint) ([]models.Package, error) {
	var packages []models.Package
	err := r.GetDB(tx).
		Where("dataspace_id = ?", dataspaceID).
		Where("download_url <> ''").
		Where("(type = '' OR type IS NULL OR name = '' OR name IS NULL)").
		Order("id").
		Find(&packages).Error
	return packages, err
}
