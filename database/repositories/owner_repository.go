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

type ownerRepository struct {
	*dataspacedRepository[models.Owner]
}

func NewOwnerRepository(db *gorm.DB) *ownerRepository {
	return &ownerRepository{
		dataspacedRepository: newDataspacedRepository[models.Owner](db, "name", "name", "alias"),
	}
}

func (r *ownerRepository) ReadByName(tx *gorm.DB, dataspaceID uint, name string) (models.Owner, error) {
	var owner models.Owner
	err := r.GetDB(tx).Where("dataspace_id = ? AND name = ?", dataspaceID, name).First(&owner).Error
	return owner, err
}

type usagePolicyRepository struct {
	*dataspacedRepository[models.UsagePolicy]
}

func NewUsagePolicyRepository(db *gorm.DB) *usagePolicyRepository {
	return &usagePolicyRepository{
		dataspacedRepository: newDataspacedRepository[models.UsagePolicy](db, "label", "label"),
	}
}
