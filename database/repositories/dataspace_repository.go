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
	"fmt"

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/gosimple/slug"
	"github.com/aboutcode-org/dejacode/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type dataspaceRepository struct {
	db *gorm.DB
	utils.Repository[uint, models.Dataspace, *gorm.DB]
}

func NewDataspaceRepository(db *gorm.DB) *dataspaceRepository {
	return &dataspaceRepository{
		db:         db,
		Repository: newCatalogRepository[models.Dataspace](db),
	}
}

// Create stores the dataspace under the first slug not used by another dataspace.
func (r *dataspaceRepository) Create(tx *gorm.DB, dataspace *models.Dataspace) error {
	base := dataspace.Slug
	if base == "" {
		base = slug.Make(dataspace.Name)
	}
	firstFreeSlug, err := r.firstFreeSlug(tx, base)
	if err != nil {
		return fmt.Errorf("could not generate next slug: %w", err)
	}
	dataspace.Slug = firstFreeSlug

	return r.GetDB(tx).Create(dataspace).Error
}

func (r *dataspaceRepository) firstFreeSlug(tx *gorm.DB, dataspaceSlug string) (string, error) {
	var slugs []string
	err := r.GetDB(tx).Model(&models.Dataspace{}).
		Where("slug LIKE ?", dataspaceSlug+"%").
		Pluck("slug", &slugs).Error
	if err != nil {
		return "", err
	}

	existing := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		existing[s] = true
	}
	if !existing[dataspaceSlug] {
		return dataspaceSlug, nil
	}

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", dataspaceSlug, i)
		if !existing[candidate] {
			return candidate, nil
		}
	}
}

func (r *dataspaceRepository) ReadByName(name string) (models.Dataspace, error) {
	var dataspace models.Dataspace
	err := r.db.Where("name = ?", name).First(&dataspace).Error
	return dataspace, err
}

func (r *dataspaceRepository) ReadBySlug(slug string) (models.Dataspace, error) {
	var dataspace models.Dataspace
	err := r.db.Where("slug = ?", slug).First(&dataspace).Error
	return dataspace, err
}

// ReadConfiguration returns the configuration of the dataspace. A dataspace
// without a stored configuration gets an empty one.
func (r *dataspaceRepository) ReadConfiguration(tx *gorm.DB, dataspaceID uint) (models.DataspaceConfiguration, error) {
	var configurations []models.DataspaceConfiguration
	err := r.GetDB(tx).Where("dataspace_id = ?", dataspaceID).Limit(1).Find(&configurations).Error
	if err != nil {
		return models.DataspaceConfiguration{}, err
	}
	if len(configurations) == 0 {
		return models.DataspaceConfiguration{
			DataspaceID:    dataspaceID,
			CopyDefaults:   datatypes.NewJSONType(models.ExclusionConfig{}),
			UpdateDefaults: datatypes.NewJSONType(models.ExclusionConfig{}),
		}, nil
	}
	return configurations[0], nil
}

func (r *dataspaceRepository) SaveConfiguration(tx *gorm.DB, configuration *models.DataspaceConfiguration) error {
	return r.GetDB(tx).Omit("Dataspace").Save(configuration).Error
}
