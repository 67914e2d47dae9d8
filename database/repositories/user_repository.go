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
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
	utils.Repository[uint, models.User, *gorm.DB]
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{
		db:         db,
		Repository: newCatalogRepository[models.User](db),
	}
}

func (r *userRepository) ReadByUsername(username string) (models.User, error) {
	var user models.User
	err := r.db.Preload("Dataspace").Where("username = ?", username).First(&user).Error
	return user, err
}

// FindByAPIKey looks up an active user by the plain api key.
func (r *userRepository) FindByAPIKey(key string) (models.User, error) {
	var user models.User
	err := r.db.Preload("Dataspace").
		Where("api_key_hash = ? AND is_active = ?", models.HashAPIKey(key), true).
		First(&user).Error
	return user, err
}
