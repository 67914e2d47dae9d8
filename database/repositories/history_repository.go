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

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *historyRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(tx *gorm.DB, history *models.History) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.Omit("User", "Dataspace").Create(history).Error
}

// ListForObject returns the entries of an object, newest first.
func (r *historyRepository) ListForObject(contentType string, objectID uint) ([]models.History, error) {
	var entries []models.History
	err := r.db.Preload("User").
		Where("content_type = ? AND object_id = ?", contentType, objectID).
		Order("action_time DESC, id DESC").
		Find(&entries).Error
	return entries, err
}
