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
	"github.com/aboutcode-org/dejacode/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// catalogRepository holds the writes shared by every repository. Associations
// are never written implicitly: related rows are saved by their own repository
// or by the copier.
type catalogRepository[T utils.Tabler] struct {
	db *gorm.DB
}

func newCatalogRepository[T utils.Tabler](db *gorm.DB) *catalogRepository[T] {
	return &catalogRepository[T]{db: db}
}

// GetDB returns tx when running inside a transaction.
func (r *catalogRepository[T]) GetDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *catalogRepository[T]) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func (r *catalogRepository[T]) Create(tx *gorm.DB, t *T) error {
	return r.GetDB(tx).Omit(clause.Associations).Create(t).Error
}

func (r *catalogRepository[T]) Save(tx *gorm.DB, t *T) error {
	return r.GetDB(tx).Omit(clause.Associations).Save(t).Error
}

func (r *catalogRepository[T]) Read(id uint) (T, error) {
	var t T
	err := r.db.First(&t, "id = ?", id).Error
	return t, err
}

func (r *catalogRepository[T]) Delete(tx *gorm.DB, id uint) error {
	var t T
	return r.GetDB(tx).Delete(&t, "id = ?", id).Error
}
