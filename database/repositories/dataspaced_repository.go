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
	"strings"

	"github.com/aboutcode-org/dejacode/shared"
	"github.com/aboutcode-org/dejacode/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// dataspacedRepository scopes the generic repository to a dataspace.
// searchColumns are matched case-insensitively by ListPaged.
type dataspacedRepository[T utils.Tabler] struct {
	*catalogRepository[T]
	searchColumns []string
	defaultOrder  string
}

func newDataspacedRepository[T utils.Tabler](db *gorm.DB, defaultOrder string, searchColumns ...string) *dataspacedRepository[T] {
	return &dataspacedRepository[T]{
		catalogRepository: newCatalogRepository[T](db),
		searchColumns:     searchColumns,
		defaultOrder:      defaultOrder,
	}
}

func (r *dataspacedRepository[T]) ReadByUUID(tx *gorm.DB, dataspaceID uint, id uuid.UUID) (T, error) {
	var t T
	err := r.GetDB(tx).Where("dataspace_id = ? AND uuid = ?", dataspaceID, id).First(&t).Error
	return t, err
}

func (r *dataspacedRepository[T]) ListByUUIDs(tx *gorm.DB, dataspaceID uint, ids []uuid.UUID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	var ts []T
	err := r.GetDB(tx).Where("dataspace_id = ? AND uuid IN ?", dataspaceID, ids).Order("id").Find(&ts).Error
	return ts, err
}

func (r *dataspacedRepository[T]) FindByDataspace(tx *gorm.DB, dataspaceID uint) ([]T, error) {
	var ts []T
	err := r.GetDB(tx).Where("dataspace_id = ?", dataspaceID).Order("id").Find(&ts).Error
	return ts, err
}

func (r *dataspacedRepository[T]) ListPaged(dataspaceID uint, pageInfo shared.PageInfo, search string, sort []shared.SortQuery) (shared.Paged[T], error) {
	var t T
	q := r.db.Model(&t).Where("dataspace_id = ?", dataspaceID)

	// apply search
	if search != "" && len(r.searchColumns) > 0 {
		clauses := make([]string, len(r.searchColumns))
		args := make([]any, len(r.searchColumns))
		for i, column := range r.searchColumns {
			clauses[i] = "LOWER(" + column + ") LIKE ?"
			args[i] = "%" + strings.ToLower(search) + "%"
		}
		q = q.Where(strings.Join(clauses, " OR "), args...)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return shared.Paged[T]{}, err
	}

	// apply sorting
	for _, s := range sort {
		q = q.Order(s.SQL())
	}
	q = q.Order(r.defaultOrder)

	ts := []T{}
	if err := pageInfo.ApplyOnDB(q).Find(&ts).Error; err != nil {
		return shared.Paged[T]{}, err
	}

	return shared.NewPaged(pageInfo, count, ts), nil
}
